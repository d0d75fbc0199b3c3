//nolint:wrapcheck
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/covbar/internal/page"
)

var errHTMLArgs = errors.New("expected exactly three arguments: image directory, output directory, sequence name")

func htmlCommand() *cli.Command {
	return &cli.Command{
		Name:      "html",
		Usage:     "Write an HTML page listing the bar charts and dot plots of a directory",
		ArgsUsage: "<image-directory> <output-directory> <sequence-name>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 3 {
				return fmt.Errorf("%w: got %d", errHTMLArgs, cmd.NArg())
			}

			overview, err := page.Scan(cmd.Args().Get(0), cmd.Args().Get(2))
			if err != nil {
				return err
			}

			path := filepath.Join(cmd.Args().Get(1), page.Filename)

			out, err := os.Create(path) //nolint:gosec // CLI tool writes to a user-specified directory
			if err != nil {
				return fmt.Errorf("creating page: %w", err)
			}
			defer out.Close()

			if err := page.Write(out, overview); err != nil {
				return err
			}

			if err := out.Close(); err != nil {
				return fmt.Errorf("closing page: %w", err)
			}

			slog.Info("page written", "path", path,
				"bar_charts", len(overview.BarCharts), "dot_plots", len(overview.Dotplots))

			return nil
		},
	}
}
