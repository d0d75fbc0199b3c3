//nolint:wrapcheck
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/covbar"
)

func chartCommand() *cli.Command {
	return &cli.Command{
		Name:      "chart",
		Usage:     "Render the per-report hit counts of a directory as a bar chart",
		ArgsUsage: "<directory>",
		Flags: append(filterFlags(),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Directory receiving the chart (defaults to the report directory)",
			},
			&cli.StringFlag{
				Name:    "title",
				Aliases: []string{"t"},
				Usage:   "Chart title (defaults to the base name of the first report)",
			},
			&cli.FloatFlag{
				Name:  "dpi",
				Usage: "Image resolution",
				Value: 600,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := directoryArg(cmd)
			if err != nil {
				return err
			}

			opts, err := parseOptions(cmd)
			if err != nil {
				return err
			}

			opts.OutputDir = cmd.String("output")
			opts.Title = cmd.String("title")
			opts.Chart.DPI = cmd.Float("dpi")

			path, err := covbar.Run(ctx, dir, opts, os.Stdout)
			if err != nil {
				return err
			}

			slog.Info("chart written", "path", path)

			return nil
		},
	}
}
