package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/covbar/version"
)

func main() {
	ctx := context.Background()

	appl := &cli.Command{
		Name:    version.Name(),
		Usage:   "Count coverage report hits above identity and coverage thresholds and chart them",
		Version: version.Version() + " " + version.Commit(),
		Commands: []*cli.Command{
			chartCommand(),
			countCommand(),
			htmlCommand(),
		},
	}

	if err := appl.Run(ctx, os.Args); err != nil {
		slog.Error("failed to run", "error", err)
		os.Exit(1)
	}
}
