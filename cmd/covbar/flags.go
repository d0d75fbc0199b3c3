//nolint:wrapcheck
package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/covbar"
	"github.com/farcloser/covbar/internal/collect"
	"github.com/farcloser/covbar/internal/types"
)

var errDirectoryArg = errors.New("expected exactly one argument: report directory")

// filterFlags are shared by every command reading reports.
func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "coverage",
			Aliases: []string{"c"},
			Usage:   fmt.Sprintf("Minimum subject coverage (column %d)", types.CoverageColumn),
			Value:   covbar.DefaultCoverage,
		},
		&cli.StringFlag{
			Name:    "identity",
			Aliases: []string{"i"},
			Usage:   fmt.Sprintf("Minimum identity (column %d)", types.IdentityColumn),
			Value:   covbar.DefaultIdentity,
		},
		&cli.StringFlag{
			Name:  "suffix",
			Usage: "Filename suffix selecting report files (case-sensitive)",
			Value: collect.DefaultSuffix,
		},
		&cli.IntFlag{
			Name:    "workers",
			Aliases: []string{"j"},
			Usage:   "Number of reports read concurrently",
			Value:   1,
		},
	}
}

// parseOptions builds run options from the filter flags.
func parseOptions(cmd *cli.Command) (covbar.Options, error) {
	opts := covbar.DefaultOptions()

	coverage, err := types.ParseThreshold(types.CoverageColumn, cmd.String("coverage"))
	if err != nil {
		return opts, fmt.Errorf("--coverage: %w", err)
	}

	identity, err := types.ParseThreshold(types.IdentityColumn, cmd.String("identity"))
	if err != nil {
		return opts, fmt.Errorf("--identity: %w", err)
	}

	opts.Coverage = coverage
	opts.Identity = identity
	opts.Suffix = cmd.String("suffix")
	opts.Workers = max(cmd.Int("workers"), 1)

	return opts, nil
}

func directoryArg(cmd *cli.Command) (string, error) {
	if cmd.NArg() != 1 {
		return "", fmt.Errorf("%w: got %d", errDirectoryArg, cmd.NArg())
	}

	return cmd.Args().First(), nil
}
