//nolint:wrapcheck
package main

import (
	"context"
	"os"

	"github.com/farcloser/primordium/format"
	"github.com/urfave/cli/v3"

	"github.com/farcloser/covbar"
	"github.com/farcloser/covbar/internal/output"
	"github.com/farcloser/covbar/internal/types"
)

func countCommand() *cli.Command {
	return &cli.Command{
		Name:      "count",
		Usage:     "Print the per-report hit counts of a directory without rendering a chart",
		ArgsUsage: "<directory>",
		Flags: append(filterFlags(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: console, json, markdown",
				Value:   "console",
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

			dataset, err := covbar.Collect(ctx, dir, opts)
			if err != nil {
				return err
			}

			return outputDataset(dir, dataset, opts, cmd.String("format"))
		},
	}
}

func outputDataset(dir string, dataset types.Dataset, opts covbar.Options, formatName string) error {
	formatter, err := format.GetFormatter(formatName)
	if err != nil {
		return err
	}

	meta, err := output.DatasetToMap(dataset, opts.Coverage, opts.Identity)
	if err != nil {
		return err
	}

	data := &format.Data{
		Object: dir,
		Meta:   meta,
	}

	return formatter.PrintAll([]*format.Data{data}, os.Stdout)
}
