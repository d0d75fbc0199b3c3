package covbar

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/farcloser/covbar/internal/chart"
	"github.com/farcloser/covbar/internal/collect"
	"github.com/farcloser/covbar/internal/label"
	"github.com/farcloser/covbar/internal/types"
)

/*
Usage:

opts := covbar.DefaultOptions()
dataset, err := covbar.Collect(ctx, "reports/", opts)

// Stricter identity
opts.Identity = covbar.Identity(99.5)
path, err := covbar.Render(dataset, opts, os.Stdout)

// Explicit title instead of the first report's prefix
opts.Title = "sampleA"
path, err := covbar.Run(ctx, "reports/", opts, os.Stdout)

*/

// Default threshold values.
const (
	DefaultCoverage = "1.0"
	DefaultIdentity = "98"
)

const imageMode = 0o644

// Options configures a run.
type Options struct {
	Coverage types.Threshold // subject coverage minimum (default: column 15 >= 1.0)
	Identity types.Threshold // identity minimum (default: column 2 >= 98)

	Suffix    string // report filename suffix (default: .cov)
	Title     string // chart title (default: derived from the first report name)
	OutputDir string // where the chart is written (default: the input directory)
	Workers   int    // reports aggregated concurrently (default: 1)

	Chart chart.Params // image geometry; Title and thresholds are filled from the fields above
}

// DefaultOptions returns coverage >= 1.0 and identity >= 98 over .cov files, read sequentially.
func DefaultOptions() Options {
	return Options{
		Coverage: types.Threshold{Column: types.CoverageColumn, Min: 1.0, Text: DefaultCoverage},
		Identity: types.Threshold{Column: types.IdentityColumn, Min: 98, Text: DefaultIdentity},
		Suffix:   collect.DefaultSuffix,
		Workers:  1,
	}
}

// Coverage returns a subject coverage threshold.
func Coverage(minimum float64) types.Threshold {
	return types.Threshold{Column: types.CoverageColumn, Min: minimum}
}

// Identity returns an identity threshold.
func Identity(minimum float64) types.Threshold {
	return types.Threshold{Column: types.IdentityColumn, Min: minimum}
}

func applyDefaults(opts *Options) {
	defaults := DefaultOptions()
	zero := types.Threshold{}

	if opts.Coverage == zero {
		opts.Coverage = defaults.Coverage
	}

	if opts.Identity == zero {
		opts.Identity = defaults.Identity
	}

	if opts.Suffix == "" {
		opts.Suffix = defaults.Suffix
	}

	if opts.Workers < 1 {
		opts.Workers = defaults.Workers
	}

	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
}

// Collect aggregates every report in dir into a dataset sorted by filename.
func Collect(ctx context.Context, dir string, opts Options) (types.Dataset, error) {
	applyDefaults(&opts)

	return collect.Directory(ctx, dir, collect.Options{
		Coverage: opts.Coverage,
		Identity: opts.Identity,
		Suffix:   opts.Suffix,
		Workers:  opts.Workers,
	})
}

// BaseTitle returns the chart title: opts.Title when set, otherwise the title of the first report.
// All reports are expected to share it; a mismatch is logged, not fatal.
func BaseTitle(dataset types.Dataset, opts Options) (string, error) {
	if opts.Title != "" {
		return opts.Title, nil
	}

	if len(dataset) == 0 {
		return "", collect.ErrNoInput
	}

	title, err := label.Title(dataset[0].Label)
	if err != nil {
		return "", err
	}

	for _, entry := range dataset[1:] {
		other, err := label.Title(entry.Label)
		if err != nil {
			return "", err
		}

		if other != title {
			slog.Warn("reports do not share a base name, using the first one",
				"title", title, "file", entry.Label, "other", other)

			break
		}
	}

	return title, nil
}

// Render writes the diagnostic lines to diag, then the chart to opts.OutputDir, and returns the image path.
// An existing image with the same name is replaced.
func Render(dataset types.Dataset, opts Options, diag io.Writer) (string, error) {
	applyDefaults(&opts)

	if len(dataset) == 0 {
		return "", collect.ErrNoInput
	}

	title, err := BaseTitle(dataset, opts)
	if err != nil {
		return "", err
	}

	if err := chart.Diagnostics(diag, dataset); err != nil {
		return "", err
	}

	params := opts.Chart
	params.Title = title
	params.Coverage = opts.Coverage
	params.Identity = opts.Identity

	path := filepath.Join(opts.OutputDir, chart.Filename(title, opts.Coverage, opts.Identity))

	file, err := os.CreateTemp(opts.OutputDir, ".covbar-*.png")
	if err != nil {
		return "", fmt.Errorf("creating image: %w", err)
	}

	defer os.Remove(file.Name())

	if err := chart.Render(file, dataset, params); err != nil {
		file.Close()

		return "", err
	}

	if err := file.Chmod(imageMode); err != nil {
		file.Close()

		return "", fmt.Errorf("writing image: %w", err)
	}

	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing image: %w", err)
	}

	if err := os.Rename(file.Name(), path); err != nil {
		return "", fmt.Errorf("writing image: %w", err)
	}

	return path, nil
}

// Run collects the reports in dir and renders their chart. The image goes to dir unless opts.OutputDir is set.
func Run(ctx context.Context, dir string, opts Options, diag io.Writer) (string, error) {
	if opts.OutputDir == "" {
		opts.OutputDir = dir
	}

	dataset, err := Collect(ctx, dir, opts)
	if err != nil {
		return "", err
	}

	return Render(dataset, opts, diag)
}
