package collect

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/farcloser/primordium/fault"
	"golang.org/x/sync/errgroup"

	"github.com/farcloser/covbar/internal/aggregate"
	"github.com/farcloser/covbar/internal/types"
)

// DefaultSuffix selects coverage report files.
const DefaultSuffix = ".cov"

var (
	ErrNoInput      = errors.New("no input files found")
	ErrNotDirectory = errors.New("not a directory")
)

// Options controls which files are collected and how they are filtered.
type Options struct {
	Coverage types.Threshold
	Identity types.Threshold
	Suffix   string // exact, case-sensitive filename suffix (default: .cov)
	Workers  int    // files aggregated concurrently (default: 1)
}

// Files lists the names of regular files in dir ending with suffix, sorted.
func Files(dir, suffix string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%q: %w", dir, ErrNotDirectory)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}

	var names []string

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}

		names = append(names, entry.Name())
	}

	slices.Sort(names)

	return names, nil
}

// Directory aggregates every report in dir and returns the dataset sorted by label.
func Directory(ctx context.Context, dir string, opts Options) (types.Dataset, error) {
	if opts.Suffix == "" {
		opts.Suffix = DefaultSuffix
	}

	workers := max(opts.Workers, 1)

	names, err := Files(dir, opts.Suffix)
	if err != nil {
		return nil, err
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("%q (suffix %q): %w", dir, opts.Suffix, ErrNoInput)
	}

	dataset := make(types.Dataset, len(names))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for idx, name := range names {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			entry, err := aggregate.File(filepath.Join(dir, name), opts.Coverage, opts.Identity)
			if err != nil {
				return err
			}

			slog.Debug("aggregated report", "file", name, "count", entry.Count)

			dataset[idx] = entry

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err //nolint:wrapcheck // aggregate errors already name the file
	}

	Sort(dataset)

	return dataset, nil
}

// Sort orders dataset ascending by label.
func Sort(dataset types.Dataset) {
	slices.SortStableFunc(dataset, func(a, b types.Entry) int {
		return strings.Compare(a.Label, b.Label)
	})
}
