package aggregate

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/covbar/internal/filter"
	"github.com/farcloser/covbar/internal/types"
)

// Count returns how many lines of r pass both thresholds. Lines may be of any length.
func Count(reader io.Reader, coverage, identity types.Threshold) (int, error) {
	buffered := bufio.NewReader(reader)

	var count, line int

	for {
		raw, readErr := buffered.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return 0, fmt.Errorf("%w: after line %d: %w", fault.ErrReadFailure, line, readErr)
		}

		if raw == "" && readErr != nil {
			break
		}

		line++

		pass, err := filter.Passes(filter.Split(raw), coverage, identity)
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", line, err)
		}

		if pass {
			count++
		}

		if readErr != nil {
			break
		}
	}

	return count, nil
}

// File aggregates the report at path into an Entry labelled with the file base name.
func File(path string, coverage, identity types.Threshold) (types.Entry, error) {
	file, err := os.Open(path) //nolint:gosec // CLI tool opens user-specified report files
	if err != nil {
		return types.Entry{}, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}
	defer file.Close()

	count, err := Count(file, coverage, identity)
	if err != nil {
		return types.Entry{}, fmt.Errorf("%s: %w", path, err)
	}

	return types.Entry{Label: filepath.Base(path), Count: count}, nil
}
