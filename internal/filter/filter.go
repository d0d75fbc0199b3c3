package filter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/farcloser/covbar/internal/types"
)

var (
	ErrMissingColumn = errors.New("missing column")
	ErrNotNumeric    = errors.New("not a number")
)

// Passes reports whether row reaches both the coverage and the identity minimum.
// Both bounds are inclusive.
func Passes(row []string, coverage, identity types.Threshold) (bool, error) {
	cov, err := field(row, coverage.Column)
	if err != nil {
		return false, err
	}

	ident, err := field(row, identity.Column)
	if err != nil {
		return false, err
	}

	return cov >= coverage.Min && ident >= identity.Min, nil
}

// Split breaks a raw report line into its tab separated fields, dropping trailing whitespace first.
func Split(line string) []string {
	return strings.Split(strings.TrimRightFunc(line, unicode.IsSpace), "\t")
}

func field(row []string, column int) (float64, error) {
	if column < 0 || column >= len(row) {
		return 0, fmt.Errorf("%w: %d (row has %d)", ErrMissingColumn, column, len(row))
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(row[column]), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: column %d: %q", ErrNotNumeric, column, row[column])
	}

	return value, nil
}
