// Package label recovers the chart grouping key and base title from report filenames.
//
// A report filename has the shape <base segments>_<group>_<suffix>.<extension>, for example
// "sampleA_amikacin_card.cov": everything before the first dot is the stem, the stem is split on
// underscores, the second to last segment is the group, and the segments before it, concatenated
// without separator, form the title ("sampleA").
package label

import (
	"errors"
	"fmt"
	"strings"
)

const (
	extSeparator     = "."
	segmentSeparator = "_"
	minSegments      = 2
)

var ErrMalformedName = errors.New("filename needs at least two underscore separated segments before the extension")

// Label is a parsed report filename.
type Label struct {
	Name     string
	Stem     string
	Segments []string
}

// Parse splits name into its stem segments.
func Parse(name string) (Label, error) {
	stem, _, _ := strings.Cut(name, extSeparator)

	segments := strings.Split(stem, segmentSeparator)
	if len(segments) < minSegments {
		return Label{}, fmt.Errorf("%w: %q", ErrMalformedName, name)
	}

	return Label{Name: name, Stem: stem, Segments: segments}, nil
}

// Group is the per-bar category.
func (l Label) Group() string {
	return l.Segments[len(l.Segments)-2]
}

// Title is the base name shared by all reports derived from the same input.
func (l Label) Title() string {
	return strings.Join(l.Segments[:len(l.Segments)-2], "")
}

// Group parses name and returns its group segment.
func Group(name string) (string, error) {
	parsed, err := Parse(name)
	if err != nil {
		return "", err
	}

	return parsed.Group(), nil
}

// Title parses name and returns its title.
func Title(name string) (string, error) {
	parsed, err := Parse(name)
	if err != nil {
		return "", err
	}

	return parsed.Title(), nil
}
