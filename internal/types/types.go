package types

import "strconv"

// Column positions in a coverage report row.
const (
	IdentityColumn = 2  // percent identity
	CoverageColumn = 15 // subject coverage
)

// Threshold is a minimum value a given column of a report row must reach.
type Threshold struct {
	Column int
	Min    float64
	// Text is the threshold as the user wrote it ("1.0", "98"). It is used verbatim in chart
	// subtitles and output filenames. Empty means Min is formatted instead.
	Text string
}

func (t Threshold) String() string {
	if t.Text != "" {
		return t.Text
	}

	return strconv.FormatFloat(t.Min, 'f', -1, 64)
}

// ParseThreshold builds a Threshold for column from its textual minimum.
func ParseThreshold(column int, text string) (Threshold, error) {
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Threshold{}, err //nolint:wrapcheck // strconv errors already carry the input
	}

	return Threshold{Column: column, Min: value, Text: text}, nil
}

// Entry is the aggregate for one report file.
type Entry struct {
	Label string // report file base name
	Count int    // rows passing both thresholds
}

// Dataset holds one Entry per report file, sorted by Label.
type Dataset []Entry

// Counts returns the entry counts in dataset order.
func (d Dataset) Counts() []int {
	counts := make([]int, len(d))
	for i, entry := range d {
		counts[i] = entry.Count
	}

	return counts
}

// Values returns the entry counts as float64, in dataset order.
func (d Dataset) Values() []float64 {
	values := make([]float64, len(d))
	for i, entry := range d {
		values[i] = float64(entry.Count)
	}

	return values
}
