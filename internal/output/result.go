// Package output provides shared dataset serialization for covbar structured output.
package output

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/farcloser/covbar/internal/chart"
	"github.com/farcloser/covbar/internal/types"
)

// DatasetToMap converts a dataset into the canonical map structure used for console, JSON and markdown
// output.
func DatasetToMap(dataset types.Dataset, coverage, identity types.Threshold) (map[string]any, error) {
	groups, err := chart.Groups(dataset)
	if err != nil {
		return nil, err
	}

	values := dataset.Values()

	summary := map[string]any{
		"files": len(dataset),
		"total": int(floats.Sum(values)),
	}

	if len(values) > 0 {
		summary["max"] = int(floats.Max(values))
		summary["mean"] = stat.Mean(values, nil)
	}

	entries := make([]any, 0, len(dataset))
	for i, entry := range dataset {
		entries = append(entries, map[string]any{
			"file":  entry.Label,
			"group": groups[i],
			"count": entry.Count,
		})
	}

	return map[string]any{
		"summary":    summary,
		"thresholds": ThresholdsToMap(coverage, identity),
		"entries":    entries,
	}, nil
}

// ThresholdsToMap describes the filter applied to every report row.
func ThresholdsToMap(coverage, identity types.Threshold) map[string]any {
	return map[string]any{
		"coverage": map[string]any{
			"column":  coverage.Column,
			"minimum": coverage.String(),
		},
		"identity": map[string]any{
			"column":  identity.Column,
			"minimum": identity.String(),
		},
		"param": chart.Subtitle(coverage, identity),
	}
}
