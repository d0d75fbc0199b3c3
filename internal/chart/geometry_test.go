package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/farcloser/covbar/internal/types"
)

func TestBarGeometry(t *testing.T) {
	tests := []struct {
		name            string
		canvas, count   int
		width, spacing  int
		expectedWidth   int
		expectedSpacing int
	}{
		{name: "fits", canvas: 1000, count: 4, width: 200, spacing: 50, expectedWidth: 200, expectedSpacing: 50},
		{name: "spacing shrinks", canvas: 900, count: 4, width: 200, spacing: 50, expectedWidth: 200, expectedSpacing: 25},
		{name: "bars shrink", canvas: 700, count: 4, width: 200, spacing: 50, expectedWidth: 175, expectedSpacing: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			width, spacing := barGeometry(tc.canvas, tc.count, tc.width, tc.spacing)
			assert.Equal(t, tc.expectedWidth, width)
			assert.Equal(t, tc.expectedSpacing, spacing)
		})
	}
}

// placement records where the elements of a rendered chart ended up.
type placement struct {
	canvas   chart.Box
	caption  chart.Box
	tickLeft int
	subtitle chart.Box
	values   []chart.Box
}

func renderWithPlacement(t *testing.T, dataset types.Dataset, params Params) (image.Image, placement) {
	t.Helper()

	barChart, err := Build(dataset, params)
	require.NoError(t, err)

	params = params.withDefaults()

	var placed placement

	barChart.Elements = append(barChart.Elements, func(r chart.Renderer, canvas chart.Box, defaults chart.Style) {
		r.SetFont(defaults.Font)

		placed.canvas = canvas
		placed.caption = captionBox(r, canvas, barChart.YAxis.Ticks, params)
		placed.tickLeft = tickLabelLeft(r, canvas, barChart.YAxis.Ticks)
		placed.subtitle = subtitleBox(r, Subtitle(params.Coverage, params.Identity), barChart.Width, params)
		placed.values = valueBoxes(r, canvas, dataset, barChart.BarWidth, barChart.BarSpacing, barChart.YAxis.Range.GetMax())
	})

	var buf bytes.Buffer
	require.NoError(t, barChart.Render(chart.PNG, &buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)

	return img, placed
}

func inkAt(img image.Image, x, y int) bool {
	r, g, b, _ := img.At(x, y).RGBA()

	return min(r, g, b)>>8 < 200
}

func inked(img image.Image, box chart.Box) bool {
	bounds := img.Bounds()

	for y := max(box.Top, bounds.Min.Y); y <= min(box.Bottom, bounds.Max.Y-1); y++ {
		for x := max(box.Left, bounds.Min.X); x <= min(box.Right, bounds.Max.X-1); x++ {
			if inkAt(img, x, y) {
				return true
			}
		}
	}

	return false
}

func TestLayout(t *testing.T) {
	dataset := types.Dataset{
		{Label: "s_a_card.cov", Count: 2},
		{Label: "s_b_card.cov", Count: 7},
		{Label: "s_c_card.cov", Count: 0},
	}

	for _, dpi := range []float64{100, 150, 600} {
		t.Run(fmt.Sprintf("%.0f dpi", dpi), func(t *testing.T) {
			params := Params{
				Title:    "s",
				Coverage: types.Threshold{Column: types.CoverageColumn, Min: 1, Text: "1.0"},
				Identity: types.Threshold{Column: types.IdentityColumn, Min: 98, Text: "98"},
				DPI:      dpi,
			}

			img, placed := renderWithPlacement(t, dataset, params)
			canvas := placed.canvas
			slack := int(params.px(1))

			t.Run("caption sits left of the tick labels", func(t *testing.T) {
				assert.GreaterOrEqual(t, placed.caption.Left, 0)
				assert.Less(t, placed.caption.Right+slack, placed.tickLeft-slack)
				assert.GreaterOrEqual(t, placed.caption.Top, canvas.Top)
				assert.LessOrEqual(t, placed.caption.Bottom, canvas.Bottom)

				assert.True(t, inked(img, placed.caption), "caption is drawn")
				assert.True(t, inked(img, chart.Box{
					Top: canvas.Top, Bottom: canvas.Bottom, Left: placed.tickLeft, Right: canvas.Left - chart.DefaultYAxisMargin,
				}), "tick labels are drawn")

				for x := placed.caption.Right + slack; x <= placed.tickLeft-slack; x++ {
					for y := canvas.Top; y <= canvas.Bottom; y++ {
						if inkAt(img, x, y) {
							t.Fatalf("ink between caption and tick labels at %d,%d", x, y)
						}
					}
				}
			})

			t.Run("subtitle sits above the plot", func(t *testing.T) {
				assert.True(t, inked(img, placed.subtitle))
				assert.Less(t, placed.subtitle.Bottom, canvas.Top)
				assert.GreaterOrEqual(t, placed.subtitle.Top, 0)
			})

			t.Run("value labels sit above their bars inside the plot", func(t *testing.T) {
				require.Len(t, placed.values, len(dataset))

				yRange := &chart.ContinuousRange{Min: 0, Max: 8, Domain: canvas.Height()}

				for i, box := range placed.values {
					barTop := canvas.Bottom - yRange.Translate(float64(dataset[i].Count))

					assert.True(t, inked(img, box), "value label %d is drawn", i)
					assert.Less(t, box.Bottom, barTop)
					assert.GreaterOrEqual(t, box.Top, canvas.Top)
				}

				assert.Less(t, placed.values[0].Right, placed.values[1].Left)
				assert.Less(t, placed.values[1].Right, placed.values[2].Left)
			})

			t.Run("only the group labels are reserved below the plot", func(t *testing.T) {
				metrics, err := newTextMetrics(params.DPI)
				require.NoError(t, err)

				var labelLength int
				for _, group := range []string{"a", "b", "c"} {
					labelLength = max(labelLength, metrics.size(group, axisPoints).Width())
				}

				expected := chart.DefaultXAxisMargin + labelLength + int(params.px(edgePoints))
				assert.InDelta(t, expected, img.Bounds().Dy()-canvas.Bottom, 2)
				assert.True(t, inked(img, chart.Box{
					Top: canvas.Bottom + chart.DefaultXAxisMargin, Bottom: img.Bounds().Dy() - 1,
					Left: canvas.Left, Right: canvas.Right,
				}), "group labels are drawn")
			})
		})
	}
}
