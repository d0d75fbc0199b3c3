// Package chart renders a dataset as a bar chart PNG.
//
// Each report gets one bar labelled with its group and topped with its count. The base title sits over
// the plot and the filter parameters form a figure-wide subtitle.
// Sizes are expressed in points and scaled to the requested DPI.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"

	"github.com/farcloser/covbar/internal/label"
	"github.com/farcloser/covbar/internal/types"
)

const (
	// Figure geometry.
	DefaultWidthInches  = 6.4
	DefaultHeightInches = 4.8
	DefaultDPI          = 600.0

	// YName captions the count axis.
	YName = "count"

	tickStep       = 2
	labelOffset    = 0.15 // data units between a bar top and its value label
	barFraction    = 0.8  // share of a slot covered by its bar
	pointsPerInch  = 72.0
	titlePoints    = 12.0
	subtitlePoints = 12.0
	axisPoints     = 10.0
	valuePoints    = 6.0
	gridPoints     = 0.2
	captionPoints  = 6.0 // gap between the y caption and the tick labels
	edgePoints     = 6.0 // gap between outer text and the figure border

	axisLineWidth = 1 // pixels

	// Margins as fractions of the figure.
	marginTop   = 0.14
	marginRight = 0.06
)

var ErrEmptyDataset = errors.New("dataset is empty")

//nolint:gochecknoglobals // palette, effectively const
var (
	barColor   = drawing.ColorRed.WithAlpha(204) // 80% opacity
	valueColor = drawing.ColorFromHex("808080")
	gridColor  = drawing.ColorFromHex("808080").WithAlpha(51) // 20% opacity
)

// Params configures a chart.
type Params struct {
	Title    string
	Coverage types.Threshold
	Identity types.Threshold

	// Zero values use the defaults.
	WidthInches  float64
	HeightInches float64
	DPI          float64
}

func (p Params) withDefaults() Params {
	if p.WidthInches <= 0 {
		p.WidthInches = DefaultWidthInches
	}

	if p.HeightInches <= 0 {
		p.HeightInches = DefaultHeightInches
	}

	if p.DPI <= 0 {
		p.DPI = DefaultDPI
	}

	return p
}

// Size returns the image dimensions in pixels.
func (p Params) Size() (int, int) {
	p = p.withDefaults()

	return int(p.WidthInches * p.DPI), int(p.HeightInches * p.DPI)
}

// px converts points to pixels at the configured DPI.
func (p Params) px(points float64) float64 {
	return points * p.withDefaults().DPI / pointsPerInch
}

// Subtitle describes the filter parameters.
func Subtitle(coverage, identity types.Threshold) string {
	return fmt.Sprintf("Param: %d >= %s - %d >= %s", coverage.Column, coverage, identity.Column, identity)
}

// Filename is the image name for a chart with the given title and thresholds.
func Filename(title string, coverage, identity types.Threshold) string {
	return fmt.Sprintf("%s_%d_%s_%d_%s.png", title, coverage.Column, coverage, identity.Column, identity)
}

// Ticks returns the y-axis ticks: every second integer from 0 up to, but excluding, maxCount+1.
func Ticks(maxCount int) []chart.Tick {
	ticks := make([]chart.Tick, 0, maxCount/tickStep+1)
	for value := 0; value < maxCount+1; value += tickStep {
		ticks = append(ticks, chart.Tick{Value: float64(value), Label: strconv.Itoa(value)})
	}

	return ticks
}

// Groups returns the group of every entry, in dataset order.
func Groups(dataset types.Dataset) ([]string, error) {
	groups := make([]string, len(dataset))

	for i, entry := range dataset {
		group, err := label.Group(entry.Label)
		if err != nil {
			return nil, err
		}

		groups[i] = group
	}

	return groups, nil
}

// Diagnostics writes one "<group>\t<count>" line per entry.
func Diagnostics(writer io.Writer, dataset types.Dataset) error {
	groups, err := Groups(dataset)
	if err != nil {
		return err
	}

	for i, entry := range dataset {
		if _, err := fmt.Fprintf(writer, "%s\t%d\n", groups[i], entry.Count); err != nil {
			return fmt.Errorf("writing diagnostics: %w", err)
		}
	}

	return nil
}

// Build assembles the go-chart definition for dataset.
func Build(dataset types.Dataset, params Params) (chart.BarChart, error) {
	if len(dataset) == 0 {
		return chart.BarChart{}, ErrEmptyDataset
	}

	params = params.withDefaults()

	groups, err := Groups(dataset)
	if err != nil {
		return chart.BarChart{}, err
	}

	width, height := params.Size()
	values := dataset.Values()
	maxCount := int(floats.Max(values))
	ticks := Ticks(maxCount)

	metrics, err := newTextMetrics(params.DPI)
	if err != nil {
		return chart.BarChart{}, err
	}

	padding := layout(metrics, groups, width, height, params)

	// go-chart moves the plot right of the tick labels, inside the padding.
	plotWidth := width - padding.Left - padding.Right - chart.DefaultYAxisMargin - metrics.widest(ticks, axisPoints)
	slot := float64(plotWidth) / float64(len(dataset))
	barWidth := max(int(slot*barFraction), 1)
	barSpacing := max(int(slot*(1-barFraction)), 1)

	bars := make([]chart.Value, len(dataset))
	for i, entry := range dataset {
		bars[i] = chart.Value{
			Label: groups[i],
			Value: float64(entry.Count),
			Style: chart.Style{
				FillColor:   barColor,
				StrokeColor: barColor,
				StrokeWidth: 1,
			},
		}
	}

	gridLines := make([]chart.GridLine, len(ticks))
	for i, tick := range ticks {
		gridLines[i] = chart.GridLine{Value: tick.Value}
	}

	dash := params.px(2)
	subtitle := Subtitle(params.Coverage, params.Identity)
	titleTop := int(params.px(subtitlePoints)*1.4 + params.px(8))

	return chart.BarChart{
		Title: params.Title,
		TitleStyle: chart.Style{
			FontSize: titlePoints,
			Padding:  chart.Box{Top: titleTop},
		},
		Width:      width,
		Height:     height,
		DPI:        params.DPI,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{Padding: padding},
		XAxis: chart.Style{
			FontSize:            axisPoints,
			TextRotationDegrees: 90,
			TextWrap:            chart.TextWrapNone,
		},
		YAxis: chart.YAxis{
			AxisType:  chart.YAxisSecondary,
			Style:     chart.Style{FontSize: axisPoints, StrokeWidth: axisLineWidth},
			Range:     &chart.ContinuousRange{Min: 0, Max: float64(maxCount + 1)},
			Ticks:     ticks,
			GridLines: gridLines,
			GridMajorStyle: chart.Style{
				StrokeColor:     gridColor,
				StrokeWidth:     params.px(gridPoints),
				StrokeDashArray: []float64{dash, dash},
			},
		},
		Bars: bars,
		Elements: []chart.Renderable{
			subtitleRenderable(subtitle, width, params),
			axisCaption(ticks, params),
			valueLabels(dataset, barWidth, barSpacing, float64(maxCount+1)),
		},
	}, nil
}

// Render draws dataset as a PNG into writer. Nothing is written if rendering fails.
func Render(writer io.Writer, dataset types.Dataset, params Params) error {
	barChart, err := Build(dataset, params)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := barChart.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}

	if _, err := buf.WriteTo(writer); err != nil {
		return fmt.Errorf("writing chart: %w", err)
	}

	return nil
}

// textMetrics measures text with the font and resolution of the final image.
type textMetrics struct {
	renderer chart.Renderer
}

func newTextMetrics(dpi float64) (textMetrics, error) {
	font, err := chart.GetDefaultFont()
	if err != nil {
		return textMetrics{}, fmt.Errorf("loading font: %w", err)
	}

	renderer, err := chart.PNG(1, 1)
	if err != nil {
		return textMetrics{}, fmt.Errorf("creating renderer: %w", err)
	}

	renderer.SetDPI(dpi)
	renderer.SetFont(font)

	return textMetrics{renderer: renderer}, nil
}

func (m textMetrics) size(text string, points float64) chart.Box {
	m.renderer.SetFontSize(points)

	return m.renderer.MeasureText(text)
}

func (m textMetrics) widest(ticks []chart.Tick, points float64) int {
	m.renderer.SetFontSize(points)

	return widestTick(m.renderer, ticks)
}

// layout returns the figure padding. The left side holds the y caption only and the bottom holds the
// rotated group labels: go-chart adds the tick labels inside the padding on its own.
func layout(metrics textMetrics, groups []string, width, height int, params Params) chart.Box {
	edge := int(params.px(edgePoints))

	var labelLength int
	for _, group := range groups {
		labelLength = max(labelLength, metrics.size(group, axisPoints).Width())
	}

	below := chart.DefaultXAxisMargin + labelLength + edge
	tickHalf := metrics.size("0", axisPoints).Height() >> 1

	// go-chart lifts the plot bottom by the padding minus the tick height a second time when placing the
	// x labels, so half the space is requested. The lowest tick label must still fit under the plot.
	bottom := max((below+chart.DefaultVerticalTickHeight+1)/2, tickHalf+chart.DefaultVerticalTickHeight+1)

	caption := metrics.size(YName, axisPoints).Height()

	return chart.Box{
		Top:    int(marginTop * float64(height)),
		Bottom: bottom,
		Left:   axisLineWidth + int(params.px(captionPoints)) + caption + edge,
		Right:  int(marginRight * float64(width)),
	}
}

func subtitleRenderable(text string, width int, params Params) chart.Renderable {
	return func(renderer chart.Renderer, _ chart.Box, defaults chart.Style) {
		renderer.SetFont(defaults.Font)
		renderer.SetFontColor(chart.DefaultTextColor)

		box := subtitleBox(renderer, text, width, params)
		renderer.Text(text, box.Left, box.Bottom)
		renderer.ResetStyle()
	}
}

// subtitleBox is the area covered by the centred subtitle, its baseline being the bottom edge.
func subtitleBox(renderer chart.Renderer, text string, width int, params Params) chart.Box {
	renderer.SetFontSize(subtitlePoints)

	size := renderer.MeasureText(text)
	left := (width - size.Width()) / 2
	baseline := int(params.px(6)) + size.Height()

	return chart.Box{Top: baseline - size.Height(), Left: left, Right: left + size.Width(), Bottom: baseline}
}

// axisCaption writes YName bottom to top, centred on the plot, left of the y tick labels.
func axisCaption(ticks []chart.Tick, params Params) chart.Renderable {
	return func(renderer chart.Renderer, canvas chart.Box, defaults chart.Style) {
		renderer.ClearTextRotation()
		renderer.SetFont(defaults.Font)
		renderer.SetFontColor(chart.DefaultTextColor)

		box := captionBox(renderer, canvas, ticks, params)

		// Rotated text starts at the baseline origin and its glyphs rise towards the left.
		renderer.SetTextRotation(chart.DegreesToRadians(270))
		renderer.Text(YName, box.Right, box.Bottom)
		renderer.ResetStyle()
	}
}

// captionBox is the area covered by the rotated y caption.
func captionBox(renderer chart.Renderer, canvas chart.Box, ticks []chart.Tick, params Params) chart.Box {
	renderer.SetFontSize(axisPoints)

	size := renderer.MeasureText(YName)
	right := tickLabelLeft(renderer, canvas, ticks) - int(params.px(captionPoints))
	bottom := canvas.Top + canvas.Height()/2 + size.Width()/2

	return chart.Box{Top: bottom - size.Width(), Left: right - size.Height(), Right: right, Bottom: bottom}
}

// tickLabelLeft is the left edge of the widest y tick label, as placed by go-chart on a left axis.
func tickLabelLeft(renderer chart.Renderer, canvas chart.Box, ticks []chart.Tick) int {
	renderer.SetFontSize(axisPoints)

	return canvas.Left - axisLineWidth - chart.DefaultYAxisMargin - widestTick(renderer, ticks)
}

func widestTick(renderer chart.Renderer, ticks []chart.Tick) int {
	var widest int
	for _, tick := range ticks {
		widest = max(widest, renderer.MeasureText(tick.Label).Width())
	}

	return widest
}

// valueLabels prints each bar's count just above it.
func valueLabels(dataset types.Dataset, barWidth, barSpacing int, top float64) chart.Renderable {
	return func(renderer chart.Renderer, canvas chart.Box, defaults chart.Style) {
		renderer.SetFont(defaults.Font)
		renderer.SetFontColor(valueColor)

		for i, box := range valueBoxes(renderer, canvas, dataset, barWidth, barSpacing, top) {
			renderer.Text(strconv.Itoa(dataset[i].Count), box.Left, box.Bottom)
		}

		renderer.ResetStyle()
	}
}

// valueBoxes returns the area of every value label. Bar geometry is derived the same way go-chart lays
// out the bars inside the final canvas.
func valueBoxes(
	renderer chart.Renderer, canvas chart.Box, dataset types.Dataset, barWidth, barSpacing int, top float64,
) []chart.Box {
	renderer.SetFontSize(valuePoints)

	width, spacing := barGeometry(canvas.Width(), len(dataset), barWidth, barSpacing)
	yRange := &chart.ContinuousRange{Min: 0, Max: top, Domain: canvas.Height()}
	boxes := make([]chart.Box, len(dataset))

	for i, entry := range dataset {
		size := renderer.MeasureText(strconv.Itoa(entry.Count))
		center := canvas.Left + i*(width+spacing) + spacing>>1 + width>>1
		baseline := canvas.Bottom - yRange.Translate(float64(entry.Count)+labelOffset)
		left := center - size.Width()>>1

		boxes[i] = chart.Box{Top: baseline - size.Height(), Left: left, Right: left + size.Width(), Bottom: baseline}
	}

	return boxes
}

// barGeometry mirrors go-chart's shrinking of bars and gaps when they overflow the canvas.
func barGeometry(canvasWidth, count, barWidth, barSpacing int) (int, int) {
	spacing := barSpacing
	if count*(barWidth+barSpacing) > canvasWidth {
		spacing = 0
		if rest := canvasWidth - count*barWidth; rest > 0 {
			spacing = ceilDiv(rest, count)
		}
	}

	width := barWidth
	if count*(barWidth+spacing) > canvasWidth {
		width = 0
		if rest := canvasWidth - count*spacing; rest > 0 {
			width = ceilDiv(rest, count)
		}
	}

	return width, spacing
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
