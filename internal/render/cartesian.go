package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Marker selects the glyph drawn at each line vertex.
type Marker int

const (
	MarkerCircle Marker = iota
	MarkerSquare
)

func (m Marker) glyph() draw.GlyphDrawer {
	if m == MarkerSquare {
		return draw.SquareGlyph{}
	}
	return draw.CircleGlyph{}
}

// LineSpec describes a single-series line chart with markers.
type LineSpec struct {
	Labels
	X, Y   []float64
	Color  string
	Marker Marker
}

// Line renders a 10×6 in line chart with a grid.
func Line(spec LineSpec, opt Options) ([]byte, error) {
	if len(spec.X) == 0 || len(spec.X) != len(spec.Y) {
		return nil, fmt.Errorf("line %q: %w", spec.Title, ErrNoData)
	}
	col, err := HexColor(spec.Color)
	if err != nil {
		return nil, err
	}
	p := newPlot(spec.Labels)
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(spec.X))
	for i := range spec.X {
		pts[i].X = spec.X[i]
		pts[i].Y = spec.Y[i]
	}
	l, s, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, fmt.Errorf("line %q: %w", spec.Title, err)
	}
	l.LineStyle.Color = col
	l.LineStyle.Width = vg.Points(2)
	s.GlyphStyle.Color = col
	s.GlyphStyle.Shape = spec.Marker.glyph()
	s.GlyphStyle.Radius = vg.Points(3)
	p.Add(l, s)

	return encodePNG(p, 10*vg.Inch, 6*vg.Inch, opt)
}

// HistSpec describes a fixed-bin histogram.
type HistSpec struct {
	Labels
	Values []float64
	Bins   int
	Color  string
}

// Histogram renders a 10×6 in histogram with equal-width bins spanning
// [min, max] of the values, black bin edges and a faint grid.
func Histogram(spec HistSpec, opt Options) ([]byte, error) {
	if len(spec.Values) == 0 {
		return nil, fmt.Errorf("histogram %q: %w", spec.Title, ErrNoData)
	}
	bins := spec.Bins
	if bins <= 0 {
		bins = 10
	}
	col, err := HexColor(spec.Color)
	if err != nil {
		return nil, err
	}
	p := newPlot(spec.Labels)
	grid := plotter.NewGrid()
	faint := color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x4d}
	grid.Vertical.Color = faint
	grid.Horizontal.Color = faint
	p.Add(grid)

	h, err := plotter.NewHist(plotter.Values(spec.Values), bins)
	if err != nil {
		return nil, fmt.Errorf("histogram %q: %w", spec.Title, err)
	}
	h.FillColor = col
	h.LineStyle.Color = color.Black
	h.LineStyle.Width = vg.Points(0.75)
	p.Add(h)

	return encodePNG(p, 10*vg.Inch, 6*vg.Inch, opt)
}

// BoxSpec describes one box-and-whisker per named group, drawn in order.
type BoxSpec struct {
	Labels
	Groups  []string
	Values  [][]float64
	Palette []string
}

// Box renders a 12×6 in grouped box plot with rotated group tick labels.
func Box(spec BoxSpec, opt Options) ([]byte, error) {
	if len(spec.Groups) == 0 || len(spec.Groups) != len(spec.Values) {
		return nil, fmt.Errorf("box %q: %w", spec.Title, ErrNoData)
	}
	p := newPlot(spec.Labels)
	w := vg.Points(40)
	for i, vals := range spec.Values {
		if len(vals) == 0 {
			return nil, fmt.Errorf("box %q: group %q: %w", spec.Title, spec.Groups[i], ErrNoData)
		}
		b, err := plotter.NewBoxPlot(w, float64(i), plotter.Values(vals))
		if err != nil {
			return nil, fmt.Errorf("box %q: group %q: %w", spec.Title, spec.Groups[i], err)
		}
		col, err := paletteColor(spec.Palette, i)
		if err != nil {
			return nil, err
		}
		b.FillColor = col
		p.Add(b)
	}
	p.NominalX(spec.Groups...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	return encodePNG(p, 12*vg.Inch, 6*vg.Inch, opt)
}
