// Package render draws the player charts and encodes them as PNG.
//
// Cartesian figures (line, histogram, box) are built with gonum/plot and
// rasterized through vgimg at the configured DPI. Pie figures are drawn with
// go-chart, which gonum/plot does not cover.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// ErrNoData is returned when a figure has nothing to draw.
var ErrNoData = errors.New("no data to plot")

// Options controls rasterization.
type Options struct {
	DPI float64
}

// DefaultOptions renders at 300 dots per inch.
func DefaultOptions() Options { return Options{DPI: 300} }

func (o Options) dpi() float64 {
	if o.DPI <= 0 {
		return 300
	}
	return o.DPI
}

// Labels are the texts around a cartesian figure.
type Labels struct {
	Title  string
	XLabel string
	YLabel string
}

func newPlot(l Labels) *plot.Plot {
	p := plot.New()
	p.Title.Text = l.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = l.XLabel
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.Text = l.YLabel
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	return p
}

// encodePNG draws p onto a w×h canvas and returns the PNG bytes.
func encodePNG(p *plot.Plot, w, h vg.Length, opt Options) ([]byte, error) {
	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(int(opt.dpi())))
	p.Draw(draw.New(c))
	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// HexColor parses "#RRGGBB" (the '#' is optional).
func HexColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func paletteColor(palette []string, i int) (color.NRGBA, error) {
	if len(palette) == 0 {
		return color.NRGBA{A: 0xff}, nil
	}
	return HexColor(palette[i%len(palette)])
}
