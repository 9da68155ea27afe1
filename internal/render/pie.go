package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Slice is one pie wedge.
type Slice struct {
	Label   string
	Count   float64
	Percent float64
}

// PieSpec describes a pie chart with percentage labels.
type PieSpec struct {
	Title   string
	Slices  []Slice
	Palette []string
}

// SliceLabel formats a wedge label with one decimal of percentage.
func SliceLabel(s Slice) string {
	return fmt.Sprintf("%s %.1f%%", s.Label, s.Percent)
}

// Pie renders an 8×8 in pie chart. Colors cycle through the palette.
func Pie(spec PieSpec, opt Options) ([]byte, error) {
	var total float64
	for _, s := range spec.Slices {
		total += s.Count
	}
	if len(spec.Slices) == 0 || total <= 0 {
		return nil, fmt.Errorf("pie %q: %w", spec.Title, ErrNoData)
	}
	values := make([]chart.Value, 0, len(spec.Slices))
	for i, s := range spec.Slices {
		fill := drawing.ColorBlack
		if len(spec.Palette) > 0 {
			fill = drawing.ColorFromHex(strings.TrimPrefix(spec.Palette[i%len(spec.Palette)], "#"))
		}
		values = append(values, chart.Value{
			Label: SliceLabel(s),
			Value: s.Count,
			Style: chart.Style{
				FillColor:   fill,
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1,
				FontSize:    12,
			},
		})
	}
	dpi := opt.dpi()
	side := int(8 * dpi)
	pie := chart.PieChart{
		Title:      spec.Title,
		TitleStyle: chart.Style{FontSize: 14},
		Width:      side,
		Height:     side,
		DPI:        dpi,
		Values:     values,
	}
	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("pie %q: %w", spec.Title, err)
	}
	return buf.Bytes(), nil
}
