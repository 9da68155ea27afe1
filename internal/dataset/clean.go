package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/series"
	"github.com/spf13/cast"
)

// Weight Category labels. Bins are half-open: [0,70), [70,80), [80,∞).
const (
	WeightUnder70 = "<70kg"
	Weight70To80  = "70-80kg"
	WeightOver80  = ">80kg"
)

// WeightCategories lists the bucket labels in bin order.
var WeightCategories = []string{WeightUnder70, Weight70To80, WeightOver80}

// ErrUnparsable marks a text cell that does not match the expected encoding.
var ErrUnparsable = errors.New("unparsable value")

// ParseError describes the first cell that failed cleaning.
type ParseError struct {
	Column string
	Row    int // 1-based data row, header excluded
	Raw    string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("clean %s: row %d: cannot parse %q: %v", e.Column, e.Row, e.Raw, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrUnparsable, e.Err} }

// ParseValue converts a text market value such as "€10.5M" to millions.
// Every '€' and 'M' is removed before parsing.
func ParseValue(s string) (float64, error) {
	raw := strings.ReplaceAll(s, "€", "")
	raw = strings.ReplaceAll(raw, "M", "")
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}

// ParseWeight converts a text weight such as "75kg" to kilograms.
func ParseWeight(s string) (float64, error) {
	raw := strings.ReplaceAll(s, "kg", "")
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}

// WeightCategory buckets a weight in kilograms. NaN and negative weights
// have no bucket and yield "".
func WeightCategory(kg float64) string {
	switch {
	case math.IsNaN(kg) || kg < 0:
		return ""
	case kg < 70:
		return WeightUnder70
	case kg < 80:
		return Weight70To80
	default:
		return WeightOver80
	}
}

// Clean normalizes Value and Weight to float columns and adds Weight Category.
// Text columns are stripped and parsed; columns already numeric are converted
// as-is, without any unit scaling. The first unparsable cell aborts cleaning
// and leaves the dataset unchanged.
func (d *Dataset) Clean() error {
	if d.cleaned {
		return nil
	}
	values, err := normalizeColumn(d.df.Col(ColValue), ColValue, ParseValue)
	if err != nil {
		return err
	}
	weights, err := normalizeColumn(d.df.Col(ColWeight), ColWeight, ParseWeight)
	if err != nil {
		return err
	}
	cats := make([]string, len(weights))
	for i, w := range weights {
		c := WeightCategory(w)
		if c == "" {
			c = "NaN"
		}
		cats[i] = c
	}

	df := d.df.
		Mutate(series.New(values, series.Float, ColValue)).
		Mutate(series.New(weights, series.Float, ColWeight)).
		Mutate(series.New(cats, series.String, ColWeightCategory))
	if df.Err != nil {
		return fmt.Errorf("apply cleaned columns: %w", df.Err)
	}
	d.df = df
	d.cleaned = true
	return nil
}

func normalizeColumn(s series.Series, name string, parse func(string) (float64, error)) ([]float64, error) {
	out := make([]float64, s.Len())
	text := s.Type() == series.String
	for i := range out {
		e := s.Elem(i)
		if e.IsNA() {
			out[i] = math.NaN()
			continue
		}
		var (
			x   float64
			err error
		)
		if text {
			x, err = parse(e.String())
		} else {
			x, err = cast.ToFloat64E(e.Val())
		}
		if err != nil {
			return nil, &ParseError{Column: name, Row: i + 1, Raw: e.String(), Err: err}
		}
		out[i] = x
	}
	return out, nil
}
