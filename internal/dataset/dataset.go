// Package dataset loads the player table, normalizes its mixed-encoding
// columns and exposes read-only column views to the aggregation and
// rendering steps.
package dataset

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Column names of the player table.
const (
	ColAge            = "Age"
	ColOverall        = "Overall"
	ColValue          = "Value"
	ColWeight         = "Weight"
	ColPreferredFoot  = "Preferred Foot"
	ColClub           = "Club"
	ColWeightCategory = "Weight Category"
)

// RequiredColumns must be present in every input file (case-sensitive).
var RequiredColumns = []string{ColAge, ColOverall, ColValue, ColWeight, ColPreferredFoot, ColClub}

var (
	// ErrMissingColumn is returned when the input lacks a required column.
	ErrMissingColumn = errors.New("missing required column")
	// ErrUnknownColumn is returned by accessors for a column not in the table.
	ErrUnknownColumn = errors.New("unknown column")
)

// Dataset wraps the loaded table. After Clean it is treated as read-only.
type Dataset struct {
	Name    string
	df      dataframe.DataFrame
	cleaned bool
}

// LoadOptions controls how the input file is read.
type LoadOptions struct {
	// Delimiter for CSV. If 0, ',' is used ('\t' for .tsv files).
	Delimiter rune
	// SheetName selects the XLSX sheet; SheetIndex (1-based) is used when empty.
	SheetName  string
	SheetIndex int
}

// Load reads the dataset at path with the first registered reader that accepts it,
// and checks that every required column is present.
func Load(path string, opt LoadOptions) (*Dataset, error) {
	r := readerFor(path)
	df, err := r.Read(path, opt)
	if err != nil {
		return nil, err
	}
	if err := requireColumns(df, RequiredColumns); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return &Dataset{Name: filepath.Base(path), df: df}, nil
}

// FromRecords builds a dataset from in-memory records, header first.
func FromRecords(name string, records [][]string) (*Dataset, error) {
	df := dataframe.LoadRecords(records, dataframe.NaNValues(naValues))
	if df.Err != nil {
		return nil, fmt.Errorf("load records: %w", df.Err)
	}
	if err := requireColumns(df, RequiredColumns); err != nil {
		return nil, err
	}
	return &Dataset{Name: name, df: df}, nil
}

func requireColumns(df dataframe.DataFrame, cols []string) error {
	have := make(map[string]struct{}, df.Ncol())
	for _, n := range df.Names() {
		have[n] = struct{}{}
	}
	var missing []string
	for _, c := range cols {
		if _, ok := have[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

// Len returns the number of records.
func (d *Dataset) Len() int { return d.df.Nrow() }

// Names returns column names in file order.
func (d *Dataset) Names() []string { return d.df.Names() }

// Cleaned reports whether Clean has completed.
func (d *Dataset) Cleaned() bool { return d.cleaned }

func (d *Dataset) col(name string) (series.Series, error) {
	for _, n := range d.df.Names() {
		if n == name {
			return d.df.Col(name), nil
		}
	}
	return series.Series{}, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
}

// Kind returns "numeric", "categorical" or "boolean" based on the inferred column type.
func (d *Dataset) Kind(name string) (string, error) {
	s, err := d.col(name)
	if err != nil {
		return "", err
	}
	switch s.Type() {
	case series.Int, series.Float:
		return "numeric", nil
	case series.Bool:
		return "boolean", nil
	default:
		return "categorical", nil
	}
}

// Floats returns a copy of a column as float64, with NaN for missing cells.
func (d *Dataset) Floats(name string) ([]float64, error) {
	s, err := d.col(name)
	if err != nil {
		return nil, err
	}
	return s.Float(), nil
}

// Strings returns a copy of a column as text, with "" for missing cells.
func (d *Dataset) Strings(name string) ([]string, error) {
	s, err := d.col(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, s.Len())
	for i := range out {
		e := s.Elem(i)
		if e.IsNA() {
			continue
		}
		out[i] = e.String()
	}
	return out, nil
}

// Records returns up to n rows as text, header excluded.
func (d *Dataset) Records(n int) [][]string {
	recs := d.df.Records()
	if len(recs) <= 1 || n <= 0 {
		return nil
	}
	rows := recs[1:]
	if n < len(rows) {
		rows = rows[:n]
	}
	return rows
}

// FilterClubs returns a new dataset holding only records whose club is in clubs.
// The receiver is left untouched.
func (d *Dataset) FilterClubs(clubs []string) (*Dataset, error) {
	sub := d.df.Filter(dataframe.F{
		Colname:    ColClub,
		Comparator: series.In,
		Comparando: clubs,
	})
	if sub.Err != nil {
		return nil, fmt.Errorf("filter clubs: %w", sub.Err)
	}
	return &Dataset{Name: d.Name, df: sub, cleaned: d.cleaned}, nil
}

// Head renders the first n records as a table.
func (d *Dataset) Head(n int) string {
	if n <= 0 || d.df.Nrow() == 0 {
		return ""
	}
	if n > d.df.Nrow() {
		n = d.df.Nrow()
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return d.df.Subset(idx).String()
}
