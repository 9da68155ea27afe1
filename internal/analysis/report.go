package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/fifaviz-cli/internal/dataset"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Options controls the dataset summary.
type Options struct {
	// SampleRows determines how many example rows to include in the report.
	SampleRows int
	// TopValues caps the categorical values listed per column.
	TopValues int
	// GroupBy computes per-group means of numeric columns for this column. Empty disables.
	GroupBy string
}

// DefaultOptions returns reasonable defaults for the player summary.
func DefaultOptions() Options {
	return Options{
		SampleRows: 5,
		TopValues:  8,
		GroupBy:    dataset.ColAge,
	}
}

// Report is a markdown-friendly summary of a cleaned dataset.
type Report struct {
	Name     string
	Rows     int
	Columns  []string
	Cols     []ColumnSummary
	Samples  [][]string
	Groups   []GroupResult
	GroupBy  string
	Warnings []string
}

// ColumnSummary captures inferred type and statistics per column.
type ColumnSummary struct {
	Name    string
	Kind    string // numeric|categorical|boolean
	NonNull int
	Missing int
	Unique  int
	// Numeric stats
	Min  float64
	Max  float64
	Mean float64
	Std  float64
	// Categorical top values
	TopValues []CategoryCount
}

// GroupResult captures aggregated metrics per group key.
type GroupResult struct {
	Key     string
	Size    int
	Metrics map[string]NumSummary // by column name
}

type NumSummary struct {
	Count          int
	Min, Max, Mean float64
}

// Summarize builds a Report from a dataset. It only reads from ds.
func Summarize(ds *dataset.Dataset, opt Options) (*Report, error) {
	if opt.SampleRows < 0 {
		opt.SampleRows = 0
	}
	if opt.TopValues <= 0 {
		opt.TopValues = 8
	}
	rep := &Report{Name: ds.Name, Rows: ds.Len(), Columns: ds.Names(), GroupBy: opt.GroupBy}
	rep.Samples = ds.Records(opt.SampleRows)

	numeric := map[string][]float64{}
	var numCols []string
	for _, name := range ds.Names() {
		kind, err := ds.Kind(name)
		if err != nil {
			return nil, err
		}
		s := ColumnSummary{Name: name, Kind: kind}
		if kind == "numeric" {
			vals, err := ds.Floats(name)
			if err != nil {
				return nil, err
			}
			fin := Finite(vals)
			s.NonNull = len(fin)
			s.Missing = len(vals) - len(fin)
			if len(fin) > 0 {
				s.Min = floats.Min(fin)
				s.Max = floats.Max(fin)
				s.Mean = stat.Mean(fin, nil)
			}
			if len(fin) > 1 {
				s.Std = stat.StdDev(fin, nil)
			}
			numeric[name] = vals
			numCols = append(numCols, name)
		} else {
			labels, err := ds.Strings(name)
			if err != nil {
				return nil, err
			}
			counts := ValueCounts(labels)
			for _, c := range counts {
				s.NonNull += c.Count
			}
			s.Missing = len(labels) - s.NonNull
			s.Unique = len(counts)
			s.TopValues = TopN(counts, opt.TopValues)
		}
		if s.Missing > 0 && (name == dataset.ColValue || name == dataset.ColWeight) {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("%s has %d missing values (kept as NaN)", name, s.Missing))
		}
		rep.Cols = append(rep.Cols, s)
	}

	if opt.GroupBy != "" {
		groups, err := groupSummaries(ds, opt.GroupBy, numCols, numeric)
		if err != nil {
			return nil, err
		}
		rep.Groups = groups
	}
	return rep, nil
}

func groupSummaries(ds *dataset.Dataset, by string, numCols []string, numeric map[string][]float64) ([]GroupResult, error) {
	keys, err := ds.Strings(by)
	if err != nil {
		return nil, err
	}
	type gAcc struct {
		size int
		sum  map[string]float64
		cnt  map[string]int
		min  map[string]float64
		max  map[string]float64
	}
	groups := map[string]*gAcc{}
	for i, k := range keys {
		if k == "" {
			continue
		}
		ga := groups[k]
		if ga == nil {
			ga = &gAcc{sum: map[string]float64{}, cnt: map[string]int{}, min: map[string]float64{}, max: map[string]float64{}}
			groups[k] = ga
		}
		ga.size++
		for _, c := range numCols {
			if c == by {
				continue
			}
			x := numeric[c][i]
			if math.IsNaN(x) {
				continue
			}
			ga.sum[c] += x
			ga.cnt[c]++
			if _, ok := ga.min[c]; !ok || x < ga.min[c] {
				ga.min[c] = x
			}
			if _, ok := ga.max[c]; !ok || x > ga.max[c] {
				ga.max[c] = x
			}
		}
	}
	out := make([]GroupResult, 0, len(groups))
	for k, ga := range groups {
		gr := GroupResult{Key: k, Size: ga.size, Metrics: map[string]NumSummary{}}
		for c, n := range ga.cnt {
			gr.Metrics[c] = NumSummary{Count: n, Min: ga.min[c], Max: ga.max[c], Mean: ga.sum[c] / float64(n)}
		}
		out = append(out, gr)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Size == out[j].Size {
			return out[i].Key < out[j].Key
		}
		return out[i].Size > out[j].Size
	})
	if len(out) > 20 {
		out = out[:20]
	}
	return out, nil
}

// Markdown renders a compact report suitable for terminals or standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(r.Cols)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Cols {
		total := c.NonNull + c.Missing
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %.1f%%)", safeName(c.Name), c.Kind, c.NonNull, missPct))
		switch c.Kind {
		case "numeric":
			b.WriteString(fmt.Sprintf(" — min %.4g, max %.4g, mean %.4g, std %.4g", c.Min, c.Max, c.Mean, c.Std))
		default:
			if len(c.TopValues) > 0 {
				b.WriteString(" — top: ")
				for i, kv := range c.TopValues {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
				}
				if c.Unique > len(c.TopValues) {
					b.WriteString(fmt.Sprintf("; unique=%d", c.Unique))
				}
			}
		}
		b.WriteString("\n")
	}
	if len(r.Groups) > 0 {
		b.WriteString("\n[GROUP-BY SUMMARY]\n")
		for _, g := range r.Groups {
			b.WriteString(fmt.Sprintf("- %s=%s (n=%d)\n", r.GroupBy, safeVal(g.Key), g.Size))
			keys := make([]string, 0, len(g.Metrics))
			for k := range g.Metrics {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			maxk := 6
			if len(keys) < maxk {
				maxk = len(keys)
			}
			for i := 0; i < maxk; i++ {
				m := g.Metrics[keys[i]]
				b.WriteString(fmt.Sprintf("  • %s: mean %.4g (min %.4g, max %.4g)\n", keys[i], m.Mean, m.Min, m.Max))
			}
		}
	}
	if len(r.Samples) > 0 {
		b.WriteString("\n[HEAD AND SAMPLE ROWS]\n")
		b.WriteString("| ")
		for i, c := range r.Columns {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(safeName(c))
		}
		b.WriteString(" |\n")
		b.WriteString("| ")
		for i := range r.Columns {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString("---")
		}
		b.WriteString(" |\n")
		for _, row := range r.Samples {
			b.WriteString("| ")
			for i := range r.Columns {
				if i > 0 {
					b.WriteString(" | ")
				}
				val := ""
				if i < len(row) {
					val = row[i]
				}
				if len(val) > 80 {
					val = val[:77] + "..."
				}
				b.WriteString(safeVal(val))
			}
			b.WriteString(" |\n")
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}
func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
