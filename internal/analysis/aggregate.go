package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// GroupMean is the mean of a numeric column for one group key.
type GroupMean struct {
	Key   float64
	Mean  float64
	Count int
}

// CategoryCount is the number of records holding one categorical value.
type CategoryCount struct {
	Value string
	Count int
}

// MeanBy groups values by the key at the same index and returns one mean per
// key in ascending key order. NaN keys and NaN values are skipped; a key whose
// values are all NaN is omitted.
func MeanBy(keys, values []float64) []GroupMean {
	groups := map[float64][]float64{}
	n := len(keys)
	if len(values) < n {
		n = len(values)
	}
	for i := 0; i < n; i++ {
		k, v := keys[i], values[i]
		if math.IsNaN(k) || math.IsNaN(v) {
			continue
		}
		groups[k] = append(groups[k], v)
	}
	out := make([]GroupMean, 0, len(groups))
	for k, vs := range groups {
		out = append(out, GroupMean{Key: k, Mean: stat.Mean(vs, nil), Count: len(vs)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// ValueCounts counts each non-empty label and orders the result by count
// descending. Equal counts keep first-encounter order.
func ValueCounts(labels []string) []CategoryCount {
	idx := map[string]int{}
	var out []CategoryCount
	for _, l := range labels {
		if l == "" {
			continue
		}
		i, ok := idx[l]
		if !ok {
			i = len(out)
			idx[l] = i
			out = append(out, CategoryCount{Value: l})
		}
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// TopN returns the first n entries of a ValueCounts result.
func TopN(counts []CategoryCount, n int) []CategoryCount {
	if n < 0 {
		n = 0
	}
	if n > len(counts) {
		n = len(counts)
	}
	out := make([]CategoryCount, n)
	copy(out, counts[:n])
	return out
}

// Labels returns the category values in order.
func Labels(counts []CategoryCount) []string {
	out := make([]string, len(counts))
	for i, c := range counts {
		out[i] = c.Value
	}
	return out
}

// Percentages returns each category's share of the total, in percent.
func Percentages(counts []CategoryCount) []float64 {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	out := make([]float64, len(counts))
	if total == 0 {
		return out
	}
	for i, c := range counts {
		out[i] = float64(c.Count) * 100 / float64(total)
	}
	return out
}

// GroupValues collects values per label, one slice per entry of order.
// Labels not in order and NaN values are skipped.
func GroupValues(labels []string, values []float64, order []string) [][]float64 {
	pos := make(map[string]int, len(order))
	for i, o := range order {
		pos[o] = i
	}
	out := make([][]float64, len(order))
	n := len(labels)
	if len(values) < n {
		n = len(values)
	}
	for i := 0; i < n; i++ {
		p, ok := pos[labels[i]]
		if !ok || math.IsNaN(values[i]) {
			continue
		}
		out[p] = append(out[p], values[i])
	}
	return out
}

// Finite drops NaN and infinite values.
func Finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out
}
