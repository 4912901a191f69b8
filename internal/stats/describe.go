// Package stats is the read-only analysis engine: descriptive statistics,
// anomaly detection, temporal trends, correlations, cross-sectional
// comparison and insight synthesis over a cleaned, derived table.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/ecotrilha/ecodata-cli/internal/dataset"
)

// Description holds the descriptive statistics of one numeric column.
type Description struct {
	Column   string
	Count    int
	Mean     float64
	Std      float64
	Min      float64
	Q25      float64
	Median   float64
	Q75      float64
	Max      float64
	Mode     float64
	Skewness float64
	Kurtosis float64
}

// Describe computes descriptive statistics for every numeric column,
// including the year and the derived metrics. Columns with no non-null
// values are omitted; an empty table yields an empty result, not an error.
func Describe(t *dataset.EnrichedTable) []Description {
	var out []Description
	for _, m := range dataset.AnalysisMetrics() {
		vals := nonNull(t, m)
		if len(vals) == 0 {
			continue
		}
		sorted := append([]float64(nil), vals...)
		sort.Float64s(sorted)
		out = append(out, Description{
			Column:   m.Name,
			Count:    len(vals),
			Mean:     stat.Mean(vals, nil),
			Std:      stat.StdDev(vals, nil),
			Min:      sorted[0],
			Q25:      Quantile(sorted, 0.25),
			Median:   Quantile(sorted, 0.5),
			Q75:      Quantile(sorted, 0.75),
			Max:      sorted[len(sorted)-1],
			Mode:     mode(sorted),
			Skewness: stat.Skew(vals, nil),
			Kurtosis: stat.ExKurtosis(vals, nil),
		})
	}
	return out
}

// mode returns the most frequent value; ties resolve to the smallest value.
func mode(sorted []float64) float64 {
	best := sorted[0]
	bestCount := 0
	i := 0
	for i < len(sorted) {
		j := i
		for j < len(sorted) && sorted[j] == sorted[i] {
			j++
		}
		if j-i > bestCount {
			bestCount = j - i
			best = sorted[i]
		}
		i = j
	}
	return best
}

func nonNull(t *dataset.EnrichedTable, m dataset.Metric) []float64 {
	out := make([]float64, 0, t.Len())
	for i := range t.Records {
		if v := m.Get(&t.Records[i]); !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
