package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/ecotrilha/ecodata-cli/internal/dataset"
)

// StrongCorrelation is the |r| threshold above which a pair is reported as
// strong.
const StrongCorrelation = 0.7

// Matrix is a symmetric Pearson correlation matrix with unit diagonal.
type Matrix struct {
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]
}

// At returns the coefficient for a pair of column names.
func (m *Matrix) At(a, b string) (float64, bool) {
	ia, ib := -1, -1
	for i, c := range m.Columns {
		if c == a {
			ia = i
		}
		if c == b {
			ib = i
		}
	}
	if ia < 0 || ib < 0 {
		return 0, false
	}
	return m.Values[ia][ib], true
}

// Pair is one off-diagonal correlation.
type Pair struct {
	A, B string
	R    float64
}

// Correlations computes the Pearson correlation matrix over every numeric
// column, pairwise on rows where both values are non-null. Undefined
// coefficients (constant columns, fewer than two shared rows) are reported
// as 0; the diagonal is 1 regardless.
func Correlations(t *dataset.EnrichedTable) *Matrix {
	metrics := dataset.AnalysisMetrics()
	n := len(metrics)
	m := &Matrix{Columns: make([]string, n), Values: make([][]float64, n)}
	for i, mt := range metrics {
		m.Columns[i] = mt.Name
		m.Values[i] = make([]float64, n)
		m.Values[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := pearson(t, metrics[i], metrics[j])
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}

func pearson(t *dataset.EnrichedTable, a, b dataset.Metric) float64 {
	xs := make([]float64, 0, t.Len())
	ys := make([]float64, 0, t.Len())
	for i := range t.Records {
		r := &t.Records[i]
		x, y := a.Get(r), b.Get(r)
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	if len(xs) < 2 {
		return 0
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}

// StrongPairs returns the off-diagonal pairs with |r| above the threshold,
// strongest first. Ties order by column names.
func (m *Matrix) StrongPairs(threshold float64) []Pair {
	var pairs []Pair
	n := len(m.Columns)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := m.Values[i][j]
			if math.Abs(r) > threshold {
				pairs = append(pairs, Pair{A: m.Columns[i], B: m.Columns[j], R: r})
			}
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		ai, aj := math.Abs(pairs[i].R), math.Abs(pairs[j].R)
		if ai == aj {
			return pairs[i].A+pairs[i].B < pairs[j].A+pairs[j].B
		}
		return ai > aj
	})
	return pairs
}
