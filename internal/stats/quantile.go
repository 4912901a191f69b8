package stats

import (
	"math"
	"sort"
)

// Quantile returns the q-th quantile of an ascending-sorted slice using
// linear interpolation between order statistics (pos = q·(n−1)). The outlier
// bounds and quartile statistics are all defined against this estimator.
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// Median returns the median of values. The input is not modified.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	cp := make([]float64, len(values))
	copy(cp, values)
	sort.Float64s(cp)
	return Quantile(cp, 0.5)
}
