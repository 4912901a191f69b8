// Package cleaning prepares a raw table for analysis: duplicate removal,
// grouped-median imputation, outlier treatment and canonical ordering.
package cleaning

import (
	"math"
	"sort"

	"github.com/ecotrilha/ecodata-cli/internal/dataset"
	"github.com/ecotrilha/ecodata-cli/internal/stats"
)

// Multiplier for the IQR band used to treat outliers. Deliberately wider than
// the 1.5× used for anomaly detection: cleaning must not flatten legitimately
// high or low cities, only clearly broken values.
const cleanIQRFactor = 3.0

// Report counts what the cleaner changed. Informational only; no downstream
// stage depends on it.
type Report struct {
	DuplicatesRemoved int
	NullsFilled       map[string]int
	OutliersTreated   map[string]int
}

// Clean mutates t in place until it holds no duplicate rows, no nulls (except
// in a column with no data at all) and no value outside the 3×IQR band of its
// column, then sorts by (city, year). Cleaning an already-clean table is a
// no-op.
func Clean(t *dataset.Table) *Report {
	rep := &Report{
		NullsFilled:     make(map[string]int),
		OutliersTreated: make(map[string]int),
	}

	dropDuplicates(t, rep)
	for _, f := range dataset.MeasuredFields() {
		imputeNulls(t, f, rep)
	}
	for _, f := range dataset.MeasuredFields() {
		treatOutliers(t, f, rep)
	}
	t.SortByCityYear()
	return rep
}

func dropDuplicates(t *dataset.Table, rep *Report) {
	seen := make(map[string]bool, t.Len())
	kept := t.Records[:0]
	for i := range t.Records {
		k := t.Records[i].Key()
		if seen[k] {
			rep.DuplicatesRemoved++
			continue
		}
		seen[k] = true
		kept = append(kept, t.Records[i])
	}
	t.Records = kept
}

// imputeNulls fills every NaN in the column with the median of the same
// city's non-null values. A city with no non-null values at all falls back to
// the column-wide median; only a fully null column leaves NaN behind.
func imputeNulls(t *dataset.Table, f dataset.Field, rep *Report) {
	byCity := make(map[string][]float64)
	var all []float64
	for i := range t.Records {
		r := &t.Records[i]
		if v := f.Get(r); !math.IsNaN(v) {
			byCity[r.City] = append(byCity[r.City], v)
			all = append(all, v)
		}
	}
	if len(all) == len(t.Records) {
		return
	}
	globalMedian := stats.Median(all)

	medians := make(map[string]float64, len(byCity))
	for city, vals := range byCity {
		medians[city] = stats.Median(vals)
	}
	for i := range t.Records {
		r := &t.Records[i]
		if !math.IsNaN(f.Get(r)) {
			continue
		}
		fill, ok := medians[r.City]
		if !ok {
			fill = globalMedian
		}
		// A fully null column has no median to fill from; the value stays
		// NaN and is not reported as filled.
		if math.IsNaN(fill) {
			continue
		}
		f.Set(r, fill)
		rep.NullsFilled[f.Name]++
	}
}

// treatOutliers replaces values outside [Q1−3·IQR, Q3+3·IQR] with the city's
// median for the column, then recomputes the band and repeats until a pass
// replaces nothing. A single pass is not enough: replacing an extreme value
// shifts the quartiles, so the band recomputed on the treated column can
// exclude a value the first pass kept. Each pass pulls extremes to in-band
// medians, strictly shrinking the spread, so the loop terminates. Rows are
// preserved, never dropped.
func treatOutliers(t *dataset.Table, f dataset.Field, rep *Report) {
	for {
		n := treatOutliersPass(t, f)
		if n == 0 {
			return
		}
		rep.OutliersTreated[f.Name] += n
	}
}

// treatOutliersPass runs one replacement pass and reports how many values it
// changed. The replacement median is taken over in-band values only, so the
// substitute cannot itself violate the band it was computed against.
func treatOutliersPass(t *dataset.Table, f dataset.Field) int {
	var all []float64
	for i := range t.Records {
		if v := f.Get(&t.Records[i]); !math.IsNaN(v) {
			all = append(all, v)
		}
	}
	if len(all) == 0 {
		return 0
	}
	sortedAll := append([]float64(nil), all...)
	sort.Float64s(sortedAll)
	q1 := stats.Quantile(sortedAll, 0.25)
	q3 := stats.Quantile(sortedAll, 0.75)
	iqr := q3 - q1
	lo := q1 - cleanIQRFactor*iqr
	hi := q3 + cleanIQRFactor*iqr

	byCity := make(map[string][]float64)
	var inBand []float64
	for i := range t.Records {
		r := &t.Records[i]
		if v := f.Get(r); !math.IsNaN(v) && v >= lo && v <= hi {
			byCity[r.City] = append(byCity[r.City], v)
			inBand = append(inBand, v)
		}
	}
	medians := make(map[string]float64, len(byCity))
	for city, vals := range byCity {
		medians[city] = stats.Median(vals)
	}
	globalMedian := stats.Median(inBand)

	treated := 0
	for i := range t.Records {
		r := &t.Records[i]
		v := f.Get(r)
		if math.IsNaN(v) || (v >= lo && v <= hi) {
			continue
		}
		fill, ok := medians[r.City]
		if !ok {
			fill = globalMedian
		}
		f.Set(r, fill)
		treated++
	}
	return treated
}
