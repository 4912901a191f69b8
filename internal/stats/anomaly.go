package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/ecotrilha/ecodata-cli/internal/dataset"
)

// Anomaly detection methods.
const (
	MethodIQR    = "iqr"
	MethodZScore = "zscore"
)

// Detection thresholds. The 1.5× IQR band is intentionally tighter than the
// 3× band the cleaner clips at: detection reports suspicious-but-plausible
// values that cleaning deliberately left alone.
const (
	detectIQRFactor = 1.5
	zScoreThreshold = 3.0
)

// Anomaly is one flagged (city, year, value) observation.
type Anomaly struct {
	City  string
	Year  int
	Value float64
}

// Detect flags outlying rows per numeric column (year and city excluded)
// using the given method. Columns with no flagged rows are omitted from the
// result. Null values are never flagged.
func Detect(t *dataset.EnrichedTable, method string) (map[string][]Anomaly, error) {
	switch method {
	case MethodIQR, MethodZScore:
	default:
		return nil, fmt.Errorf("método de detecção desconhecido: %q", method)
	}

	out := make(map[string][]Anomaly)
	for _, m := range dataset.DetectionMetrics() {
		flagged := detectColumn(t, m, method)
		if len(flagged) > 0 {
			out[m.Name] = flagged
		}
	}
	return out, nil
}

func detectColumn(t *dataset.EnrichedTable, m dataset.Metric, method string) []Anomaly {
	vals := nonNull(t, m)
	if len(vals) == 0 {
		return nil
	}

	var isOutlier func(v float64) bool
	switch method {
	case MethodIQR:
		sorted := append([]float64(nil), vals...)
		sort.Float64s(sorted)
		q1 := Quantile(sorted, 0.25)
		q3 := Quantile(sorted, 0.75)
		iqr := q3 - q1
		lo := q1 - detectIQRFactor*iqr
		hi := q3 + detectIQRFactor*iqr
		// When all values are equal the band collapses to the value itself
		// and the strict comparisons flag nothing.
		isOutlier = func(v float64) bool { return v < lo || v > hi }
	case MethodZScore:
		mean := stat.Mean(vals, nil)
		std := stat.PopStdDev(vals, nil)
		if std == 0 {
			return nil
		}
		isOutlier = func(v float64) bool { return math.Abs((v-mean)/std) > zScoreThreshold }
	}

	var flagged []Anomaly
	for i := range t.Records {
		r := &t.Records[i]
		v := m.Get(r)
		if math.IsNaN(v) {
			continue
		}
		if isOutlier(v) {
			flagged = append(flagged, Anomaly{City: r.City, Year: r.Year, Value: v})
		}
	}
	return flagged
}
