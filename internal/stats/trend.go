package stats

import (
	"math"
	"sort"

	"github.com/ecotrilha/ecodata-cli/internal/dataset"
)

// Trend labels.
const (
	TrendRising  = "Crescente"
	TrendFalling = "Decrescente"
	TrendStable  = "Estável"
)

// trendThreshold is the annualized percent change beyond which a series is
// labeled rising or falling.
const trendThreshold = 2.0

// TrendRecord summarizes the evolution of one variable in one city.
type TrendRecord struct {
	City           string
	Variable       string
	First          float64
	Last           float64
	AbsoluteChange float64
	// PercentChange and AnnualChange are NaN when the first value is zero,
	// which makes a percentage baseline meaningless.
	PercentChange float64
	AnnualChange  float64
	Trend         string
}

// trackedVariables are the five variables followed by trend analysis.
func trackedVariables() []dataset.Metric {
	names := []string{
		dataset.ColEnergy, dataset.ColAirQuality, dataset.ColWaste,
		dataset.ColCO2, dataset.ColTemperature,
	}
	out := make([]dataset.Metric, 0, len(names))
	for _, n := range names {
		m, _ := dataset.MetricByName(n)
		out = append(out, m)
	}
	return out
}

// Trends computes a TrendRecord per (city, tracked variable) pair. Cities
// with fewer than two observations of a variable produce no record. Results
// are ordered by city (first appearance), then variable.
func Trends(t *dataset.EnrichedTable) []TrendRecord {
	byCity := make(map[string][]*dataset.EnrichedRecord)
	for i := range t.Records {
		r := &t.Records[i]
		byCity[r.City] = append(byCity[r.City], r)
	}

	var out []TrendRecord
	for _, city := range t.Cities() {
		rows := byCity[city]
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Year < rows[j].Year })
		for _, m := range trackedVariables() {
			if rec, ok := cityTrend(city, m, rows); ok {
				out = append(out, rec)
			}
		}
	}
	return out
}

func cityTrend(city string, m dataset.Metric, rows []*dataset.EnrichedRecord) (TrendRecord, bool) {
	vals := make([]float64, 0, len(rows))
	for _, r := range rows {
		if v := m.Get(r); !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	if len(vals) < 2 {
		return TrendRecord{}, false
	}

	first, last := vals[0], vals[len(vals)-1]
	abs := last - first
	pct := math.NaN()
	annual := math.NaN()
	if first != 0 {
		pct = abs / first * 100
		annual = pct / float64(len(vals)-1)
	}
	return TrendRecord{
		City:           city,
		Variable:       m.Name,
		First:          first,
		Last:           last,
		AbsoluteChange: abs,
		PercentChange:  pct,
		AnnualChange:   annual,
		Trend:          classify(annual),
	}, true
}

// classify labels an annualized percent change. NaN fails both comparisons
// and lands on Estável, the neutral label for an undefined baseline.
func classify(annual float64) string {
	switch {
	case annual > trendThreshold:
		return TrendRising
	case annual < -trendThreshold:
		return TrendFalling
	default:
		return TrendStable
	}
}
