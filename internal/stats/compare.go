package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/ecotrilha/ecodata-cli/internal/dataset"
)

// CompareTopN is the default ranking size for cross-sectional comparison.
const CompareTopN = 10

// CityValue is one entry of a cross-sectional ranking.
type CityValue struct {
	City  string
	Value float64
}

// Compare ranks cities by a variable. With year > 0 only that year's rows are
// considered (one entry per row); with year 0 each city is represented by its
// mean across all years. The sort is stable descending, so ties keep their
// original order, and at most topN entries are returned.
func Compare(t *dataset.EnrichedTable, variable string, year int, topN int) ([]CityValue, error) {
	m, ok := dataset.MetricByName(variable)
	if !ok {
		return nil, fmt.Errorf("variável desconhecida: %q", variable)
	}
	if topN <= 0 {
		topN = CompareTopN
	}

	var entries []CityValue
	if year > 0 {
		for i := range t.Records {
			r := &t.Records[i]
			if r.Year != year {
				continue
			}
			if v := m.Get(r); !math.IsNaN(v) {
				entries = append(entries, CityValue{City: r.City, Value: v})
			}
		}
	} else {
		byCity := make(map[string][]float64)
		for i := range t.Records {
			r := &t.Records[i]
			if v := m.Get(r); !math.IsNaN(v) {
				byCity[r.City] = append(byCity[r.City], v)
			}
		}
		for _, city := range t.Cities() {
			vals := byCity[city]
			if len(vals) == 0 {
				continue
			}
			entries = append(entries, CityValue{City: city, Value: stat.Mean(vals, nil)})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Value > entries[j].Value })
	if len(entries) > topN {
		entries = entries[:topN]
	}
	return entries, nil
}
