package cleaning

import (
	"math"

	"github.com/ecotrilha/ecodata-cli/internal/dataset"
)

// Derive computes the per-capita and efficiency ratios for every row of a
// cleaned table. It is a pure function: the input table is not modified.
// A zero denominator (population or energy) yields NaN, never a fake zero
// and never a panic.
func Derive(t *dataset.Table) *dataset.EnrichedTable {
	out := &dataset.EnrichedTable{Records: make([]dataset.EnrichedRecord, 0, t.Len())}
	for i := range t.Records {
		r := t.Records[i]
		out.Records = append(out.Records, dataset.EnrichedRecord{
			Record:          r,
			EnergyPerCapita: ratio(r.Energy, r.Population),
			WastePerCapita:  ratio(r.Waste, r.Population),
			WaterPerCapita:  ratio(r.Water, r.Population),
			CO2PerCapita:    ratio(r.CO2, r.Population),
			CarbonIntensity: ratio(r.CO2, r.Energy),
			WaterEfficiency: ratio(r.Water, r.Energy),
		})
	}
	return out
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return math.NaN()
	}
	return num / den
}
