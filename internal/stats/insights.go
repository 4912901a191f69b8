package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ecotrilha/ecodata-cli/internal/dataset"
)

// Insights derives a fixed sequence of human-readable findings from the
// table and the precomputed trend records. Every finding reads aggregates
// that already exist; a finding whose inputs are absent is simply skipped,
// so an empty table yields an empty (not nil-panicking) list.
func Insights(t *dataset.EnrichedTable, trends []TrendRecord) []string {
	var out []string

	energyMetric, _ := dataset.MetricByName(dataset.ColEnergy)
	airMetric, _ := dataset.MetricByName(dataset.ColAirQuality)
	perCapitaMetric, _ := dataset.MetricByName(dataset.ColEnergyPerCapita)

	// (a) highest mean energy consumption
	if city, mean, ok := extremeCityMean(t, energyMetric, true); ok {
		out = append(out, fmt.Sprintf(
			"• %s apresenta o maior consumo médio de energia (%.0f MWh)", city, mean))
	}

	// (b) best (lowest) air quality index
	if city, mean, ok := extremeCityMean(t, airMetric, false); ok {
		out = append(out, fmt.Sprintf(
			"• %s apresenta a melhor qualidade do ar (índice médio: %.1f)", city, mean))
	}

	// (c) steepest annualized CO₂ growth
	bestAnnual := math.Inf(-1)
	bestCity := ""
	for _, tr := range trends {
		if tr.Variable != dataset.ColCO2 || math.IsNaN(tr.AnnualChange) {
			continue
		}
		if tr.AnnualChange > bestAnnual {
			bestAnnual = tr.AnnualChange
			bestCity = tr.City
		}
	}
	if bestCity != "" {
		out = append(out, fmt.Sprintf(
			"• %s apresenta o maior crescimento anual de emissões de CO2 (%.2f%% ao ano)",
			bestCity, bestAnnual))
	}

	// (d) population vs energy correlation
	if r, ok := popEnergyCorrelation(t); ok {
		out = append(out, fmt.Sprintf(
			"• Correlação entre população e consumo de energia: r = %.3f", r))
	}

	// (e) most and least energy-efficient cities per capita
	if best, bestVal, ok := extremeCityMean(t, perCapitaMetric, false); ok {
		if worst, worstVal, ok2 := extremeCityMean(t, perCapitaMetric, true); ok2 {
			out = append(out, fmt.Sprintf(
				"• %s é a mais eficiente em consumo per capita (%.2f MWh/mil hab), "+
					"enquanto %s é a menos eficiente (%.2f MWh/mil hab)",
				best, bestVal, worst, worstVal))
		}
	}

	// (f) nationwide mean-temperature change first → last year
	if pct, ok := temperatureChange(t); ok {
		out = append(out, fmt.Sprintf(
			"• Temperatura média variou %.2f%% no período analisado", pct))
	}

	return out
}

// extremeCityMean returns the city with the highest (or lowest) mean of the
// metric. Cities whose values are all null are ignored.
func extremeCityMean(t *dataset.EnrichedTable, m dataset.Metric, highest bool) (string, float64, bool) {
	byCity := make(map[string][]float64)
	for i := range t.Records {
		r := &t.Records[i]
		if v := m.Get(r); !math.IsNaN(v) {
			byCity[r.City] = append(byCity[r.City], v)
		}
	}
	bestCity := ""
	bestMean := 0.0
	for _, city := range t.Cities() {
		vals := byCity[city]
		if len(vals) == 0 {
			continue
		}
		mean := stat.Mean(vals, nil)
		if bestCity == "" || (highest && mean > bestMean) || (!highest && mean < bestMean) {
			bestCity = city
			bestMean = mean
		}
	}
	return bestCity, bestMean, bestCity != ""
}

func popEnergyCorrelation(t *dataset.EnrichedTable) (float64, bool) {
	pop, _ := dataset.MetricByName(dataset.ColPopulation)
	energy, _ := dataset.MetricByName(dataset.ColEnergy)
	if t.Len() < 2 {
		return 0, false
	}
	r := pearson(t, pop, energy)
	return r, true
}

// temperatureChange is the percent change of the nationwide yearly mean
// temperature between the first and last years present.
func temperatureChange(t *dataset.EnrichedTable) (float64, bool) {
	byYear := make(map[int][]float64)
	for i := range t.Records {
		r := &t.Records[i]
		if !math.IsNaN(r.Temperature) {
			byYear[r.Year] = append(byYear[r.Year], r.Temperature)
		}
	}
	if len(byYear) < 2 {
		return 0, false
	}
	firstYear, lastYear := 0, 0
	for y := range byYear {
		if firstYear == 0 || y < firstYear {
			firstYear = y
		}
		if y > lastYear {
			lastYear = y
		}
	}
	first := stat.Mean(byYear[firstYear], nil)
	last := stat.Mean(byYear[lastYear], nil)
	if first == 0 {
		return 0, false
	}
	return (last - first) / first * 100, true
}
