package dataset

// EnrichedRecord is a Record extended with the derived ratios. The distinct
// type guarantees, at compile time, that the statistics engine only ever sees
// data that went through metric derivation.
type EnrichedRecord struct {
	Record
	EnergyPerCapita float64 // MWh per thousand inhabitants
	WastePerCapita  float64 // tonnes per thousand inhabitants
	WaterPerCapita  float64 // m³ per thousand inhabitants
	CO2PerCapita    float64 // tonnes per thousand inhabitants
	CarbonIntensity float64 // tonnes CO₂ per MWh
	WaterEfficiency float64 // m³ per MWh
}

// EnrichedTable is the cleaned table plus derived metrics.
type EnrichedTable struct {
	Records []EnrichedRecord
}

func (t *EnrichedTable) Len() int { return len(t.Records) }

// Cities returns the distinct city names in first-appearance order.
func (t *EnrichedTable) Cities() []string {
	seen := make(map[string]bool, 32)
	var out []string
	for i := range t.Records {
		c := t.Records[i].City
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// Metric is a named read-only accessor over an enriched record.
type Metric struct {
	Name string
	Get  func(*EnrichedRecord) float64
}

// AnalysisMetrics returns every numeric column, base and derived, including
// the year. This is the column set for descriptive statistics and the
// correlation matrix.
func AnalysisMetrics() []Metric {
	metrics := []Metric{{ColYear, func(r *EnrichedRecord) float64 { return float64(r.Year) }}}
	return append(metrics, DetectionMetrics()...)
}

// DetectionMetrics returns the numeric columns eligible for anomaly
// detection: everything except the year and the city identifier.
func DetectionMetrics() []Metric {
	return []Metric{
		{ColEnergy, func(r *EnrichedRecord) float64 { return r.Energy }},
		{ColAirQuality, func(r *EnrichedRecord) float64 { return r.AirQuality }},
		{ColWaste, func(r *EnrichedRecord) float64 { return r.Waste }},
		{ColWater, func(r *EnrichedRecord) float64 { return r.Water }},
		{ColCO2, func(r *EnrichedRecord) float64 { return r.CO2 }},
		{ColTemperature, func(r *EnrichedRecord) float64 { return r.Temperature }},
		{ColPopulation, func(r *EnrichedRecord) float64 { return r.Population }},
		{ColEnergyPerCapita, func(r *EnrichedRecord) float64 { return r.EnergyPerCapita }},
		{ColWastePerCapita, func(r *EnrichedRecord) float64 { return r.WastePerCapita }},
		{ColWaterPerCapita, func(r *EnrichedRecord) float64 { return r.WaterPerCapita }},
		{ColCO2PerCapita, func(r *EnrichedRecord) float64 { return r.CO2PerCapita }},
		{ColCarbonIntensity, func(r *EnrichedRecord) float64 { return r.CarbonIntensity }},
		{ColWaterEfficiency, func(r *EnrichedRecord) float64 { return r.WaterEfficiency }},
	}
}

// MetricByName resolves a column name to its accessor.
func MetricByName(name string) (Metric, bool) {
	for _, m := range AnalysisMetrics() {
		if m.Name == name {
			return m, true
		}
	}
	return Metric{}, false
}
