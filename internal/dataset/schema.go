package dataset

// Column names as they appear in the CSV header.
const (
	ColCity        = "cidade"
	ColYear        = "ano"
	ColEnergy      = "consumo_energia_mwh"
	ColAirQuality  = "qualidade_ar_indice"
	ColWaste       = "residuos_solidos_ton"
	ColWater       = "uso_agua_m3"
	ColCO2         = "emissao_co2_ton"
	ColTemperature = "temperatura_media_c"
	ColPopulation  = "populacao_mil"
)

// Derived column names, present only after metric derivation.
const (
	ColEnergyPerCapita = "energia_per_capita"
	ColWastePerCapita  = "residuos_per_capita"
	ColWaterPerCapita  = "agua_per_capita"
	ColCO2PerCapita    = "co2_per_capita"
	ColCarbonIntensity = "intensidade_carbono"
	ColWaterEfficiency = "eficiencia_hidrica"
)

// Header returns the required input columns in canonical order.
func Header() []string {
	return []string{
		ColCity, ColYear, ColEnergy, ColAirQuality, ColWaste,
		ColWater, ColCO2, ColTemperature, ColPopulation,
	}
}

// DerivedHeader returns the derived columns in output order.
func DerivedHeader() []string {
	return []string{
		ColEnergyPerCapita, ColWastePerCapita, ColWaterPerCapita,
		ColCO2PerCapita, ColCarbonIntensity, ColWaterEfficiency,
	}
}

// Record is one (city, year) observation. A missing measurement is NaN;
// the cleaner resolves every NaN before analysis.
type Record struct {
	City        string
	Year        int
	Energy      float64 // MWh
	AirQuality  float64 // index, lower is better
	Waste       float64 // tonnes
	Water       float64 // m³
	CO2         float64 // tonnes
	Temperature float64 // °C
	Population  float64 // thousands of inhabitants
}

// Field is a named accessor for one measured column of a Record. The schema is
// fixed at compile time so a misspelled column name is a build error rather
// than a silently empty result.
type Field struct {
	Name string
	Get  func(*Record) float64
	Set  func(*Record, float64)
}

// MeasuredFields returns the seven measured quantities, i.e. the columns
// subject to imputation and outlier treatment. The city and year columns are
// identity, not measurements, and are excluded.
func MeasuredFields() []Field {
	return []Field{
		{ColEnergy, func(r *Record) float64 { return r.Energy }, func(r *Record, v float64) { r.Energy = v }},
		{ColAirQuality, func(r *Record) float64 { return r.AirQuality }, func(r *Record, v float64) { r.AirQuality = v }},
		{ColWaste, func(r *Record) float64 { return r.Waste }, func(r *Record, v float64) { r.Waste = v }},
		{ColWater, func(r *Record) float64 { return r.Water }, func(r *Record, v float64) { r.Water = v }},
		{ColCO2, func(r *Record) float64 { return r.CO2 }, func(r *Record, v float64) { r.CO2 = v }},
		{ColTemperature, func(r *Record) float64 { return r.Temperature }, func(r *Record, v float64) { r.Temperature = v }},
		{ColPopulation, func(r *Record) float64 { return r.Population }, func(r *Record, v float64) { r.Population = v }},
	}
}
