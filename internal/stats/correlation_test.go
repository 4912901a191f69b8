package stats_test

import (
	"math"
	"testing"

	"github.com/ecotrilha/ecodata-cli/internal/dataset"
	"github.com/ecotrilha/ecodata-cli/internal/stats"
)

// corrTable varies energy linearly with population and co2 inversely, while
// everything else stays constant.
func corrTable() *dataset.EnrichedTable {
	t := &dataset.EnrichedTable{}
	for i := 0; i < 6; i++ {
		pop := float64(100 + 50*i)
		t.Records = append(t.Records, dataset.EnrichedRecord{Record: dataset.Record{
			City: "A", Year: 2018 + i,
			Energy:     2 * pop,
			CO2:        1000 - pop,
			AirQuality: 50, Waste: 1e6, Water: 5e7,
			Temperature: 22, Population: pop,
		}})
	}
	return t
}

func coeff(t *testing.T, m *stats.Matrix, a, b string) float64 {
	t.Helper()
	r, ok := m.At(a, b)
	if !ok {
		t.Fatalf("matrix missing pair %s/%s", a, b)
	}
	return r
}

func TestCorrelationsPerfectPair(t *testing.T) {
	m := stats.Correlations(corrTable())
	if r := coeff(t, m, dataset.ColEnergy, dataset.ColPopulation); math.Abs(r-1) > 1e-9 {
		t.Fatalf("linear pair: expected r=1, got %v", r)
	}
	if r := coeff(t, m, dataset.ColCO2, dataset.ColPopulation); math.Abs(r+1) > 1e-9 {
		t.Fatalf("inverse pair: expected r=-1, got %v", r)
	}
}

func TestCorrelationsUnitDiagonalAndSymmetry(t *testing.T) {
	m := stats.Correlations(corrTable())
	n := len(m.Columns)
	for i := 0; i < n; i++ {
		if m.Values[i][i] != 1 {
			t.Fatalf("diagonal at %s: expected 1, got %v", m.Columns[i], m.Values[i][i])
		}
		for j := 0; j < n; j++ {
			if m.Values[i][j] != m.Values[j][i] {
				t.Fatalf("matrix not symmetric at %s/%s", m.Columns[i], m.Columns[j])
			}
			if math.Abs(m.Values[i][j]) > 1 {
				t.Fatalf("coefficient out of range at %s/%s: %v",
					m.Columns[i], m.Columns[j], m.Values[i][j])
			}
		}
	}
}

func TestCorrelationsConstantColumnIsZero(t *testing.T) {
	m := stats.Correlations(corrTable())
	// Temperature is constant in the fixture, so its correlation with any
	// varying column is undefined and must be reported as 0.
	if r := coeff(t, m, dataset.ColTemperature, dataset.ColEnergy); r != 0 {
		t.Fatalf("constant column: expected 0, got %v", r)
	}
}

func TestCorrelationsSkipNullRows(t *testing.T) {
	et := corrTable()
	// Poison one row's energy: the remaining rows still correlate perfectly.
	et.Records[2].Energy = math.NaN()
	m := stats.Correlations(et)
	if r := coeff(t, m, dataset.ColEnergy, dataset.ColPopulation); math.Abs(r-1) > 1e-9 {
		t.Fatalf("pairwise-complete correlation: expected r=1, got %v", r)
	}
}

func TestStrongPairs(t *testing.T) {
	m := stats.Correlations(corrTable())
	pairs := m.StrongPairs(stats.StrongCorrelation)
	if len(pairs) == 0 {
		t.Fatal("expected strong pairs from a perfectly correlated fixture")
	}
	found := false
	for i, p := range pairs {
		if math.Abs(p.R) <= stats.StrongCorrelation {
			t.Fatalf("pair %s/%s below threshold: %v", p.A, p.B, p.R)
		}
		if i > 0 && math.Abs(p.R) > math.Abs(pairs[i-1].R) {
			t.Fatal("pairs must be ordered strongest first")
		}
		if (p.A == dataset.ColEnergy && p.B == dataset.ColPopulation) ||
			(p.A == dataset.ColPopulation && p.B == dataset.ColEnergy) {
			found = true
		}
	}
	if !found {
		t.Fatal("energy/population pair missing from strong pairs")
	}
}
