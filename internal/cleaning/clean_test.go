package cleaning_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/ecotrilha/ecodata-cli/internal/cleaning"
	"github.com/ecotrilha/ecodata-cli/internal/dataset"
	"github.com/ecotrilha/ecodata-cli/internal/stats"
)

func rec(city string, year int, energy float64) dataset.Record {
	return dataset.Record{
		City: city, Year: year, Energy: energy,
		AirQuality: 50, Waste: 1e6, Water: 5e7, CO2: 2e6,
		Temperature: 22, Population: 1000,
	}
}

func TestCleanRemovesDuplicates(t *testing.T) {
	tb := &dataset.Table{Records: []dataset.Record{
		rec("A", 2020, 100),
		rec("A", 2020, 100),
		rec("A", 2021, 110),
	}}
	rep := cleaning.Clean(tb)
	if rep.DuplicatesRemoved != 1 {
		t.Fatalf("expected 1 duplicate removed, got %d", rep.DuplicatesRemoved)
	}
	if tb.Len() != 2 {
		t.Fatalf("expected 2 rows after cleaning, got %d", tb.Len())
	}
}

func TestCleanImputesCityMedian(t *testing.T) {
	tb := &dataset.Table{Records: []dataset.Record{
		rec("A", 2020, 100),
		rec("A", 2021, math.NaN()),
		rec("A", 2022, 120),
		rec("B", 2020, 900),
	}}
	rep := cleaning.Clean(tb)
	if rep.NullsFilled[dataset.ColEnergy] != 1 {
		t.Fatalf("expected 1 null filled, got %d", rep.NullsFilled[dataset.ColEnergy])
	}
	// Rows are sorted (city, year); A/2021 is index 1.
	if got := tb.Records[1].Energy; got != 110 {
		t.Fatalf("expected city median 110 (not the global one), got %v", got)
	}
}

func TestImputeFallsBackToGlobalMedian(t *testing.T) {
	// City B has no non-null energy values at all: the per-city median is
	// undefined and the column-wide median is used instead.
	tb := &dataset.Table{Records: []dataset.Record{
		rec("A", 2020, 100),
		rec("A", 2021, 200),
		rec("B", 2020, math.NaN()),
	}}
	cleaning.Clean(tb)
	for i := range tb.Records {
		if math.IsNaN(tb.Records[i].Energy) {
			t.Fatal("no nulls may survive cleaning when the column has data")
		}
	}
	var bEnergy float64
	for i := range tb.Records {
		if tb.Records[i].City == "B" {
			bEnergy = tb.Records[i].Energy
		}
	}
	if bEnergy != 150 {
		t.Fatalf("expected global median 150, got %v", bEnergy)
	}
}

func TestCleanTreatsExtremeOutliers(t *testing.T) {
	// A single wild value among tight ones; everything else stays put.
	records := []dataset.Record{
		rec("A", 2018, 100), rec("A", 2019, 101), rec("A", 2020, 99),
		rec("A", 2021, 100), rec("A", 2022, 102), rec("A", 2023, 98),
		rec("A", 2024, 1e9),
	}
	tb := &dataset.Table{Records: records}
	rep := cleaning.Clean(tb)
	if rep.OutliersTreated[dataset.ColEnergy] != 1 {
		t.Fatalf("expected 1 outlier treated, got %d", rep.OutliersTreated[dataset.ColEnergy])
	}
	if tb.Len() != 7 {
		t.Fatal("outlier rows must be preserved, not dropped")
	}
	for i := range tb.Records {
		if tb.Records[i].Energy > 1e6 {
			t.Fatalf("outlier value survived cleaning: %v", tb.Records[i].Energy)
		}
	}
}

func TestCleanBoundsProperty(t *testing.T) {
	tb := &dataset.Table{Records: []dataset.Record{
		rec("A", 2020, 10), rec("A", 2021, 12), rec("B", 2020, 11),
		rec("B", 2021, 5000), rec("C", 2020, 13), rec("C", 2021, 9),
	}}
	cleaning.Clean(tb)
	for _, f := range dataset.MeasuredFields() {
		var vals []float64
		for i := range tb.Records {
			vals = append(vals, f.Get(&tb.Records[i]))
		}
		sorted := append([]float64(nil), vals...)
		sortFloats(sorted)
		q1 := stats.Quantile(sorted, 0.25)
		q3 := stats.Quantile(sorted, 0.75)
		iqr := q3 - q1
		for _, v := range vals {
			if v < q1-3*iqr || v > q3+3*iqr {
				t.Fatalf("column %s still has a value outside the 3×IQR band: %v", f.Name, v)
			}
		}
	}
}

func TestCleanOutlierTreatmentReachesFixpoint(t *testing.T) {
	// Treating the extreme value shifts the quartiles, which can expose a
	// value the first pass kept. The cleaner must keep re-treating until the
	// band recomputed on the treated column holds every value.
	energies := []float64{0, 0, 0, 0, 10, 10, 43, 100}
	tb := &dataset.Table{}
	for i, e := range energies {
		tb.Records = append(tb.Records, rec("A", 2017+i, e))
	}
	rep := cleaning.Clean(tb)
	if rep.OutliersTreated[dataset.ColEnergy] != 2 {
		t.Fatalf("expected 2 outliers treated (100, then 43), got %d",
			rep.OutliersTreated[dataset.ColEnergy])
	}

	var vals []float64
	for i := range tb.Records {
		vals = append(vals, tb.Records[i].Energy)
	}
	sorted := append([]float64(nil), vals...)
	sortFloats(sorted)
	q1 := stats.Quantile(sorted, 0.25)
	q3 := stats.Quantile(sorted, 0.75)
	iqr := q3 - q1
	for _, v := range vals {
		if v < q1-3*iqr || v > q3+3*iqr {
			t.Fatalf("value %v outside the band recomputed on the cleaned column", v)
		}
	}

	snapshot := append([]dataset.Record(nil), tb.Records...)
	rep = cleaning.Clean(tb)
	if rep.DuplicatesRemoved != 0 || len(rep.NullsFilled) != 0 || len(rep.OutliersTreated) != 0 {
		t.Fatalf("second clean must be a no-op, got %+v", rep)
	}
	if !reflect.DeepEqual(snapshot, tb.Records) {
		t.Fatal("second clean changed the table")
	}
}

func TestImputeFullyNullColumnStaysNull(t *testing.T) {
	// No non-null value anywhere in the column: there is no median to fill
	// from, so the values stay NaN and the report does not claim otherwise.
	a := rec("A", 2020, math.NaN())
	b := rec("B", 2020, math.NaN())
	tb := &dataset.Table{Records: []dataset.Record{a, b}}
	rep := cleaning.Clean(tb)
	if n := rep.NullsFilled[dataset.ColEnergy]; n != 0 {
		t.Fatalf("fully null column reported %d fills", n)
	}
	for i := range tb.Records {
		if !math.IsNaN(tb.Records[i].Energy) {
			t.Fatalf("fully null column must stay NaN, got %v", tb.Records[i].Energy)
		}
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	tb := &dataset.Table{Records: []dataset.Record{
		rec("B", 2021, math.NaN()),
		rec("A", 2020, 100),
		rec("B", 2020, 90),
		rec("A", 2020, 100),
		rec("A", 2021, 1e9),
	}}
	cleaning.Clean(tb)
	snapshot := append([]dataset.Record(nil), tb.Records...)

	rep := cleaning.Clean(tb)
	if rep.DuplicatesRemoved != 0 || len(rep.NullsFilled) != 0 || len(rep.OutliersTreated) != 0 {
		t.Fatalf("second clean must be a no-op, got %+v", rep)
	}
	if !reflect.DeepEqual(snapshot, tb.Records) {
		t.Fatal("second clean changed the table")
	}
}

func TestCleanSortsByCityYear(t *testing.T) {
	tb := &dataset.Table{Records: []dataset.Record{
		rec("B", 2021, 1), rec("A", 2021, 2), rec("B", 2020, 3), rec("A", 2020, 4),
	}}
	cleaning.Clean(tb)
	want := []struct {
		city string
		year int
	}{{"A", 2020}, {"A", 2021}, {"B", 2020}, {"B", 2021}}
	for i, w := range want {
		if tb.Records[i].City != w.city || tb.Records[i].Year != w.year {
			t.Fatalf("row %d: expected %s/%d, got %s/%d",
				i, w.city, w.year, tb.Records[i].City, tb.Records[i].Year)
		}
	}
}

func sortFloats(v []float64) {
	for i := 1; i < len(v); i++ {
		for j := i; j > 0 && v[j] < v[j-1]; j-- {
			v[j], v[j-1] = v[j-1], v[j]
		}
	}
}
