package stats_test

import (
	"math"
	"testing"

	"github.com/ecotrilha/ecodata-cli/internal/dataset"
	"github.com/ecotrilha/ecodata-cli/internal/stats"
)

func enriched(energies ...float64) *dataset.EnrichedTable {
	t := &dataset.EnrichedTable{}
	for i, e := range energies {
		t.Records = append(t.Records, dataset.EnrichedRecord{Record: dataset.Record{
			City: "A", Year: 2018 + i, Energy: e,
			AirQuality: 50, Waste: 1e6, Water: 5e7, CO2: 2e6,
			Temperature: 22, Population: 1000,
		}})
	}
	return t
}

func findColumn(t *testing.T, ds []stats.Description, name string) stats.Description {
	t.Helper()
	for _, d := range ds {
		if d.Column == name {
			return d
		}
	}
	t.Fatalf("column %s missing from description", name)
	return stats.Description{}
}

func TestDescribeBasics(t *testing.T) {
	et := enriched(10, 20, 30, 40)
	ds := stats.Describe(et)
	d := findColumn(t, ds, dataset.ColEnergy)
	if d.Count != 4 {
		t.Fatalf("count: expected 4, got %d", d.Count)
	}
	if d.Mean != 25 {
		t.Fatalf("mean: expected 25, got %v", d.Mean)
	}
	if d.Median != 25 {
		t.Fatalf("median: expected 25, got %v", d.Median)
	}
	if d.Min != 10 || d.Max != 40 {
		t.Fatalf("min/max: expected 10/40, got %v/%v", d.Min, d.Max)
	}
	if d.Q25 != 17.5 || d.Q75 != 32.5 {
		t.Fatalf("quartiles: expected 17.5/32.5, got %v/%v", d.Q25, d.Q75)
	}
	// Sample stddev of 10,20,30,40.
	if math.Abs(d.Std-12.909944) > 1e-5 {
		t.Fatalf("std: expected ≈12.9099, got %v", d.Std)
	}
	// Symmetric data has zero skew.
	if math.Abs(d.Skewness) > 1e-12 {
		t.Fatalf("skewness of symmetric data should be 0, got %v", d.Skewness)
	}
}

func TestDescribeMode(t *testing.T) {
	et := enriched(5, 5, 7, 7, 9)
	d := findColumn(t, stats.Describe(et), dataset.ColEnergy)
	// Bimodal: the smallest mode wins.
	if d.Mode != 5 {
		t.Fatalf("mode: expected 5, got %v", d.Mode)
	}
}

func TestDescribeIncludesYearAndDerived(t *testing.T) {
	et := enriched(10, 20)
	ds := stats.Describe(et)
	findColumn(t, ds, dataset.ColYear)
	findColumn(t, ds, dataset.ColEnergyPerCapita)
}

func TestDescribeEmptyTable(t *testing.T) {
	ds := stats.Describe(&dataset.EnrichedTable{})
	if len(ds) != 0 {
		t.Fatalf("empty table must yield empty result, got %d entries", len(ds))
	}
}
