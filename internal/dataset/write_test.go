package dataset_test

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ecotrilha/ecodata-cli/internal/dataset"
)

func TestWriteEnrichedRoundTrip(t *testing.T) {
	et := &dataset.EnrichedTable{Records: []dataset.EnrichedRecord{
		{
			Record:          rec("Palmas", 2020, 9000),
			EnergyPerCapita: 9,
			CarbonIntensity: 0.22,
		},
	}}
	p := filepath.Join(t.TempDir(), "saida.csv")
	if err := dataset.WriteEnriched(et, p, ','); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	out := string(b)
	if !strings.Contains(out, dataset.ColEnergyPerCapita) {
		t.Fatalf("header should include derived columns, got: %q", out)
	}
	if !strings.Contains(out, "Palmas,2020,9000") {
		t.Fatalf("row not serialized as expected: %q", out)
	}
}

func TestWriteEnrichedNaNIsEmptyCell(t *testing.T) {
	r := rec("Palmas", 2020, 9000)
	r.Population = 0
	et := &dataset.EnrichedTable{Records: []dataset.EnrichedRecord{
		{Record: r, EnergyPerCapita: math.NaN()},
	}}
	p := filepath.Join(t.TempDir(), "saida.csv")
	if err := dataset.WriteEnriched(et, p, ','); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, _ := os.ReadFile(p)
	if strings.Contains(string(b), "NaN") {
		t.Fatalf("NaN must serialize as empty cell, got: %q", string(b))
	}
}

func TestWriteThenLoadBaseTable(t *testing.T) {
	tb := &dataset.Table{Records: []dataset.Record{rec("Macapá", 2021, 13000)}}
	p := filepath.Join(t.TempDir(), "base.csv")
	if err := dataset.Write(tb, p, ','); err != nil {
		t.Fatalf("write: %v", err)
	}
	back, err := dataset.Load(p, ',')
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if back.Len() != 1 || back.Records[0].City != "Macapá" || back.Records[0].Energy != 13000 {
		t.Fatalf("round trip mismatch: %+v", back.Records)
	}
}
