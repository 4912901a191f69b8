package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"

	"github.com/ecotrilha/ecodata-cli/internal/utils"
)

// Write writes a base table (no derived columns) as UTF-8 CSV, atomically.
func Write(t *Table, path string, delimiter rune) error {
	if delimiter == 0 {
		delimiter = ','
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = delimiter

	if err := w.Write(Header()); err != nil {
		return fmt.Errorf("escrever cabeçalho: %w", err)
	}
	for i := range t.Records {
		r := &t.Records[i]
		row := []string{
			r.City,
			strconv.Itoa(r.Year),
			formatCell(r.Energy),
			formatCell(r.AirQuality),
			formatCell(r.Waste),
			formatCell(r.Water),
			formatCell(r.CO2),
			formatCell(r.Temperature),
			formatCell(r.Population),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("escrever linha %d: %w", i+2, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("serializar csv: %w", err)
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}

// WriteEnriched writes the cleaned table plus derived metrics as UTF-8 CSV,
// atomically. NaN cells (undefined derived ratios) are written empty so they
// cannot be mistaken for a real zero.
func WriteEnriched(t *EnrichedTable, path string, delimiter rune) error {
	if delimiter == 0 {
		delimiter = ','
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = delimiter

	header := append(Header(), DerivedHeader()...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("escrever cabeçalho: %w", err)
	}

	for i := range t.Records {
		r := &t.Records[i]
		row := []string{
			r.City,
			strconv.Itoa(r.Year),
			formatCell(r.Energy),
			formatCell(r.AirQuality),
			formatCell(r.Waste),
			formatCell(r.Water),
			formatCell(r.CO2),
			formatCell(r.Temperature),
			formatCell(r.Population),
			formatCell(r.EnergyPerCapita),
			formatCell(r.WastePerCapita),
			formatCell(r.WaterPerCapita),
			formatCell(r.CO2PerCapita),
			formatCell(r.CarbonIntensity),
			formatCell(r.WaterEfficiency),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("escrever linha %d: %w", i+2, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("serializar csv: %w", err)
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
