package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Load reads a delimited UTF-8 table with a header row. Every required column
// must be present (extra columns are ignored); a missing column is an error at
// load time rather than an empty result later. Empty and NA-like cells in
// measured columns become NaN. A delimiter of 0 means comma.
func Load(path string, delimiter rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir csv: %w", err)
	}
	defer f.Close()

	if delimiter == 0 {
		delimiter = ','
	}
	r := csv.NewReader(f)
	r.ReuseRecord = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = delimiter

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("arquivo vazio: %s", path)
		}
		return nil, fmt.Errorf("ler cabeçalho: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.ToLower(name))] = i
	}
	var missing []string
	for _, name := range Header() {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("colunas obrigatórias ausentes: %s", strings.Join(missing, ", "))
	}

	fields := MeasuredFields()
	t := &Table{}
	row := 1
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("ler linha %d: %w", row+1, err)
		}
		row++

		cell := func(col string) string {
			i := index[col]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		var obs Record
		obs.City = cell(ColCity)
		yearRaw := cell(ColYear)
		year, err := strconv.Atoi(yearRaw)
		if err != nil {
			return nil, fmt.Errorf("linha %d: ano inválido %q", row, yearRaw)
		}
		obs.Year = year

		for _, fd := range fields {
			v, err := parseCell(cell(fd.Name))
			if err != nil {
				return nil, fmt.Errorf("linha %d: coluna %s: %w", row, fd.Name, err)
			}
			fd.Set(&obs, v)
		}
		t.Records = append(t.Records, obs)
	}
	return t, nil
}

var nullTokens = map[string]bool{
	"": true, "na": true, "n/a": true, "nan": true, "null": true,
}

// parseCell parses a numeric cell, accepting both decimal-point and
// decimal-comma notation. Null-like tokens parse to NaN.
func parseCell(raw string) (float64, error) {
	if nullTokens[strings.ToLower(raw)] {
		return math.NaN(), nil
	}
	cleaned := strings.ReplaceAll(raw, "\u00A0", " ")
	cleaned = strings.TrimSpace(cleaned)
	cpos := strings.LastIndex(cleaned, ",")
	dpos := strings.LastIndex(cleaned, ".")
	switch {
	case cpos >= 0 && dpos >= 0 && cpos > dpos:
		// 1.234,56 → decimal comma, dot thousands
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case cpos >= 0 && dpos >= 0:
		// 1,234.56 → comma thousands
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case cpos >= 0:
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("valor numérico inválido %q", raw)
	}
	return v, nil
}
