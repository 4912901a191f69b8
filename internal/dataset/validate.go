package dataset

import "math"

// Validation is an informational snapshot of data quality. It never fails a
// run; the cleaner is responsible for resolving what it reports.
type Validation struct {
	Rows       int
	Columns    []string
	NullCounts map[string]int
	Duplicates int
	DTypes     map[string]string
}

// Validate reports null counts per column, the number of duplicate rows
// (counting every occurrence after the first), and the column types. The
// table is not mutated.
func Validate(t *Table) *Validation {
	v := &Validation{
		Rows:       t.Len(),
		Columns:    Header(),
		NullCounts: make(map[string]int),
		DTypes: map[string]string{
			ColCity: "string",
			ColYear: "int",
		},
	}
	fields := MeasuredFields()
	for _, f := range fields {
		v.NullCounts[f.Name] = 0
		v.DTypes[f.Name] = "float64"
	}

	seen := make(map[string]bool, t.Len())
	for i := range t.Records {
		r := &t.Records[i]
		for _, f := range fields {
			if math.IsNaN(f.Get(r)) {
				v.NullCounts[f.Name]++
			}
		}
		k := r.Key()
		if seen[k] {
			v.Duplicates++
		}
		seen[k] = true
	}
	return v
}

// TotalNulls sums null counts across all columns.
func (v *Validation) TotalNulls() int {
	total := 0
	for _, n := range v.NullCounts {
		total += n
	}
	return total
}
