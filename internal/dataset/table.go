package dataset

import (
	"sort"
	"strconv"
	"strings"
)

// Table is an ordered collection of Records. It is created by Load, mutated in
// place by the cleaner, and consumed read-only afterwards.
type Table struct {
	Records []Record
}

func (t *Table) Len() int { return len(t.Records) }

// Cities returns the distinct city names in first-appearance order.
func (t *Table) Cities() []string {
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

// Years returns the distinct years in ascending order.
func (t *Table) Years() []int {
	seen := make(map[int]bool, 16)
	var out []int
	for i := range t.Records {
		y := t.Records[i].Year
		if !seen[y] {
			seen[y] = true
			out = append(out, y)
		}
	}
	sort.Ints(out)
	return out
}

// SortByCityYear orders rows by (city, year) ascending. The sort is stable;
// downstream stages rely on this ordering.
func (t *Table) SortByCityYear() {
	sort.SliceStable(t.Records, func(i, j int) bool {
		a, b := &t.Records[i], &t.Records[j]
		if a.City != b.City {
			return a.City < b.City
		}
		return a.Year < b.Year
	})
}

// Key returns a canonical string identity for the record, used for duplicate
// detection. NaN formats as "NaN", so two records that are both missing the
// same measurement compare equal.
func (r *Record) Key() string {
	parts := make([]string, 0, 9)
	parts = append(parts, r.City, strconv.Itoa(r.Year))
	for _, f := range MeasuredFields() {
		parts = append(parts, strconv.FormatFloat(f.Get(r), 'g', -1, 64))
	}
	return strings.Join(parts, "\x1f")
}
