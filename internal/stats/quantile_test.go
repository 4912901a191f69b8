package stats

import (
	"math"
	"testing"
)

func TestQuantileInterpolation(t *testing.T) {
	sorted := []float64{10, 20, 30, 40}
	cases := []struct {
		q    float64
		want float64
	}{
		{0, 10},
		{0.25, 17.5},
		{0.5, 25},
		{0.75, 32.5},
		{1, 40},
	}
	for _, c := range cases {
		if got := Quantile(sorted, c.q); got != c.want {
			t.Errorf("Quantile(%v) = %v, want %v", c.q, got, c.want)
		}
	}
}

func TestQuantileSingleValue(t *testing.T) {
	if got := Quantile([]float64{7}, 0.5); got != 7 {
		t.Fatalf("single element: got %v", got)
	}
}

func TestQuantileEmpty(t *testing.T) {
	if got := Quantile(nil, 0.5); !math.IsNaN(got) {
		t.Fatalf("empty input must be NaN, got %v", got)
	}
}

func TestMedianDoesNotModifyInput(t *testing.T) {
	vals := []float64{3, 1, 2}
	if got := Median(vals); got != 2 {
		t.Fatalf("median: got %v", got)
	}
	if vals[0] != 3 || vals[1] != 1 || vals[2] != 2 {
		t.Fatalf("input reordered: %v", vals)
	}
}

func TestMedianEvenCount(t *testing.T) {
	if got := Median([]float64{1, 2, 3, 4}); got != 2.5 {
		t.Fatalf("median of even count: got %v", got)
	}
}
