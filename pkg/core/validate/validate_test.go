package validate

import (
	"math"
	"testing"
)

func TestCalculateYoY(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		prior    float64
		expected float64
	}{
		{"Positive growth", 110, 100, 10.0},
		{"Negative growth", 90, 100, -10.0},
		{"Zero growth", 100, 100, 0.0},
		{"Double", 200, 100, 100.0},
		{"Halved", 50, 100, -50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateYoY(tt.current, tt.prior)
			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("CalculateYoY(%v, %v) = %v, want %v", tt.current, tt.prior, result, tt.expected)
			}
		})
	}
}

func TestCalculateYoYFromZeroBase(t *testing.T) {
	if got := CalculateYoY(0, 0); got != 0 {
		t.Errorf("YoY(0,0) = %v, want 0", got)
	}
	if got := CalculateYoY(500, 0); !math.IsInf(got, 1) {
		t.Errorf("YoY(500,0) = %v, want +Inf", got)
	}
}

func TestYoYFromSeries(t *testing.T) {
	years := []int{2022, 2023, 2024}
	revenue := []float64{480000, 520000, 565000}

	res, err := YoYFromSeries(years, revenue, "Revenue")
	if err != nil {
		t.Fatalf("YoYFromSeries failed: %v", err)
	}
	if res.CurrentYear != 2024 || res.PriorYear != 2023 {
		t.Errorf("years = %d/%d, want 2024/2023", res.CurrentYear, res.PriorYear)
	}
	if res.ChangeAbs != 45000 {
		t.Errorf("ChangeAbs = %v, want 45000", res.ChangeAbs)
	}
	// 45000/520000 = 8.65%
	if math.Abs(res.ChangePct-8.6538) > 0.001 {
		t.Errorf("ChangePct = %v, want ~8.65", res.ChangePct)
	}

	if _, err := YoYFromSeries([]int{2024}, []float64{1}, "Revenue"); err == nil {
		t.Error("expected error for single period")
	}
}

func TestCalculateCAGR(t *testing.T) {
	// 100 -> 121 over 2 years = 10% CAGR
	got := CalculateCAGR(100, 121, 2)
	if math.Abs(got-10.0) > 0.001 {
		t.Errorf("CAGR = %v, want 10.0", got)
	}
	if got := CalculateCAGR(0, 121, 2); got != 0 {
		t.Errorf("CAGR from zero base = %v, want 0", got)
	}
	if got := CalculateCAGR(100, 121, 0); got != 0 {
		t.Errorf("CAGR over zero years = %v, want 0", got)
	}
}

func TestCAGRFromSeries(t *testing.T) {
	years := []int{2022, 2024}
	series := []float64{100, 121}

	got, err := CAGRFromSeries(years, series)
	if err != nil {
		t.Fatalf("CAGRFromSeries failed: %v", err)
	}
	if math.Abs(got-10.0) > 0.001 {
		t.Errorf("CAGR = %v, want 10.0", got)
	}
}
