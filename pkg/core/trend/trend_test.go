package trend

import (
	"math"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name          string
		series        []float64
		lowerIsBetter bool
		want          Label
	}{
		// 8.0% change, higher-is-better
		{"improving net income", []float64{100000, 108000}, false, Improving},
		// 0.9% change sits inside the stable band
		{"stable net income", []float64{100000, 100900}, false, Stable},
		{"declining revenue", []float64{100000, 90000}, false, Declining},
		// prev = 0 reads Stable to avoid division by zero
		{"zero prior period", []float64{0, 5000}, false, Stable},
		{"single point", []float64{42}, false, Stable},
		{"empty", nil, false, Stable},
		// lower-is-better flips the sign interpretation
		{"leverage falling is improving", []float64{2.0, 1.5}, true, Improving},
		{"leverage rising is declining", []float64{1.5, 2.0}, true, Declining},
		// negative prior uses |prev| in the denominator
		{"recovery from loss", []float64{-50000, -40000}, false, Improving},
		// exactly 2% is outside the strict < 2 band
		{"exactly two percent", []float64{100, 102}, false, Improving},
		{"just under two percent", []float64{100, 101.9}, false, Stable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.series, tt.lowerIsBetter); got != tt.want {
				t.Errorf("Classify(%v, %v) = %v, want %v", tt.series, tt.lowerIsBetter, got, tt.want)
			}
		})
	}
}

func TestChangePercent(t *testing.T) {
	if got := ChangePercent([]float64{100000, 108000}); math.Abs(got-8.0) > 1e-9 {
		t.Errorf("ChangePercent = %v, want 8.0", got)
	}
	// only the last two points matter
	if got := ChangePercent([]float64{1, 2, 3, 100, 50}); math.Abs(got-(-50)) > 1e-9 {
		t.Errorf("ChangePercent = %v, want -50", got)
	}
	if got := ChangePercent([]float64{0, 10}); got != 0 {
		t.Errorf("ChangePercent with zero prior = %v, want 0", got)
	}
}

func TestClassifyAll(t *testing.T) {
	labels := ClassifyAll(map[string][]float64{
		"net_income":         {100, 120},
		"debt_to_equity":     {1.0, 1.4},
		"operating_expenses": {100, 80},
	}, map[string]bool{
		"debt_to_equity":     true,
		"operating_expenses": true,
	})

	if labels["net_income"] != Improving {
		t.Errorf("net_income = %v, want Improving", labels["net_income"])
	}
	if labels["debt_to_equity"] != Declining {
		t.Errorf("debt_to_equity = %v, want Declining", labels["debt_to_equity"])
	}
	if labels["operating_expenses"] != Improving {
		t.Errorf("operating_expenses = %v, want Improving", labels["operating_expenses"])
	}
}
