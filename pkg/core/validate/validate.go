// Package validate builds the advisory confidence flags attached to every
// extraction and provides reusable growth calculations (YoY, CAGR) used by
// the narrative prompt builder. Flags are advisory only: the engine never
// hides data, it just tells callers how much real signal backs each category.
package validate

import (
	"fmt"
	"math"
)

// =============================================================================
// YEAR-OVER-YEAR (YoY)
// =============================================================================

// YoYResult holds one year-over-year comparison.
type YoYResult struct {
	CurrentYear  int
	PriorYear    int
	CurrentValue float64
	PriorValue   float64
	ChangeAbs    float64
	ChangePct    float64
	Label        string // e.g. "Revenue", "Net Farm Income"
}

// CalculateYoY returns (current - prior) / prior x 100.
func CalculateYoY(current, prior float64) float64 {
	if prior == 0 {
		if current == 0 {
			return 0
		}
		return math.Inf(1) // growth from a zero base
	}
	return (current - prior) / prior * 100
}

// YoYFromSeries compares the last two entries of a series aligned to years.
func YoYFromSeries(years []int, series []float64, label string) (*YoYResult, error) {
	if len(years) < 2 || len(series) < len(years) {
		return nil, fmt.Errorf("need at least two aligned periods for %s", label)
	}
	n := len(years)
	current := series[n-1]
	prior := series[n-2]

	return &YoYResult{
		CurrentYear:  years[n-1],
		PriorYear:    years[n-2],
		CurrentValue: current,
		PriorValue:   prior,
		ChangeAbs:    current - prior,
		ChangePct:    CalculateYoY(current, prior),
		Label:        label,
	}, nil
}

// =============================================================================
// CAGR
// =============================================================================

// CalculateCAGR returns the compound annual growth rate as a percentage.
func CalculateCAGR(startValue, endValue float64, years int) float64 {
	if startValue <= 0 || years <= 0 {
		return 0
	}
	return (math.Pow(endValue/startValue, 1.0/float64(years)) - 1) * 100
}

// CAGRFromSeries computes CAGR across a full series aligned to years.
func CAGRFromSeries(years []int, series []float64) (float64, error) {
	if len(years) < 2 || len(series) < len(years) {
		return 0, fmt.Errorf("need at least two aligned periods")
	}
	n := len(years)
	span := years[n-1] - years[0]
	if span <= 0 {
		return 0, fmt.Errorf("years must span more than one period")
	}
	return CalculateCAGR(series[0], series[n-1], span), nil
}
