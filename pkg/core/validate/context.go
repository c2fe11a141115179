package validate

import (
	"math"

	"agricredit/pkg/core/extract"
	"agricredit/pkg/core/ratios"
)

// =============================================================================
// VALIDATION CONTEXT
// Per-category confidence flags aggregated from the extracted series and
// computed ratios. A value counts as valid when it is non-zero and not NaN.
// =============================================================================

// Context carries the advisory flags. JSON field names are part of the API
// surface consumed by the prompt builder and UI.
type Context struct {
	HasIncomeData     bool `json:"hasIncomeData"`
	HasBalanceData    bool `json:"hasBalanceData"`
	HasValidRatios    bool `json:"hasValidRatios"`
	HasValidTrends    bool `json:"hasValidTrends"`
	DebtCoverageValid bool `json:"debtCoverageValid"`
}

// DebtServiceFigures are the optional explicit debt figures for the latest
// period. Any one of them being valid, together with valid net income,
// makes debt coverage assessable.
type DebtServiceFigures struct {
	PrincipalPayments float64 `json:"principal_payments"`
	InterestPayments  float64 `json:"interest_payments"`
	TermDebt          float64 `json:"term_debt"`
}

// BuildContext aggregates the flags from extracted metrics and ratio series.
func BuildContext(metrics extract.MetricSeries, ratioSeries ratios.DerivedRatioSeries, debt DebtServiceFigures) Context {
	return Context{
		HasIncomeData: validValue(latest(metrics[extract.CategoryNetIncome])) ||
			validValue(latest(metrics[extract.CategoryRevenue])),
		HasBalanceData: anyValid(metrics[extract.CategoryTotalAssets]) ||
			anyValid(metrics[extract.CategoryTotalEquity]),
		HasValidRatios: anyValid(ratioSeries[ratios.KeyCurrentRatio]) ||
			anyValid(ratioSeries[ratios.KeyEquityRatio]),
		HasValidTrends: seriesLen(metrics) >= 2 &&
			(countValid(metrics[extract.CategoryNetIncome]) >= 2 ||
				countValid(metrics[extract.CategoryTotalAssets]) >= 2),
		DebtCoverageValid: validValue(latest(metrics[extract.CategoryNetIncome])) &&
			(validValue(debt.PrincipalPayments) ||
				validValue(debt.InterestPayments) ||
				validValue(debt.TermDebt)),
	}
}

func validValue(v float64) bool {
	return v != 0 && !math.IsNaN(v)
}

func latest(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	return series[len(series)-1]
}

func anyValid(series []float64) bool {
	for _, v := range series {
		if validValue(v) {
			return true
		}
	}
	return false
}

func countValid(series []float64) int {
	n := 0
	for _, v := range series {
		if validValue(v) {
			n++
		}
	}
	return n
}

// seriesLen returns the common series length (every assembled series has the
// same length as the YearSet).
func seriesLen(metrics extract.MetricSeries) int {
	for _, s := range metrics {
		return len(s)
	}
	return 0
}
