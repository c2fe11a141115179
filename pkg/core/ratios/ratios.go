// Package ratios computes the derived financial ratios used across the
// credit-analysis application. Every function is pure and deterministic:
// a denominator of zero or below yields 0, never a panic, so degenerate
// statements produce defined results for the UI instead of failures.
package ratios

import "math"

// Config holds the documented simplifying proxies standing in for debt
// service and interest figures that farm statements rarely itemize.
// DSCR assumes annual debt service of DebtServiceProxy x current
// liabilities; interest coverage assumes interest of InterestProxy x total
// liabilities. Both are configurable, never inlined.
type Config struct {
	DebtServiceProxy float64 `json:"debt_service_proxy"`
	InterestProxy    float64 `json:"interest_proxy"`
}

// DefaultConfig returns the standard 10% debt-service and 5% interest proxies.
func DefaultConfig() Config {
	return Config{DebtServiceProxy: 0.10, InterestProxy: 0.05}
}

// safeDiv divides with the engine's degenerate-denominator rule:
// denominator <= 0 yields 0.
func safeDiv(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return numerator / denominator
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round1(v float64) float64 { return math.Round(v*10) / 10 }

// =============================================================================
// LIQUIDITY
// =============================================================================

// CurrentRatio = Current Assets / Current Liabilities, 2 dp.
func CurrentRatio(currentAssets, currentLiabilities float64) float64 {
	return round2(safeDiv(currentAssets, currentLiabilities))
}

// WorkingCapital = Current Assets - Current Liabilities, rounded to whole units.
func WorkingCapital(currentAssets, currentLiabilities float64) float64 {
	return math.Round(currentAssets - currentLiabilities)
}

// =============================================================================
// SOLVENCY & LEVERAGE
// =============================================================================

// EquityRatio = Total Equity / Total Assets x 100, 1 dp.
func EquityRatio(totalEquity, totalAssets float64) float64 {
	return round1(safeDiv(totalEquity, totalAssets) * 100)
}

// DebtToEquity = Total Liabilities / Total Equity, 2 dp.
func DebtToEquity(totalLiabilities, totalEquity float64) float64 {
	return round2(safeDiv(totalLiabilities, totalEquity))
}

// FinancialLeverage = Total Assets / Total Equity, 2 dp.
func FinancialLeverage(totalAssets, totalEquity float64) float64 {
	return round2(safeDiv(totalAssets, totalEquity))
}

// =============================================================================
// PROFITABILITY
// =============================================================================

// ROA = Net Income / Total Assets x 100, 1 dp.
func ROA(netIncome, totalAssets float64) float64 {
	return round1(safeDiv(netIncome, totalAssets) * 100)
}

// ROE = Net Income / Total Equity x 100, 1 dp.
func ROE(netIncome, totalEquity float64) float64 {
	return round1(safeDiv(netIncome, totalEquity) * 100)
}

// AssetTurnover = Revenue / Total Assets, 2 dp.
func AssetTurnover(revenue, totalAssets float64) float64 {
	return round2(safeDiv(revenue, totalAssets))
}

// OperatingProfitMargin = Net Farm Income / Revenue x 100, 1 dp.
func OperatingProfitMargin(netFarmIncome, revenue float64) float64 {
	return round1(safeDiv(netFarmIncome, revenue) * 100)
}

// NetProfitMargin = Net Income / Revenue x 100, 1 dp.
func NetProfitMargin(netIncome, revenue float64) float64 {
	return round1(safeDiv(netIncome, revenue) * 100)
}

// =============================================================================
// DEBT COVERAGE
// =============================================================================

// DSCR = Net Farm Income / annual debt service, 2 dp. When no explicit debt
// service is known, callers use DSCRProxy.
func DSCR(netFarmIncome, debtService float64) float64 {
	return round2(safeDiv(netFarmIncome, debtService))
}

// DSCRProxy estimates annual debt service as DebtServiceProxy x current
// liabilities.
func (c Config) DSCRProxy(netFarmIncome, currentLiabilities float64) float64 {
	return DSCR(netFarmIncome, currentLiabilities*c.DebtServiceProxy)
}

// InterestCoverage = (Net Farm Income + interest) / interest, 2 dp.
func InterestCoverage(netFarmIncome, interest float64) float64 {
	return round2(safeDiv(netFarmIncome+interest, interest))
}

// InterestCoverageProxy estimates interest as InterestProxy x total
// liabilities.
func (c Config) InterestCoverageProxy(netFarmIncome, totalLiabilities float64) float64 {
	return InterestCoverage(netFarmIncome, totalLiabilities*c.InterestProxy)
}
