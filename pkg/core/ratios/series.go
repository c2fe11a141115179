package ratios

import "agricredit/pkg/core/extract"

// =============================================================================
// RATIO SERIES
// One ratio value per fiscal year, aligned to the extraction YearSet.
// =============================================================================

// Ratio name keys, stable across the API, store, and prompt builder.
const (
	KeyCurrentRatio          = "current_ratio"
	KeyWorkingCapital        = "working_capital"
	KeyEquityRatio           = "equity_ratio"
	KeyDebtToEquity          = "debt_to_equity"
	KeyROA                   = "roa"
	KeyROE                   = "roe"
	KeyAssetTurnover         = "asset_turnover"
	KeyDSCR                  = "dscr"
	KeyOperatingProfitMargin = "operating_profit_margin"
	KeyNetProfitMargin       = "net_profit_margin"
	KeyInterestCoverage      = "interest_coverage"
	KeyFinancialLeverage     = "financial_leverage"
)

// AllKeys lists ratio keys in a fixed computation order.
var AllKeys = []string{
	KeyCurrentRatio,
	KeyWorkingCapital,
	KeyEquityRatio,
	KeyDebtToEquity,
	KeyROA,
	KeyROE,
	KeyAssetTurnover,
	KeyDSCR,
	KeyOperatingProfitMargin,
	KeyNetProfitMargin,
	KeyInterestCoverage,
	KeyFinancialLeverage,
}

// DerivedRatioSeries maps ratio name to one value per fiscal year.
type DerivedRatioSeries map[string][]float64

// Inputs carries per-year metric series for the ratio calculator. Derived
// and optional series are normalized by Normalize before computation:
//   - TotalLiabilities defaults to TotalAssets - TotalEquity
//   - NetFarmIncome defaults to NetIncome (farm statements usually report a
//     single bottom line)
//   - PrincipalPayments/InterestPayments/TermDebt are optional explicit
//     debt-service figures; when present for a year they replace the
//     configured proxies for DSCR and interest coverage.
type Inputs struct {
	Years extract.YearSet

	Revenue            []float64
	NetIncome          []float64
	NetFarmIncome      []float64
	CurrentAssets      []float64
	CurrentLiabilities []float64
	TotalAssets        []float64
	TotalEquity        []float64
	TotalLiabilities   []float64

	PrincipalPayments []float64
	InterestPayments  []float64
	TermDebt          []float64
}

// InputsFromMetrics builds ratio inputs from an extraction metric map.
func InputsFromMetrics(m extract.MetricSeries, years extract.YearSet) Inputs {
	return Inputs{
		Years:              years,
		Revenue:            m[extract.CategoryRevenue],
		NetIncome:          m[extract.CategoryNetIncome],
		CurrentAssets:      m[extract.CategoryCurrentAssets],
		CurrentLiabilities: m[extract.CategoryCurrentLiabilities],
		TotalAssets:        m[extract.CategoryTotalAssets],
		TotalEquity:        m[extract.CategoryTotalEquity],
	}
}

// Normalize fills derived series. It returns a copy; inputs are never
// mutated in place.
func (in Inputs) Normalize() Inputs {
	n := len(in.Years)

	if len(in.TotalLiabilities) == 0 {
		tl := make([]float64, n)
		for i := 0; i < n; i++ {
			tl[i] = at(in.TotalAssets, i) - at(in.TotalEquity, i)
		}
		in.TotalLiabilities = tl
	}
	if len(in.NetFarmIncome) == 0 {
		nfi := make([]float64, n)
		copy(nfi, in.NetIncome)
		in.NetFarmIncome = nfi
	}
	return in
}

// at reads series[i], treating missing entries as 0 so ragged inputs cannot
// panic the calculator.
func at(series []float64, i int) float64 {
	if i < 0 || i >= len(series) {
		return 0
	}
	return series[i]
}

// ComputeSeries computes every ratio for every year. The result maps always
// contain all ratio keys with exactly len(Years) entries each.
func ComputeSeries(in Inputs, cfg Config) DerivedRatioSeries {
	in = in.Normalize()
	n := len(in.Years)

	out := make(DerivedRatioSeries, len(AllKeys))
	for _, key := range AllKeys {
		out[key] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		rev := at(in.Revenue, i)
		ni := at(in.NetIncome, i)
		nfi := at(in.NetFarmIncome, i)
		ca := at(in.CurrentAssets, i)
		cl := at(in.CurrentLiabilities, i)
		ta := at(in.TotalAssets, i)
		te := at(in.TotalEquity, i)
		tl := at(in.TotalLiabilities, i)

		out[KeyCurrentRatio][i] = CurrentRatio(ca, cl)
		out[KeyWorkingCapital][i] = WorkingCapital(ca, cl)
		out[KeyEquityRatio][i] = EquityRatio(te, ta)
		out[KeyDebtToEquity][i] = DebtToEquity(tl, te)
		out[KeyROA][i] = ROA(ni, ta)
		out[KeyROE][i] = ROE(ni, te)
		out[KeyAssetTurnover][i] = AssetTurnover(rev, ta)
		out[KeyOperatingProfitMargin][i] = OperatingProfitMargin(nfi, rev)
		out[KeyNetProfitMargin][i] = NetProfitMargin(ni, rev)
		out[KeyFinancialLeverage][i] = FinancialLeverage(ta, te)

		// Explicit debt-service figures beat the proxies when present.
		if ds := at(in.PrincipalPayments, i) + at(in.InterestPayments, i); ds > 0 {
			out[KeyDSCR][i] = DSCR(nfi, ds)
		} else {
			out[KeyDSCR][i] = cfg.DSCRProxy(nfi, cl)
		}
		if interest := at(in.InterestPayments, i); interest > 0 {
			out[KeyInterestCoverage][i] = InterestCoverage(nfi, interest)
		} else {
			out[KeyInterestCoverage][i] = cfg.InterestCoverageProxy(nfi, tl)
		}
	}

	return out
}
