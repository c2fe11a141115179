// Package extract locates fiscal years and category rows in canonicalized
// statement content and assembles per-category numeric series aligned to the
// detected years. It is pure and deterministic: identical content always
// yields identical results, and low-confidence extraction degrades to a
// labeled fallback dataset instead of fabricating data silently.
package extract

import "time"

// Category names the financial series the engine extracts.
type Category string

const (
	CategoryRevenue            Category = "revenue"
	CategoryNetIncome          Category = "net_income"
	CategoryCurrentAssets      Category = "current_assets"
	CategoryCurrentLiabilities Category = "current_liabilities"
	CategoryTotalAssets        Category = "total_assets"
	CategoryTotalEquity        Category = "total_equity"
)

// AllCategories lists categories in a fixed order so assembly is
// deterministic regardless of map iteration.
var AllCategories = []Category{
	CategoryRevenue,
	CategoryNetIncome,
	CategoryCurrentAssets,
	CategoryCurrentLiabilities,
	CategoryTotalAssets,
	CategoryTotalEquity,
}

// IncomeCategories and BalanceCategories partition the series by source
// document for combined (income statement + balance sheet) analysis.
var IncomeCategories = []Category{CategoryRevenue, CategoryNetIncome}

var BalanceCategories = []Category{
	CategoryCurrentAssets,
	CategoryCurrentLiabilities,
	CategoryTotalAssets,
	CategoryTotalEquity,
}

// DefaultKeywords returns the ordered, case-insensitive substring lists used
// by the row matcher. Order matters: earlier keywords are the canonical
// phrasings; all comparisons run against the row's joined lowercase text.
func DefaultKeywords() map[Category][]string {
	return map[Category][]string{
		CategoryRevenue:            {"revenue", "sales", "gross income", "total income", "turnover"},
		CategoryNetIncome:          {"net income", "net profit", "profit after tax", "earnings"},
		CategoryCurrentAssets:      {"current assets", "liquid assets", "short term assets"},
		CategoryCurrentLiabilities: {"current liabilities", "short term debt", "current debt"},
		CategoryTotalAssets:        {"total assets", "assets"},
		CategoryTotalEquity:        {"equity", "shareholders equity", "net worth", "capital"},
	}
}

// Fallback is the labeled representative dataset substituted when a
// category's authoritative row yields no numbers. Callers can always tell
// fallback from real data via CategorySeries.Extracted.
type Fallback struct {
	Label  string
	Values map[Category][]float64
}

// FallbackLabel marks fallback series in output.
const FallbackLabel = "representative sample (no extraction signal)"

// DefaultFallback returns representative mid-size farm figures, oldest first.
func DefaultFallback() Fallback {
	return Fallback{
		Label: FallbackLabel,
		Values: map[Category][]float64{
			CategoryRevenue:            {480000, 520000, 565000},
			CategoryNetIncome:          {58000, 67000, 74000},
			CategoryCurrentAssets:      {150000, 162000, 178000},
			CategoryCurrentLiabilities: {95000, 99000, 104000},
			CategoryTotalAssets:        {1400000, 1480000, 1560000},
			CategoryTotalEquity:        {820000, 875000, 935000},
		},
	}
}

// seriesFor sizes a fallback dataset to n periods, keeping the most recent
// values last. Longer requests repeat the newest value.
func (f Fallback) seriesFor(cat Category, n int) []float64 {
	base := f.Values[cat]
	if len(base) == 0 || n <= 0 {
		return make([]float64, n)
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		// Fill from the right so the latest representative value stays in
		// the latest period.
		srcIdx := len(base) - (n - i)
		if srcIdx < 0 {
			srcIdx = 0
		}
		if srcIdx >= len(base) {
			srcIdx = len(base) - 1
		}
		out[i] = base[srcIdx]
	}
	return out
}

const (
	// DefaultPeriods is the target period count when the caller does not
	// supply one.
	DefaultPeriods = 3

	// yearHeaderScanRows limits the search for a year-header row.
	yearHeaderScanRows = 10

	// unalignedScanRows limits the row scan in unaligned mode.
	unalignedScanRows = 30
)

// Options tunes one extraction. The zero value is normalized by applyDefaults.
type Options struct {
	// Periods is the target period count, used to size the default YearSet
	// when no year tokens are found. Default 3.
	Periods int

	// Keywords overrides the category keyword lists.
	Keywords map[Category][]string

	// Fallback overrides the representative dataset.
	Fallback *Fallback

	// CurrentYear anchors the default YearSet. Zero means the wall-clock
	// year; tests pin it for determinism.
	CurrentYear int
}

func (o Options) applyDefaults() Options {
	if o.Periods <= 0 {
		o.Periods = DefaultPeriods
	}
	if o.Keywords == nil {
		o.Keywords = DefaultKeywords()
	}
	if o.Fallback == nil {
		fb := DefaultFallback()
		o.Fallback = &fb
	}
	if o.CurrentYear == 0 {
		o.CurrentYear = time.Now().Year()
	}
	return o
}
