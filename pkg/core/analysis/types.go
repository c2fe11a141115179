// Package analysis wires extraction, ratio computation, trend labeling and
// validation into one deterministic engine. Each invocation is independent
// and holds no shared state, so analyses are safely parallelizable across
// requests.
package analysis

import (
	"agricredit/pkg/core/extract"
	"agricredit/pkg/core/ratios"
	"agricredit/pkg/core/trend"
	"agricredit/pkg/core/validate"
)

// StatementType names the document kind supplied by the caller.
type StatementType string

const (
	StatementIncome   StatementType = "income_statement"
	StatementBalance  StatementType = "balance_sheet"
	StatementCombined StatementType = "combined"
)

// StatementAnalysis is the full output handed to collaborators: the prompt
// builder, chart renderer and exporter consume these values opaquely.
type StatementAnalysis struct {
	ID        string                    `json:"id"`
	Type      StatementType             `json:"type"`
	Years     extract.YearSet           `json:"years"`
	Extracted bool                      `json:"extracted"`
	Series    map[extract.Category]extract.CategorySeries `json:"series"`
	Metrics   extract.MetricSeries      `json:"metrics"`
	Ratios    ratios.DerivedRatioSeries `json:"ratios"`
	Trends    map[string]trend.Label    `json:"trends"`
	Validation validate.Context         `json:"validation"`
}

// DefaultLowerIsBetter is the engine's explicit direction map for trend
// labeling. Callers may override it; directions are never inferred from data.
func DefaultLowerIsBetter() map[string]bool {
	return map[string]bool{
		ratios.KeyDebtToEquity:      true,
		ratios.KeyFinancialLeverage: true,
	}
}
