package extract

import (
	"fmt"

	"agricredit/pkg/core/statement"
)

// =============================================================================
// EXTRACTION ENTRY POINT
// RawStatementContent -> year location -> keyword matching -> assembly.
// =============================================================================

// MetricSeries maps category name to its assembled numeric series. Every
// series has exactly len(YearSet) entries.
type MetricSeries map[Category][]float64

// Result is the tagged extraction outcome. Extracted reports whether any
// category came from a real row; per-category provenance lives in Series.
// Callers must surface the extracted-vs-fallback distinction to end users.
type Result struct {
	Extracted bool                        `json:"extracted"`
	Aligned   bool                        `json:"aligned"`
	Years     YearSet                     `json:"years"`
	Series    map[Category]CategorySeries `json:"series"`
}

// Metrics flattens the per-category series into a plain map for the ratio
// calculator and chart/prompt collaborators.
func (r *Result) Metrics() MetricSeries {
	m := make(MetricSeries, len(r.Series))
	for cat, s := range r.Series {
		m[cat] = s.Values
	}
	return m
}

// ExtractedCategories returns the categories backed by real rows.
func (r *Result) ExtractedCategories() []Category {
	var out []Category
	for _, cat := range AllCategories {
		if s, ok := r.Series[cat]; ok && s.Extracted {
			out = append(out, cat)
		}
	}
	return out
}

// Extract runs the full extraction over raw statement content. Only missing
// content is an error; malformed content degrades to defaults and fallback
// series. This feeds a best-effort UI, so availability wins over strictness.
func Extract(content string, opt Options) (*Result, error) {
	rows, err := statement.ParseContent(content)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	return ExtractRows(rows, opt), nil
}

// ExtractRows runs extraction over an already-canonicalized table.
func ExtractRows(rows []statement.Row, opt Options) *Result {
	opt = opt.applyDefaults()

	years, align := LocateYears(rows, opt)

	result := &Result{
		Aligned: align != nil,
		Years:   years,
		Series:  make(map[Category]CategorySeries, len(AllCategories)),
	}

	for _, cat := range AllCategories {
		match := FindCategoryRow(rows, cat, opt.Keywords[cat], years, align)
		series := AssembleMetric(cat, match, years, *opt.Fallback)
		result.Series[cat] = series
		if series.Extracted {
			result.Extracted = true
		}
	}

	return result
}
