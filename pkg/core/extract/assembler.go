package extract

// =============================================================================
// METRIC ASSEMBLER
// Builds per-category series aligned to the detected years. Every series has
// exactly len(YearSet) entries: short rows are right-padded with 0 (most
// recent period last, never left-padded), and rows with no numbers trigger
// the labeled fallback dataset with Extracted=false.
// =============================================================================

// CategorySeries is one assembled metric series.
type CategorySeries struct {
	Category  Category  `json:"category"`
	Values    []float64 `json:"values"`
	Extracted bool      `json:"extracted"`
	SourceRow int       `json:"source_row"` // -1 for fallback
	Label     string    `json:"label,omitempty"`
}

// AssembleMetric sizes the matched row's values to the year set, or
// substitutes the fallback dataset when the match is nil or empty.
func AssembleMetric(cat Category, match *RowMatch, years YearSet, fb Fallback) CategorySeries {
	n := len(years)

	if match == nil || len(match.Values) == 0 {
		return CategorySeries{
			Category:  cat,
			Values:    fb.seriesFor(cat, n),
			Extracted: false,
			SourceRow: -1,
			Label:     fb.Label,
		}
	}

	values := make([]float64, n)
	take := len(match.Values)
	if take > n {
		take = n
	}
	copy(values, match.Values[:take])

	return CategorySeries{
		Category:  cat,
		Values:    values,
		Extracted: true,
		SourceRow: match.RowIndex,
	}
}
