package extract

import (
	"strings"

	"agricredit/pkg/core/statement"
)

// =============================================================================
// KEYWORD-ROW MATCHER
// The first row (document order) whose joined text matches any of the
// category's keywords AND yields at least one coercible number is
// authoritative. First-match-wins is a deliberate tie-break policy: later
// matching rows are ignored even when they carry more values.
// =============================================================================

// RowMatch is the authoritative row found for a category.
type RowMatch struct {
	Category Category
	RowIndex int
	Values   []float64 // coerced values in row order (aligned: ascending year order)
}

// FindCategoryRow scans the table for the category's authoritative row.
// Keyword order is priority order: the canonical phrasing ("total assets")
// is tried across the whole table before its looser fallback ("assets"), so
// a "Current assets" row cannot shadow the totals row. Within one keyword,
// the first row (document order) yielding at least one coercible number
// wins; later matching rows are ignored.
//
// In aligned mode values come from the year columns of the alignment map and
// no positivity filter applies. In unaligned mode the scan is limited to the
// first 30 rows, the label cell must be non-empty, and non-positive values
// are discarded. Returns nil when no row qualifies.
func FindCategoryRow(rows []statement.Row, cat Category, keywords []string, years YearSet, align *Alignment) *RowMatch {
	limit := len(rows)
	if align == nil && limit > unalignedScanRows {
		limit = unalignedScanRows
	}

	for _, kw := range keywords {
		kw = strings.ToLower(kw)

		for i := 0; i < limit; i++ {
			row := rows[i]
			if align != nil && i == align.Row {
				continue // never treat the year header as a data row
			}
			if !strings.Contains(row.Joined(), kw) {
				continue
			}

			var values []float64
			if align != nil {
				values = alignedValues(row, years, align)
			} else {
				values = unalignedValues(row)
			}
			if len(values) == 0 {
				continue // keyword hit without numbers is not authoritative
			}

			return &RowMatch{Category: cat, RowIndex: i, Values: values}
		}
	}
	return nil
}

// alignedValues reads the cells at the year columns in ascending year order.
// Zero and negative values are kept: the alignment map already constrains
// which cells are figures. Header rows often omit the label column that data
// rows carry, shifting the value columns by one; when the exact columns
// yield fewer values than the map expects, coercion falls back to every
// numeric cell in row order (still without the positivity filter).
func alignedValues(row statement.Row, years YearSet, align *Alignment) []float64 {
	cols := align.orderedColumns(years)

	var values []float64
	for _, col := range cols {
		if col >= len(row.Cells) {
			continue
		}
		if v, ok := statement.CoerceNumber(row.Cells[col]); ok {
			values = append(values, v)
		}
	}
	if len(values) >= len(cols) {
		return values
	}

	var loose []float64
	for _, cell := range row.Cells {
		if v, ok := statement.CoerceNumber(cell); ok {
			loose = append(loose, v)
		}
	}
	if len(loose) > len(values) {
		return loose
	}
	return values
}

// unalignedValues coerces every trailing cell after the label, keeping only
// positive figures.
func unalignedValues(row statement.Row) []float64 {
	if row.First().IsEmpty() || len(row.Cells) < 2 {
		return nil
	}

	var values []float64
	for _, cell := range row.Cells[1:] {
		if v, ok := statement.CoercePositive(cell); ok {
			values = append(values, v)
		}
	}
	return values
}
