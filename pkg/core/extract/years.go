package extract

import (
	"regexp"
	"sort"
	"strconv"

	"agricredit/pkg/core/statement"
)

// =============================================================================
// YEAR LOCATOR
// Finds the fiscal years in the content and, when a year-header row exists,
// the column positions aligned to each year.
// =============================================================================

// YearSet is the ascending, de-duplicated list of detected fiscal years.
// It is never empty after assembly: detection failure inserts defaults.
type YearSet []int

// Latest returns the most recent year.
func (ys YearSet) Latest() int {
	if len(ys) == 0 {
		return 0
	}
	return ys[len(ys)-1]
}

// Alignment maps table columns to fiscal years when a year-header row was
// found ("aligned mode"). Column indices are positions within the header row.
type Alignment struct {
	Row     int         // index of the header row in the canonical table
	Columns map[int]int // column index -> fiscal year
}

// orderedColumns returns the alignment's column indices sorted by ascending
// year, so extracted values line up with YearSet order.
func (a *Alignment) orderedColumns(years YearSet) []int {
	byYear := make(map[int]int, len(a.Columns))
	for col, year := range a.Columns {
		// First column wins for a duplicated year token.
		if existing, ok := byYear[year]; !ok || col < existing {
			byYear[year] = col
		}
	}

	cols := make([]int, 0, len(years))
	for _, y := range years {
		if col, ok := byYear[y]; ok {
			cols = append(cols, col)
		}
	}
	return cols
}

var (
	// yearHeaderToken matches the accepted header spellings: "2023",
	// "FY 2023", "FY2023", "Year 2023".
	yearHeaderToken = regexp.MustCompile(`(?i)\b(?:FY\s*|Year\s*)?(20\d{2})\b`)

	// bareYearToken is the loose scan used in unaligned mode.
	bareYearToken = regexp.MustCompile(`\b(20\d{2})\b`)
)

// LocateYears scans the table for fiscal years. The first row within the
// first 10 rows carrying at least two year tokens becomes the year header and
// yields an alignment map. Otherwise every 4-digit year token anywhere in the
// content is collected, and if none exist the set defaults to the three most
// recent periods ending at opt.CurrentYear.
func LocateYears(rows []statement.Row, opt Options) (YearSet, *Alignment) {
	opt = opt.applyDefaults()

	if years, align := locateHeaderRow(rows); align != nil {
		return years, align
	}

	years := collectYearTokens(rows)
	if len(years) == 0 {
		years = defaultYears(opt.CurrentYear, opt.Periods)
	}
	return years, nil
}

func locateHeaderRow(rows []statement.Row) (YearSet, *Alignment) {
	limit := len(rows)
	if limit > yearHeaderScanRows {
		limit = yearHeaderScanRows
	}

	for i := 0; i < limit; i++ {
		cols := make(map[int]int)
		for colIdx, cell := range rows[i].Cells {
			if cell.IsEmpty() {
				continue
			}
			m := yearHeaderToken.FindStringSubmatch(cell.String())
			if m == nil {
				continue
			}
			year, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			cols[colIdx] = year
		}

		// A header row needs at least two year tokens; the first such row
		// in document order wins.
		if len(cols) >= 2 {
			return uniqueSorted(valuesOf(cols)), &Alignment{Row: i, Columns: cols}
		}
	}
	return nil, nil
}

func collectYearTokens(rows []statement.Row) YearSet {
	var years []int
	for _, row := range rows {
		for _, cell := range row.Cells {
			if cell.Kind == statement.CellNumber {
				y := int(cell.Number)
				if float64(y) == cell.Number && y >= 2000 && y <= 2099 {
					years = append(years, y)
				}
				continue
			}
			for _, m := range bareYearToken.FindAllStringSubmatch(cell.String(), -1) {
				if y, err := strconv.Atoi(m[1]); err == nil {
					years = append(years, y)
				}
			}
		}
	}
	return uniqueSorted(years)
}

func defaultYears(currentYear, periods int) YearSet {
	ys := make(YearSet, periods)
	for i := 0; i < periods; i++ {
		ys[i] = currentYear - (periods - 1 - i)
	}
	return ys
}

func valuesOf(m map[int]int) []int {
	out := make([]int, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

func uniqueSorted(years []int) YearSet {
	seen := make(map[int]bool, len(years))
	var out YearSet
	for _, y := range years {
		if !seen[y] {
			seen[y] = true
			out = append(out, y)
		}
	}
	sort.Ints(out)
	return out
}
