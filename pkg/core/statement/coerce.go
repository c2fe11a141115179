package statement

import (
	"strconv"
	"strings"
)

// =============================================================================
// NUMERIC COERCION
// One coercion function for every cell in the engine. Currency symbols,
// thousands separators and percent signs are stripped; parentheses mean
// negative. Values that do not parse cleanly are discarded, never guessed.
// =============================================================================

// CoerceNumber parses a cell into a float. The second return is false when
// the cell carries no parseable number.
func CoerceNumber(c Cell) (float64, bool) {
	switch c.Kind {
	case CellNumber:
		return c.Number, true
	case CellText:
		return parseNumericText(c.Text)
	default:
		return 0, false
	}
}

// CoercePositive is CoerceNumber restricted to values > 0. Used in unaligned
// extraction, where there is no year-column map constraining which cells are
// figures; discarding non-positive values avoids mistaking labels and IDs
// for amounts. Aligned extraction never applies this filter.
func CoercePositive(c Cell) (float64, bool) {
	v, ok := CoerceNumber(c)
	if !ok || v <= 0 {
		return 0, false
	}
	return v, true
}

func parseNumericText(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" || s == "—" || strings.EqualFold(s, "n/a") {
		return 0, false
	}

	// Parentheses convention for negatives: (1,500) == -1500.
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}

	for _, sym := range []string{"$", "€", "£", "¥", "%", ",", " ", " "} {
		s = strings.ReplaceAll(s, sym, "")
	}
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		v = -v
	}
	return v, true
}
