// Package statement canonicalizes raw statement content into typed row tables.
// Content arrives from upstream collaborators (upload endpoint, spreadsheet or
// HTML ingestors) either as a JSON 2-D array of cell values or as freeform
// multi-line text. The package owns no I/O and never mutates its input.
package statement

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CellKind tags a cell value.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellNumber
	CellText
)

// Cell is a single statement cell. Mixed string/number inputs collapse into
// this one variant so downstream code never type-sniffs raw values.
type Cell struct {
	Kind   CellKind
	Number float64
	Text   string
}

// EmptyCell is the zero cell.
var EmptyCell = Cell{Kind: CellEmpty}

func NumberCell(v float64) Cell { return Cell{Kind: CellNumber, Number: v} }

func TextCell(s string) Cell {
	s = strings.TrimSpace(s)
	if s == "" {
		return EmptyCell
	}
	return Cell{Kind: CellText, Text: s}
}

// IsEmpty reports whether the cell carries no value.
func (c Cell) IsEmpty() bool { return c.Kind == CellEmpty }

// String renders the cell for row-joining and logging.
func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", c.Number), "0"), ".")
	case CellText:
		return c.Text
	default:
		return ""
	}
}

// Row is an ordered sequence of cells.
type Row struct {
	Cells []Cell
}

// First returns the leading cell (the label column in most statements).
func (r Row) First() Cell {
	if len(r.Cells) == 0 {
		return EmptyCell
	}
	return r.Cells[0]
}

// Joined returns the lowercase concatenation of all cell text, used for
// keyword matching against category lists.
func (r Row) Joined() string {
	parts := make([]string, 0, len(r.Cells))
	for _, c := range r.Cells {
		if !c.IsEmpty() {
			parts = append(parts, c.String())
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// ParseContent turns raw statement content into a canonical row table.
// A JSON 2-D array is attempted first; anything else is treated as freeform
// text, one row per line. Content that is neither valid JSON nor splittable
// into usable lines degrades to an empty table rather than failing the
// request; only missing content is an error.
func ParseContent(content string) ([]Row, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("statement content is empty")
	}

	if rows, ok := parseJSONGrid(content); ok {
		return rows, nil
	}
	return parseFreeform(content), nil
}

// parseJSONGrid decodes a JSON 2-D array of mixed cell values.
func parseJSONGrid(content string) ([]Row, bool) {
	var grid [][]interface{}
	if err := json.Unmarshal([]byte(content), &grid); err != nil {
		return nil, false
	}

	rows := make([]Row, 0, len(grid))
	for _, rawRow := range grid {
		row := Row{Cells: make([]Cell, 0, len(rawRow))}
		for _, rawCell := range rawRow {
			row.Cells = append(row.Cells, cellFromJSON(rawCell))
		}
		rows = append(rows, row)
	}
	return rows, true
}

func cellFromJSON(v interface{}) Cell {
	switch t := v.(type) {
	case nil:
		return EmptyCell
	case float64:
		return NumberCell(t)
	case string:
		return TextCell(t)
	case bool:
		return TextCell(fmt.Sprintf("%v", t))
	default:
		// Nested arrays/objects are noise in a statement grid.
		return EmptyCell
	}
}

// parseFreeform splits multi-line text into rows. Cells are separated by
// tabs when present, then runs of two or more spaces, then commas, then
// single spaces. The ladder keeps "1,000" intact in space-separated lines
// while still handling pasted CSV.
func parseFreeform(content string) []Row {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	var rows []Row
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, Row{Cells: splitLine(line)})
	}
	return rows
}

func splitLine(line string) []Cell {
	var parts []string
	switch {
	case strings.Contains(line, "\t"):
		parts = strings.Split(line, "\t")
	case strings.Contains(line, "  "):
		parts = splitOnWideGaps(line)
	case strings.Contains(line, ","):
		parts = strings.Split(line, ",")
	default:
		parts = strings.Fields(line)
	}

	cells := make([]Cell, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, TextCell(p))
	}
	return cells
}

func splitOnWideGaps(line string) []string {
	var parts []string
	var cur strings.Builder
	spaces := 0
	for _, r := range line {
		if r == ' ' {
			spaces++
			continue
		}
		if spaces >= 2 && cur.Len() > 0 {
			parts = append(parts, cur.String())
			cur.Reset()
		} else if spaces == 1 && cur.Len() > 0 {
			cur.WriteRune(' ')
		}
		spaces = 0
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}
