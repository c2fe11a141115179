package statement

import (
	"math"
	"testing"
)

func TestParseContentJSONGrid(t *testing.T) {
	content := `[["Year 2022","Year 2023"],["Revenue",100,200],["Notes",null,""]]`

	rows, err := ParseContent(content)
	if err != nil {
		t.Fatalf("ParseContent failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	if rows[0].Cells[0].Kind != CellText || rows[0].Cells[0].Text != "Year 2022" {
		t.Errorf("expected text cell 'Year 2022', got %+v", rows[0].Cells[0])
	}
	if rows[1].Cells[1].Kind != CellNumber || rows[1].Cells[1].Number != 100 {
		t.Errorf("expected number cell 100, got %+v", rows[1].Cells[1])
	}
	// null and "" both collapse to the empty cell
	if !rows[2].Cells[1].IsEmpty() || !rows[2].Cells[2].IsEmpty() {
		t.Errorf("expected empty cells, got %+v", rows[2].Cells)
	}
}

func TestParseContentFreeform(t *testing.T) {
	content := "Revenue\t100\t200\nNet income 50 60\n\nTotal assets, 1000, 1100"

	rows, err := ParseContent(content)
	if err != nil {
		t.Fatalf("ParseContent failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows (blank line skipped), got %d", len(rows))
	}
	if len(rows[0].Cells) != 3 {
		t.Errorf("tab split: expected 3 cells, got %d", len(rows[0].Cells))
	}
	if got := rows[2].Joined(); got != "total assets 1000 1100" {
		t.Errorf("comma split joined = %q", got)
	}
}

func TestParseContentMalformedJSONDegradesToLines(t *testing.T) {
	// Starts like JSON but is broken: must fall back to line splitting,
	// not fail the request.
	rows, err := ParseContent(`[["Revenue", 100`)
	if err != nil {
		t.Fatalf("malformed content should degrade, got error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 freeform row, got %d", len(rows))
	}
}

func TestParseContentEmptyFailsFast(t *testing.T) {
	if _, err := ParseContent("   \n  "); err == nil {
		t.Fatal("expected error for empty content")
	}
}

func TestCoerceNumber(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want float64
		ok   bool
	}{
		{"plain number", NumberCell(42.5), 42.5, true},
		{"currency with separators", TextCell("$1,234.56"), 1234.56, true},
		{"parenthesized negative", TextCell("(1,500)"), -1500, true},
		{"percent", TextCell("12.5%"), 12.5, true},
		{"euro", TextCell("€2 000"), 2000, true},
		{"dash placeholder", TextCell("-"), 0, false},
		{"em dash placeholder", TextCell("—"), 0, false},
		{"n/a", TextCell("N/A"), 0, false},
		{"label text", TextCell("Total revenue"), 0, false},
		{"mixed token", TextCell("FY2022"), 0, false},
		{"empty", EmptyCell, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CoerceNumber(tt.cell)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("value = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCoercePositiveFiltersNonPositive(t *testing.T) {
	if _, ok := CoercePositive(NumberCell(0)); ok {
		t.Error("zero must be discarded in unaligned mode")
	}
	if _, ok := CoercePositive(TextCell("(500)")); ok {
		t.Error("negative must be discarded in unaligned mode")
	}
	if v, ok := CoercePositive(TextCell("$500")); !ok || v != 500 {
		t.Errorf("positive value dropped: %v %v", v, ok)
	}
}
