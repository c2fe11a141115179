package ingest

import (
	"encoding/json"
	"strings"
	"testing"
)

func decodeGrid(t *testing.T, content string) [][]string {
	t.Helper()
	var grid [][]string
	if err := json.Unmarshal([]byte(content), &grid); err != nil {
		t.Fatalf("output is not a JSON grid: %v\ncontent: %s", err, content)
	}
	return grid
}

func TestFromHTMLPicksLargestTable(t *testing.T) {
	html := `<html><body>
		<table><tr><td>Prepared by</td><td>Smith &amp; Co</td></tr></table>
		<table>
			<tr><th>Item</th><th>2023</th><th>2024</th></tr>
			<tr><td>Revenue</td><td>1,000</td><td>1,200</td></tr>
			<tr><td>Net income</td><td>80</td><td>95</td></tr>
		</table>
	</body></html>`

	out, err := FromHTML(strings.NewReader(html))
	if err != nil {
		t.Fatalf("FromHTML: %v", err)
	}

	grid := decodeGrid(t, out)
	if len(grid) != 3 {
		t.Fatalf("rows = %d, want 3", len(grid))
	}
	if grid[1][0] != "Revenue" || grid[1][2] != "1,200" {
		t.Errorf("revenue row = %v", grid[1])
	}
	if grid[0][1] != "2023" {
		t.Errorf("header row = %v", grid[0])
	}
}

func TestFromHTMLNoTable(t *testing.T) {
	_, err := FromHTML(strings.NewReader("<p>no tables here</p>"))
	if err == nil {
		t.Fatal("expected error for document without tables")
	}
}

func TestFromCSV(t *testing.T) {
	csvData := "Item,2023,2024\nRevenue,1000,1200\nNet income,80\n"

	out, err := FromCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("FromCSV: %v", err)
	}

	grid := decodeGrid(t, out)
	if len(grid) != 3 {
		t.Fatalf("rows = %d, want 3", len(grid))
	}
	// Uneven field counts survive.
	if len(grid[2]) != 2 {
		t.Errorf("short row kept %d fields, want 2", len(grid[2]))
	}
}

func TestFromCSVEmpty(t *testing.T) {
	if _, err := FromCSV(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty CSV")
	}
}

func TestNormalizePassthrough(t *testing.T) {
	content := "Revenue\t100\t200"
	out, err := Normalize(content, "text", nil)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if out != content {
		t.Errorf("passthrough changed content: %q", out)
	}
}

func TestNormalizeRoutesCSV(t *testing.T) {
	out, err := Normalize("Revenue,100,200", "csv", nil)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	grid := decodeGrid(t, out)
	if grid[0][0] != "Revenue" {
		t.Errorf("grid = %v", grid)
	}
}
