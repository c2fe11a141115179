// Package ingest normalizes uploaded statement documents into the grid
// content the extraction engine understands. Borrowers send whatever
// their accountant produced: xlsx workbooks, HTML exports from farm
// management software, or plain CSV/text. Each converter emits a JSON
// 2-D array string so the downstream parser sees one format.
package ingest

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// FromSpreadsheet reads the first sheet of an xlsx workbook and returns
// its rows as a JSON 2-D array string. SheetName selects a specific
// sheet; empty means the first sheet in the workbook.
func FromSpreadsheet(r io.Reader, sheetName string) (string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return "", fmt.Errorf("workbook contains no sheets")
		}
		sheetName = sheets[0]
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return "", fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("sheet %q is empty", sheetName)
	}

	return encodeGrid(rows)
}

func encodeGrid(rows [][]string) (string, error) {
	payload, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("failed to encode grid: %w", err)
	}
	return string(payload), nil
}
