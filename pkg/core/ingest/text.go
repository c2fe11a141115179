package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// FromCSV reads comma-separated statement data into a JSON 2-D array
// string. Records may have uneven field counts; accountant exports
// often drop trailing empty columns.
func FromCSV(r io.Reader) (string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return "", fmt.Errorf("CSV contains no records")
	}
	return encodeGrid(records)
}

// Normalize routes raw content by format hint. Unknown formats pass
// through untouched: the extraction engine's own parser handles JSON
// grids and freeform text directly.
func Normalize(content, format string, binary io.Reader) (string, error) {
	switch strings.ToLower(format) {
	case "xlsx", "spreadsheet":
		return FromSpreadsheet(binary, "")
	case "html":
		return FromHTML(strings.NewReader(content))
	case "csv":
		return FromCSV(strings.NewReader(content))
	default:
		return content, nil
	}
}
