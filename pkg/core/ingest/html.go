package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FromHTML extracts the largest table in an HTML document and returns
// its rows as a JSON 2-D array string. Farm management exports usually
// wrap the statement in a single table, but some reports carry a small
// header table first, so the table with the most cells wins.
func FromHTML(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	var best [][]string
	bestCells := 0

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := tableRows(table)
		cells := 0
		for _, row := range rows {
			cells += len(row)
		}
		if cells > bestCells {
			best = rows
			bestCells = cells
		}
	})

	if len(best) == 0 {
		return "", fmt.Errorf("no table found in document")
	}
	return encodeGrid(best)
}

func tableRows(table *goquery.Selection) [][]string {
	var rows [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, strings.TrimSpace(cell.Text()))
		})
		if len(row) > 0 {
			rows = append(rows, row)
		}
	})
	return rows
}
