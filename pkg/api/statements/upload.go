package statements

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"agricredit/pkg/core/ingest"
)

// maxUploadBytes caps statement uploads. Farm statements are small;
// anything bigger is a wrong file.
const maxUploadBytes = 16 << 20

type ConvertResponse struct {
	Content string `json:"content"`
	Format  string `json:"format"`
}

// HandleConvert accepts a multipart statement upload (xlsx, html or
// csv) and returns the normalized grid content ready for analysis.
func HandleConvert(w http.ResponseWriter, r *http.Request) {
	writeCORS(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	format := r.FormValue("format")
	if format == "" {
		format = formatFromName(header.Filename)
	}
	fmt.Printf("[STATEMENTS] Converting upload %s as %s\n", header.Filename, format)

	var content string
	switch format {
	case "xlsx", "spreadsheet":
		content, err = ingest.FromSpreadsheet(file, r.FormValue("sheet"))
	default:
		raw, readErr := io.ReadAll(file)
		if readErr != nil {
			http.Error(w, readErr.Error(), http.StatusBadRequest)
			return
		}
		content, err = ingest.Normalize(string(raw), format, nil)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ConvertResponse{Content: content, Format: format})
}

func formatFromName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return "xlsx"
	case ".html", ".htm":
		return "html"
	case ".csv":
		return "csv"
	default:
		return "text"
	}
}
