package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readEarningsTable parses an uploaded file into rows, header first.
// The format is chosen by extension; files without one are read as CSV.
func readEarningsTable(fileName string, data []byte) ([][]string, error) {
	switch ext := strings.ToLower(filepath.Ext(fileName)); ext {
	case ".csv", ".txt", "":
		r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
		r.FieldsPerRecord = -1
		r.TrimLeadingSpace = true
		r.LazyQuotes = true
		rows, err := r.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("malformed csv: %w", err)
		}
		return rows, nil
	case ".xlsx":
		f, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("malformed xlsx: %w", err)
		}
		defer f.Close()
		sheet := f.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("xlsx has no sheets")
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("malformed xlsx sheet %q: %w", sheet, err)
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}
}

// cell returns the trimmed value at idx, or "" when the row is short.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// isBlankRow reports rows with no content at all, typically trailing lines.
func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
