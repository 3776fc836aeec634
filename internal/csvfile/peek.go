// Package csvfile samples local CSV files before they are uploaded.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Sample is the quick look at a CSV file shown before uploading it.
type Sample struct {
	Header   []string
	Rows     [][]string
	RowCount int
}

// Peek reads up to n data rows from the file. It never validates content:
// the server owns CSV semantics, this is display only.
func Peek(path string, n int) (*Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return &Sample{}, nil
	}

	sample := &Sample{}
	body := records
	if looksLikeHeader(records[0]) {
		sample.Header = records[0]
		body = records[1:]
	}
	sample.RowCount = len(body)
	if n > len(body) {
		n = len(body)
	}
	if n > 0 {
		sample.Rows = body[:n]
	}
	return sample, nil
}

// looksLikeHeader treats a first row with no numeric cells past the second
// column as a header.
func looksLikeHeader(row []string) bool {
	if len(row) < 3 {
		return false
	}
	for _, cell := range row[2:] {
		if _, err := strconv.ParseFloat(cell, 64); err == nil {
			return false
		}
	}
	return true
}
