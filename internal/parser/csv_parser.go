package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// ParseCSV ingests a CSV export. The first row must be the header; a
// missing required column fails the whole file.
func ParseCSV(r io.Reader, opts Options) (*Result, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	mapping, err := MapHeaders(rows[0])
	if err != nil {
		return nil, err
	}

	return parseRows(mapping, rows[1:], 2, opts), nil
}

// ParseCSVFile ingests a CSV file from disk.
func ParseCSVFile(path string, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return ParseCSV(f, opts)
}
