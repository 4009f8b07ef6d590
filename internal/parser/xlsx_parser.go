package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX ingests an XLSX workbook. The first sheet whose header row
// maps every required column is used; the rest are ignored.
func ParseXLSX(path string, opts Options) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var lastErr error
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil || len(rows) == 0 {
			continue
		}

		mapping, err := MapHeaders(rows[0])
		if err != nil {
			lastErr = fmt.Errorf("sheet %q: %w", sheetName, err)
			continue
		}

		return parseRows(mapping, rows[1:], 2, opts), nil
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("no sheet with the required columns")
}
