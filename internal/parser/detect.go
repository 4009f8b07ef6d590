package parser

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ParseFile dispatches on file extension and returns the result together
// with the detected format ("csv" or "xlsx").
func ParseFile(path string, opts Options) (*Result, string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		result, err := ParseCSVFile(path, opts)
		return result, "csv", err
	case ".xlsx", ".xlsm":
		result, err := ParseXLSX(path, opts)
		return result, "xlsx", err
	default:
		return nil, "", fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
}
