package parser

import (
	"fmt"
	"strings"
)

// HeaderMapping maps dataset columns to their index in the header row.
type HeaderMapping map[string]int

// MapHeaders matches a header row against the required columns.
// Matching is lenient: case, spaces, hyphens and underscores are
// interchangeable. Returns an error naming every missing column, which is
// fatal for the whole file.
func MapHeaders(headers []string) (HeaderMapping, error) {
	mapping := make(HeaderMapping)

	for idx, h := range headers {
		col := NormalizeColumnName(h)
		if col == "" {
			continue
		}
		for _, want := range RequiredColumns {
			if col == want {
				if _, dup := mapping[want]; !dup {
					mapping[want] = idx
				}
			}
		}
	}

	var missing []string
	for _, want := range RequiredColumns {
		if _, ok := mapping[want]; !ok {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required column(s): %s", strings.Join(missing, ", "))
	}

	return mapping, nil
}

// cell returns the mapped cell of a row, or "" when the row is short.
func (m HeaderMapping) cell(row []string, col string) string {
	idx, ok := m[col]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
