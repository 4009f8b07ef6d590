package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var spaceRe = regexp.MustCompile(`\s+`)

// NormalizeColumnName lowercases a header cell and collapses separators so
// "Tasks Assigned", "tasks_assigned" and "Tasks_Assigned\n" all map alike.
func NormalizeColumnName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "\uFEFF", "") // BOM on first header cell
	name = strings.ReplaceAll(name, "\n", " ")
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.ReplaceAll(name, "\t", " ")
	name = strings.ReplaceAll(name, "-", " ")
	name = spaceRe.ReplaceAllString(name, "_")
	return strings.ReplaceAll(name, " ", "_")
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"01/02/2006",
	"2006.01.02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseDateFlexible tries the date layouts seen in operations exports.
// Returns the zero time when nothing matches.
func ParseDateFlexible(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
	}
	return time.Time{}
}

// ParseFloat parses a numeric cell, tolerating thousands separators.
func ParseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	return strconv.ParseFloat(s, 64)
}

// ParseInt parses an integer cell. Spreadsheet exports sometimes render
// integers as "12.0", so a float that is a whole number is accepted.
func ParseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	n := int(f)
	if float64(n) != f {
		return 0, strconv.ErrSyntax
	}
	return n, nil
}
