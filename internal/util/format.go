package util

import "fmt"

// FormatPercent renders a fraction as a percentage, "no data" for nil.
func FormatPercent(rate *float64) string {
	if rate == nil {
		return "no data"
	}
	return fmt.Sprintf("%.2f%%", *rate*100)
}
