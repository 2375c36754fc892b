package ingestion

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseLocaleNumber parses a pt-BR formatted decimal ("1.234,56") into a float64.
//
// Every "." is treated as a thousands separator and dropped, "," becomes the
// decimal point. Anything that still fails to parse yields 0.
func ParseLocaleNumber(s string) float64 {
	v, _ := parseLocaleNumber(s)
	return v
}

func parseLocaleNumber(s string) (float64, bool) {
	normalized := strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return 0, false
	}
	f, _ := d.Float64()
	return f, true
}

// ReformatTimestamp converts "DD/MM/YYYY HH:MM:SS" into "YYYY-MM-DDTHH:MM:SS".
// Input without exactly one space, or whose date part does not have exactly
// three "/"-separated parts, is returned unchanged.
func ReformatTimestamp(s string) string {
	out, _ := reformatTimestamp(s)
	return out
}

func reformatTimestamp(s string) (string, bool) {
	parts := strings.Split(s, " ")
	if len(parts) != 2 {
		return s, false
	}
	date := strings.Split(parts[0], "/")
	if len(date) != 3 {
		return s, false
	}
	return date[2] + "-" + date[1] + "-" + date[0] + "T" + parts[1], true
}
