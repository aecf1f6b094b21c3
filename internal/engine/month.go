package engine

import (
	"strings"
	"time"
)

// MonthLayout renders the month bucket label, e.g. "January 2024".
const MonthLayout = "January 2006"

var saleDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// parseSaleDate reads DateOfSale in any of the layouts the product API has
// been seen to emit. Dates without a zone are taken as UTC; dates with an
// offset keep their wall clock so the month is the one written.
func parseSaleDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range saleDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MonthLabel returns the bucket label for a sale date, or false when the
// date is missing or unparseable.
func MonthLabel(dateOfSale string) (string, bool) {
	t, ok := parseSaleDate(dateOfSale)
	if !ok {
		return "", false
	}
	return t.Format(MonthLayout), true
}
