package invoice

import (
	"fmt"
	"time"
)

// The fiscal year starts April 1. A February 2024 invoice belongs to FY
// 2023-24; a May 2024 invoice to FY 2024-25.

// FiscalYearStart returns the calendar year the fiscal year containing t
// started in.
func FiscalYearStart(t time.Time) int {
	if t.Month() >= time.April {
		return t.Year()
	}
	return t.Year() - 1
}

// FiscalPrefix returns the invoice-number prefix for the fiscal year
// containing t, e.g. "Inv-24-25/KTS".
func FiscalPrefix(t time.Time) string {
	start := FiscalYearStart(t)
	return fmt.Sprintf("Inv-%02d-%02d/KTS", start%100, (start+1)%100)
}

// FormatNumber renders a full invoice number from a prefix and serial,
// zero-padding the serial to three digits.
func FormatNumber(prefix string, serial int64) string {
	return fmt.Sprintf("%s-%03d", prefix, serial)
}
