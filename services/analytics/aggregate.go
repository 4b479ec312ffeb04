// File: kts/services/analytics/aggregate.go
package analytics

import (
	"time"

	"kts/models"
)

const dayKey = "2006-01-02"

// windowStart returns midnight of the first day in an N-day window ending
// today (inclusive).
func windowStart(now time.Time, days int) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, -(days - 1))
}

// DailyCounts buckets timestamps into one entry per calendar day over the
// last N days. Missing days are zero-filled so the series always has exactly
// N entries; rows outside the window are skipped, not an error.
func DailyCounts(timestamps []time.Time, days int, now time.Time) []models.DayBucket {
	if days <= 0 {
		return nil
	}
	start := windowStart(now, days)

	counts := make(map[string]int, days)
	for _, ts := range timestamps {
		if ts.Before(start) || !ts.Before(start.AddDate(0, 0, days)) {
			continue
		}
		counts[ts.Format(dayKey)]++
	}

	series := make([]models.DayBucket, 0, days)
	for i := 0; i < days; i++ {
		key := start.AddDate(0, 0, i).Format(dayKey)
		series = append(series, models.DayBucket{Date: key, Count: counts[key]})
	}
	return series
}

// CumulativeGrowth produces the running-total variant: the total is seeded
// with the count of rows dated strictly before the window start, then each
// day's bucket is added in chronological order.
func CumulativeGrowth(timestamps []time.Time, days int, now time.Time) []models.GrowthPoint {
	if days <= 0 {
		return nil
	}
	start := windowStart(now, days)

	seed := 0
	for _, ts := range timestamps {
		if ts.Before(start) {
			seed++
		}
	}

	daily := DailyCounts(timestamps, days, now)
	series := make([]models.GrowthPoint, 0, days)
	running := seed
	for _, b := range daily {
		running += b.Count
		series = append(series, models.GrowthPoint{Date: b.Date, Count: b.Count, Cumulative: running})
	}
	return series
}

// Rate returns part/whole as a percentage, guarding the zero denominator.
func Rate(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
