package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var aggNow = time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC)

func day(offset int, hour int) time.Time {
	return time.Date(2026, 8, 28, hour, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func TestDailyCountsZeroFillsTheWholeWindow(t *testing.T) {
	series := DailyCounts(nil, 30, aggNow)

	require.Len(t, series, 30)
	assert.Equal(t, "2026-07-30", series[0].Date)
	assert.Equal(t, "2026-08-28", series[29].Date)
	for _, b := range series {
		assert.Zero(t, b.Count)
	}
}

func TestDailyCountsBucketsAndSkipsOutOfWindowRows(t *testing.T) {
	timestamps := []time.Time{
		day(0, 9), day(0, 12), day(0, 18), // three today
		day(-1, 10),  // one yesterday
		day(-29, 8),  // first day of the window
		day(-30, 8),  // just outside: skipped
		day(-365, 8), // far outside: skipped
	}

	series := DailyCounts(timestamps, 30, aggNow)
	require.Len(t, series, 30)

	assert.Equal(t, 3, series[29].Count)
	assert.Equal(t, 1, series[28].Count)
	assert.Equal(t, 1, series[0].Count)

	total := 0
	for _, b := range series {
		total += b.Count
	}
	assert.Equal(t, 5, total, "out-of-window rows do not count")
}

func TestDailyCountsDegenerateWindows(t *testing.T) {
	assert.Nil(t, DailyCounts([]time.Time{day(0, 9)}, 0, aggNow))
	assert.Nil(t, DailyCounts([]time.Time{day(0, 9)}, -5, aggNow))

	series := DailyCounts([]time.Time{day(0, 9)}, 1, aggNow)
	require.Len(t, series, 1)
	assert.Equal(t, 1, series[0].Count)
}

func TestCumulativeGrowthSeedsAndStaysMonotonic(t *testing.T) {
	timestamps := []time.Time{
		day(-40, 9), day(-35, 9), // before the window: seed only
		day(-5, 9), day(-2, 9), day(0, 9),
	}

	series := CumulativeGrowth(timestamps, 7, aggNow)
	require.Len(t, series, 7)

	// Seeded with the two pre-window rows.
	assert.Equal(t, 2, series[0].Cumulative-series[0].Count)

	prev := 0
	for _, p := range series {
		assert.GreaterOrEqual(t, p.Cumulative, prev, "cumulative never decreases")
		prev = p.Cumulative
	}
	assert.Equal(t, 5, series[6].Cumulative, "final total counts every row")
}

func TestRate(t *testing.T) {
	assert.Zero(t, Rate(5, 0), "zero denominator guards to zero")
	assert.Zero(t, Rate(0, 10))
	assert.InDelta(t, 25.0, Rate(1, 4), 1e-9)
	assert.InDelta(t, 100.0, Rate(4, 4), 1e-9)
}

func TestClassifyDevice(t *testing.T) {
	tests := []struct {
		ua   string
		want string
	}{
		{"Mozilla/5.0 (iPad; CPU OS 16_0 like Mac OS X) Mobile/15E148", "Tablet"},
		{"Mozilla/5.0 (Linux; Android 13; SM-X700 Tablet)", "Tablet"},
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Mobile/15E148", "Mobile"},
		{"Mozilla/5.0 (Linux; Android 14; Pixel 8)", "Mobile"},
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/126.0", "Desktop"},
		{"", "Desktop"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyDevice(tt.ua), "ua %q", tt.ua)
	}
}

func TestReferrerDomain(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"https://www.google.com/search?q=kts", "google.com"},
		{"https://linkedin.com/feed", "linkedin.com"},
		{"http://m.facebook.com/", "m.facebook.com"},
		{"", "Direct"},
		{"   ", "Direct"},
		{"not a url", "Direct"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ReferrerDomain(tt.ref), "referrer %q", tt.ref)
	}
}
