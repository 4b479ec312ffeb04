package booking

import (
	"testing"
	"time"

	"kts/services/settings"

	"github.com/stretchr/testify/assert"
)

func TestSlotLabels(t *testing.T) {
	tests := []struct {
		name string
		cfg  settings.SlotConfig
		want []string
	}{
		{
			name: "empty config falls back to defaults",
			cfg:  settings.SlotConfig{},
			want: []string{"09:00", "12:00", "14:00", "17:00"},
		},
		{
			name: "two-hour slots across a working day",
			cfg:  settings.SlotConfig{WorkingHoursStart: "09:00", WorkingHoursEnd: "17:00", SlotDurationMin: 120},
			want: []string{"09:00", "11:00", "13:00", "15:00"},
		},
		{
			name: "hour slots in a short window",
			cfg:  settings.SlotConfig{WorkingHoursStart: "10:00", WorkingHoursEnd: "13:00", SlotDurationMin: 60},
			want: []string{"10:00", "11:00", "12:00"},
		},
		{
			name: "slot longer than the window falls back",
			cfg:  settings.SlotConfig{WorkingHoursStart: "09:00", WorkingHoursEnd: "10:00", SlotDurationMin: 120},
			want: []string{"09:00", "12:00", "14:00", "17:00"},
		},
		{
			name: "end before start falls back",
			cfg:  settings.SlotConfig{WorkingHoursStart: "17:00", WorkingHoursEnd: "09:00", SlotDurationMin: 60},
			want: []string{"09:00", "12:00", "14:00", "17:00"},
		},
		{
			name: "unparseable hours fall back",
			cfg:  settings.SlotConfig{WorkingHoursStart: "nine", WorkingHoursEnd: "17:00", SlotDurationMin: 60},
			want: []string{"09:00", "12:00", "14:00", "17:00"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SlotLabels(tt.cfg))
		})
	}
}

func TestValidBookingDate(t *testing.T) {
	// A Thursday.
	now := time.Date(2026, 8, 27, 15, 0, 0, 0, time.UTC)

	assert.NoError(t, validBookingDate("2026-08-27", now), "today is bookable")
	assert.NoError(t, validBookingDate("2026-08-29", now), "Saturday is bookable")
	assert.Error(t, validBookingDate("2026-08-26", now), "yesterday is not")
	assert.Error(t, validBookingDate("2026-08-30", now), "Sunday is not")
	assert.Error(t, validBookingDate("2026/08/29", now), "wrong layout")
}
