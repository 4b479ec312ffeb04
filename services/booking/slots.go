package booking

import (
	"fmt"
	"time"

	"kts/services/settings"
)

// defaultSlots are the four 3-hour slots the chat widget shipped with; used
// whenever the admin has not configured a working-hours window.
var defaultSlots = []string{"09:00", "12:00", "14:00", "17:00"}

// SlotLabels derives the selectable slot-start labels from the configured
// working-hours window and slot duration. An incomplete or unparseable
// configuration falls back to the default slot list.
func SlotLabels(cfg settings.SlotConfig) []string {
	if cfg.WorkingHoursStart == "" || cfg.WorkingHoursEnd == "" || cfg.SlotDurationMin <= 0 {
		return defaultSlots
	}

	start, err1 := time.Parse("15:04", cfg.WorkingHoursStart)
	end, err2 := time.Parse("15:04", cfg.WorkingHoursEnd)
	if err1 != nil || err2 != nil || !start.Before(end) {
		return defaultSlots
	}

	step := time.Duration(cfg.SlotDurationMin) * time.Minute
	var labels []string
	for t := start; !t.Add(step).After(end); t = t.Add(step) {
		labels = append(labels, t.Format("15:04"))
	}
	if len(labels) == 0 {
		return defaultSlots
	}
	return labels
}

// validSlot reports whether the picked label is in the offered list.
func validSlot(label string, offered []string) bool {
	for _, s := range offered {
		if s == label {
			return true
		}
	}
	return false
}

// validBookingDate rejects dates before today and Sundays (the hard-coded
// non-working day).
func validBookingDate(date string, now time.Time) error {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if d.Before(today) {
		return fmt.Errorf("date %s is in the past", date)
	}
	if d.Weekday() == time.Sunday {
		return fmt.Errorf("bookings are not taken on Sundays")
	}
	return nil
}
