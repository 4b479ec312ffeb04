package models

import "time"

// PageView is one append-only traffic log row.
type PageView struct {
	ID        string    `bson:"id" json:"id"`
	Path      string    `bson:"path" json:"path"`
	VisitorID string    `bson:"visitor_id" json:"visitor_id"`
	Referrer  string    `bson:"referrer" json:"referrer"`
	UserAgent string    `bson:"user_agent" json:"user_agent"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// DayBucket is one calendar day in a fixed-window series.
type DayBucket struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// GrowthPoint carries the per-day count plus the running total.
type GrowthPoint struct {
	Date       string `json:"date"`
	Count      int    `json:"count"`
	Cumulative int    `json:"cumulative"`
}

// DashboardSummary is the admin dashboard headline block.
type DashboardSummary struct {
	TotalAppointments    int            `json:"total_appointments"`
	AppointmentsByStatus map[string]int `json:"appointments_by_status"`
	CompletionRate       float64        `json:"completion_rate"`
	TotalPageViews       int            `json:"total_page_views"`
	UniqueVisitors       int            `json:"unique_visitors"`
	BounceRate           float64        `json:"bounce_rate"`
	InvoicedTotal        float64        `json:"invoiced_total"`
	DeviceBreakdown      map[string]int `json:"device_breakdown"`
	TopReferrers         map[string]int `json:"top_referrers"`
}
