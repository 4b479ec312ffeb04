package analytics

import (
	"time"

	analyticsRepo "kts/database/repository/analytics"
	appointmentRepo "kts/database/repository/appointment"
	invoiceRepo "kts/database/repository/invoice"
	"kts/models"

	"github.com/google/uuid"
)

// AnalyticsService tracks page views and produces the admin dashboard series.
type AnalyticsService interface {
	TrackPageView(path, visitorID, referrer, userAgent string) error
	TrafficSeries(days int) ([]models.DayBucket, error)
	TrafficGrowth(days int) ([]models.GrowthPoint, error)
	AppointmentSeries(days int) ([]models.DayBucket, error)
	Dashboard(days int) (*models.DashboardSummary, error)
}

// DefaultAnalyticsService is the production implementation.
type DefaultAnalyticsService struct {
	Views        analyticsRepo.AnalyticsRepository
	Appointments appointmentRepo.AppointmentRepository
	Invoices     invoiceRepo.InvoiceRepository
	Now          func() time.Time // nil = time.Now
}

func (s *DefaultAnalyticsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// TrackPageView appends one row to the traffic log.
func (s *DefaultAnalyticsService) TrackPageView(path, visitorID, referrer, userAgent string) error {
	if visitorID == "" {
		visitorID = uuid.New().String()
	}
	return s.Views.Insert(&models.PageView{
		ID:        uuid.New().String(),
		Path:      path,
		VisitorID: visitorID,
		Referrer:  referrer,
		UserAgent: userAgent,
	})
}

// TrafficSeries returns page views bucketed per day over the window.
func (s *DefaultAnalyticsService) TrafficSeries(days int) ([]models.DayBucket, error) {
	views, err := s.Views.ListSince(windowStart(s.now(), days))
	if err != nil {
		return nil, err
	}
	return DailyCounts(viewTimes(views), days, s.now()), nil
}

// TrafficGrowth returns the cumulative traffic series, seeded with the
// all-time count before the window.
func (s *DefaultAnalyticsService) TrafficGrowth(days int) ([]models.GrowthPoint, error) {
	now := s.now()
	start := windowStart(now, days)

	views, err := s.Views.ListSince(start)
	if err != nil {
		return nil, err
	}
	series := CumulativeGrowth(viewTimes(views), days, now)

	before, err := s.Views.CountBefore(start)
	if err != nil {
		return nil, err
	}
	for i := range series {
		series[i].Cumulative += int(before)
	}
	return series, nil
}

// AppointmentSeries returns appointments created per day over the window.
func (s *DefaultAnalyticsService) AppointmentSeries(days int) ([]models.DayBucket, error) {
	stamps, err := s.Appointments.CreatedSince(windowStart(s.now(), days))
	if err != nil {
		return nil, err
	}
	return DailyCounts(stamps, days, s.now()), nil
}

// Dashboard assembles the headline numbers for the admin landing screen.
func (s *DefaultAnalyticsService) Dashboard(days int) (*models.DashboardSummary, error) {
	byStatus, err := s.Appointments.CountByStatus()
	if err != nil {
		return nil, err
	}
	total := 0
	for _, n := range byStatus {
		total += n
	}

	views, err := s.Views.ListSince(windowStart(s.now(), days))
	if err != nil {
		return nil, err
	}

	perVisitor := make(map[string]int)
	devices := make(map[string]int)
	referrers := make(map[string]int)
	for _, v := range views {
		perVisitor[v.VisitorID]++
		devices[ClassifyDevice(v.UserAgent)]++
		referrers[ReferrerDomain(v.Referrer)]++
	}
	bounced := 0
	for _, n := range perVisitor {
		if n == 1 {
			bounced++
		}
	}

	invoiced, err := s.Invoices.TotalInvoiced()
	if err != nil {
		return nil, err
	}

	return &models.DashboardSummary{
		TotalAppointments:    total,
		AppointmentsByStatus: byStatus,
		CompletionRate:       Rate(byStatus[models.AppointmentCompleted], total),
		TotalPageViews:       len(views),
		UniqueVisitors:       len(perVisitor),
		BounceRate:           Rate(bounced, len(perVisitor)),
		InvoicedTotal:        invoiced,
		DeviceBreakdown:      devices,
		TopReferrers:         referrers,
	}, nil
}

func viewTimes(views []models.PageView) []time.Time {
	out := make([]time.Time, 0, len(views))
	for _, v := range views {
		out = append(out, v.CreatedAt)
	}
	return out
}
