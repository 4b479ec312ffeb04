// File: kts/handlers/analytics.go
package handlers

import (
	"net/http"
	"strconv"

	"kts/services/analytics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// defaultWindowDays is the dashboard window when ?days= is absent.
const defaultWindowDays = 30

// AnalyticsHandler exposes the public page-view beacon and the admin
// dashboard series.
type AnalyticsHandler struct {
	Analytics analytics.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler instance.
func NewAnalyticsHandler(svc analytics.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{Analytics: svc}
}

// TrackHandler records one page view. It is fire-and-forget from the site's
// perspective, so failures still return 204.
func (h *AnalyticsHandler) TrackHandler(c *gin.Context) {
	var input struct {
		Path      string `json:"path" binding:"required"`
		VisitorID string `json:"visitor_id" binding:"required"`
		Referrer  string `json:"referrer"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Analytics.TrackPageView(input.Path, input.VisitorID, input.Referrer, c.GetHeader("User-Agent")); err != nil {
		getLogger(c).Warn("Failed to record page view", zap.Error(err))
	}
	c.Status(http.StatusNoContent)
}

// DashboardHandler returns the aggregate dashboard summary.
func (h *AnalyticsHandler) DashboardHandler(c *gin.Context) {
	summary, err := h.Analytics.Dashboard(windowDays(c))
	if err != nil {
		getLogger(c).Error("Failed to build dashboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// TrafficHandler returns the daily page-view series.
func (h *AnalyticsHandler) TrafficHandler(c *gin.Context) {
	series, err := h.Analytics.TrafficSeries(windowDays(c))
	if err != nil {
		getLogger(c).Error("Failed to build traffic series", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build traffic series"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": series})
}

// GrowthHandler returns the cumulative visitor growth series.
func (h *AnalyticsHandler) GrowthHandler(c *gin.Context) {
	series, err := h.Analytics.TrafficGrowth(windowDays(c))
	if err != nil {
		getLogger(c).Error("Failed to build growth series", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build growth series"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": series})
}

// AppointmentsSeriesHandler returns the daily bookings series.
func (h *AnalyticsHandler) AppointmentsSeriesHandler(c *gin.Context) {
	series, err := h.Analytics.AppointmentSeries(windowDays(c))
	if err != nil {
		getLogger(c).Error("Failed to build appointment series", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build appointment series"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": series})
}

func windowDays(c *gin.Context) int {
	days, err := strconv.Atoi(c.Query("days"))
	if err != nil || days <= 0 || days > 365 {
		return defaultWindowDays
	}
	return days
}
