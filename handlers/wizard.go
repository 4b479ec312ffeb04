// File: kts/handlers/wizard.go
package handlers

import (
	"errors"
	"net/http"

	"kts/models"
	"kts/services/booking"
	"kts/services/coupon"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WizardHandler exposes the chat-widget booking flow.
type WizardHandler struct {
	Wizard booking.WizardService
}

// NewWizardHandler creates a new WizardHandler instance.
func NewWizardHandler(w booking.WizardService) *WizardHandler {
	return &WizardHandler{Wizard: w}
}

// StartHandler opens a new booking session.
func (h *WizardHandler) StartHandler(c *gin.Context) {
	reply, err := h.Wizard.Start()
	if err != nil {
		getLogger(c).Error("Failed to start booking session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
		return
	}
	c.JSON(http.StatusOK, reply)
}

// ChatHandler feeds free text to the widget.
func (h *WizardHandler) ChatHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	reply, err := h.Wizard.Chat(sessionID, input.Text)
	if err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

// ChooseDateHandler records the picked date.
func (h *WizardHandler) ChooseDateHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	reply, err := h.Wizard.ChooseDate(sessionID, input.Date)
	if err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

// ChooseTimeHandler records the picked time slot.
func (h *WizardHandler) ChooseTimeHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input struct {
		TimeSlot string `json:"timeSlot" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	reply, err := h.Wizard.ChooseTime(sessionID, input.TimeSlot)
	if err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

// SubmitDetailsHandler finalizes the booking.
func (h *WizardHandler) SubmitDetailsHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input struct {
		Details    models.BookingDetails `json:"details"`
		CouponCode string                `json:"couponCode"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	reply, err := h.Wizard.SubmitDetails(sessionID, input.Details, input.CouponCode)
	if err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

// ChangeTimeHandler re-enters date selection from the details step. The body
// is optional; when present, the fields typed so far are stashed in the
// session and reused on the next submit.
func (h *WizardHandler) ChangeTimeHandler(c *gin.Context) {
	var input struct {
		Details    models.BookingDetails `json:"details"`
		CouponCode string                `json:"couponCode"`
	}
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
	}
	reply, err := h.Wizard.ChangeTime(c.Param("sessionID"), input.Details, input.CouponCode)
	if err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

// CancelHandler discards the session.
func (h *WizardHandler) CancelHandler(c *gin.Context) {
	if err := h.Wizard.Cancel(c.Param("sessionID")); err != nil {
		h.wizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// wizardError maps the wizard's typed errors to HTTP statuses.
func (h *WizardHandler) wizardError(c *gin.Context, err error) {
	var validation booking.ValidationError
	var state booking.StateError
	var badCoupon coupon.InvalidCouponError
	var exhausted coupon.LimitReachedError
	switch {
	case errors.Is(err, booking.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found or expired"})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "fields": validation.Fields})
	case errors.As(err, &state):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &badCoupon), errors.As(err, &exhausted):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		getLogger(c).Error("Booking wizard failure", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
