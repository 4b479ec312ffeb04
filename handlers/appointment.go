// File: kts/handlers/appointment.go
package handlers

import (
	"errors"
	"net/http"

	"kts/middleware"
	"kts/services/appointment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler exposes appointment management to the back office plus
// the guest self-service cancel endpoint.
type AppointmentHandler struct {
	Appointments appointment.AppointmentService
}

// NewAppointmentHandler creates a new AppointmentHandler instance.
func NewAppointmentHandler(svc appointment.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{Appointments: svc}
}

// ListHandler returns appointments, optionally filtered by ?status=.
func (h *AppointmentHandler) ListHandler(c *gin.Context) {
	appts, err := h.Appointments.List(c.Query("status"))
	if err != nil {
		getLogger(c).Error("Failed to list appointments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get appointments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// GetHandler returns one appointment by id.
func (h *AppointmentHandler) GetHandler(c *gin.Context) {
	appt, err := h.Appointments.Get(c.Param("id"))
	if err != nil {
		getLogger(c).Error("Failed to get appointment", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get appointment"})
		return
	}
	if appt == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}
	c.JSON(http.StatusOK, appt)
}

// TransitionHandler moves an appointment to a new lifecycle status.
func (h *AppointmentHandler) TransitionHandler(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	actor := middleware.ActorFrom(c)
	if err := h.Appointments.Transition(actor, c.Param("id"), input.Status); err != nil {
		if errors.Is(err, appointment.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
			return
		}
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": input.Status})
}

// DeleteHandler deletes an appointment outright when the actor may, and
// otherwise files a deletion request for super-admin review.
func (h *AppointmentHandler) DeleteHandler(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	// The body is optional; a reason only matters for the request path.
	_ = c.ShouldBindJSON(&input)

	actor := middleware.ActorFrom(c)
	requested, err := h.Appointments.Delete(actor, c.Param("id"), input.Reason)
	if err != nil {
		getLogger(c).Error("Failed to delete appointment", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete appointment"})
		return
	}
	if requested {
		c.JSON(http.StatusAccepted, gin.H{"status": "deletion_requested"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ListDeletionRequestsHandler returns the review queue, optionally filtered
// by ?status=.
func (h *AppointmentHandler) ListDeletionRequestsHandler(c *gin.Context) {
	reqs, err := h.Appointments.ListDeletionRequests(c.Query("status"))
	if err != nil {
		getLogger(c).Error("Failed to list deletion requests", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get deletion requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": reqs})
}

// ReviewDeletionRequestHandler approves or rejects a pending request.
func (h *AppointmentHandler) ReviewDeletionRequestHandler(c *gin.Context) {
	var input struct {
		Approve bool `json:"approve"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	actor := middleware.ActorFrom(c)
	if err := h.Appointments.ReviewDeletionRequest(actor, c.Param("id"), input.Approve); err != nil {
		if errors.Is(err, appointment.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
			return
		}
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reviewed"})
}

// CancelByReferenceHandler is the public self-service cancel: the guest
// supplies the reference code and the email used to book.
func (h *AppointmentHandler) CancelByReferenceHandler(c *gin.Context) {
	var input struct {
		Reference string `json:"reference" binding:"required"`
		Email     string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Appointments.CancelByReference(input.Reference, input.Email); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
