// File: kts/handlers/payment.go
package handlers

import (
	"errors"
	"net/http"

	"kts/models"
	"kts/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes the gateway config and deposit intents.
type PaymentHandler struct {
	Payments payment.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler instance.
func NewPaymentHandler(svc payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Payments: svc}
}

// GatewayConfigHandler returns the public gateway configuration so the site
// can initialize its payment widget. Secret keys never leave the server.
func (h *PaymentHandler) GatewayConfigHandler(c *gin.Context) {
	cfg, err := h.Payments.GatewayConfig()
	if err != nil {
		getLogger(c).Error("Failed to load gateway config", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get gateway config"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// CreateIntentHandler creates a card deposit intent for an appointment.
func (h *PaymentHandler) CreateIntentHandler(c *gin.Context) {
	var req models.PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	resp, err := h.Payments.CreateIntent(req)
	if err != nil {
		if errors.Is(err, payment.ErrGatewayDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Online payments are disabled"})
			return
		}
		getLogger(c).Error("Failed to create payment intent",
			zap.String("appointment", req.AppointmentID), zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}
