// File: kts/handlers/invoice.go
package handlers

import (
	"net/http"

	"kts/services/invoice"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InvoiceHandler exposes invoice generation and management.
type InvoiceHandler struct {
	Invoices invoice.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler instance.
func NewInvoiceHandler(svc invoice.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{Invoices: svc}
}

// CreateHandler generates an invoice for a completed appointment.
func (h *InvoiceHandler) CreateHandler(c *gin.Context) {
	var input struct {
		AppointmentID string `json:"appointment_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	inv, err := h.Invoices.CreateFromAppointment(input.AppointmentID)
	if err != nil {
		getLogger(c).Error("Failed to create invoice",
			zap.String("appointment", input.AppointmentID), zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, inv)
}

// GetHandler returns one invoice by id.
func (h *InvoiceHandler) GetHandler(c *gin.Context) {
	inv, err := h.Invoices.Get(c.Param("id"))
	if err != nil {
		getLogger(c).Error("Failed to get invoice", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get invoice"})
		return
	}
	if inv == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}
	c.JSON(http.StatusOK, inv)
}

// ListHandler returns all invoices, newest first.
func (h *InvoiceHandler) ListHandler(c *gin.Context) {
	invoices, err := h.Invoices.List()
	if err != nil {
		getLogger(c).Error("Failed to list invoices", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get invoices"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

// UpdateStatusHandler marks an invoice paid or void.
func (h *InvoiceHandler) UpdateStatusHandler(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Invoices.UpdateStatus(c.Param("id"), input.Status); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": input.Status})
}
