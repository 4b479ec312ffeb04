// File: kts/handlers/coupon.go
package handlers

import (
	"net/http"

	"kts/models"
	"kts/services/coupon"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CouponHandler exposes coupon management to the back office and a public
// validity check for the booking widget.
type CouponHandler struct {
	Coupons coupon.CouponService
}

// NewCouponHandler creates a new CouponHandler instance.
func NewCouponHandler(svc coupon.CouponService) *CouponHandler {
	return &CouponHandler{Coupons: svc}
}

// ValidateHandler is the public pre-check used by the widget before submit.
// The authoritative check happens again inside the booking transaction.
func (h *CouponHandler) ValidateHandler(c *gin.Context) {
	var input struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	applied, err := h.Coupons.Validate(input.Code)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"valid": false, "error": err.Error()})
		return
	}
	if applied == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "discount_percent": applied.DiscountPercent})
}

// ListHandler returns all coupons.
func (h *CouponHandler) ListHandler(c *gin.Context) {
	coupons, err := h.Coupons.GetAll()
	if err != nil {
		getLogger(c).Error("Failed to list coupons", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get coupons"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"coupons": coupons})
}

// CreateHandler adds a coupon.
func (h *CouponHandler) CreateHandler(c *gin.Context) {
	var cp models.Coupon
	if err := c.ShouldBindJSON(&cp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Coupons.Create(&cp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, cp)
}

// UpdateHandler updates a coupon.
func (h *CouponHandler) UpdateHandler(c *gin.Context) {
	var cp models.Coupon
	if err := c.ShouldBindJSON(&cp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	cp.ID = c.Param("id")
	if err := h.Coupons.Update(&cp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cp)
}

// DeleteHandler removes a coupon.
func (h *CouponHandler) DeleteHandler(c *gin.Context) {
	if err := h.Coupons.Delete(c.Param("id")); err != nil {
		getLogger(c).Error("Failed to delete coupon", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete coupon"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
