// File: kts/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"kts/middleware"
	"kts/services/admin"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exposes admin login and session endpoints.
type AuthHandler struct {
	Admins admin.AdminService
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(svc admin.AdminService) *AuthHandler {
	return &AuthHandler{Admins: svc}
}

// LoginHandler authenticates an admin and issues a JWT.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	a, token, err := h.Admins.Authenticate(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, admin.ErrBadCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		getLogger(c).Error("Login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"admin": gin.H{
			"id":             a.ID,
			"name":           a.Name,
			"email":          a.Email,
			"is_super_admin": a.IsSuperAdmin,
		},
	})
}

// MeHandler returns the authenticated admin and their effective permissions.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if actor == nil || actor.Admin == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	resp := gin.H{
		"id":             actor.Admin.ID,
		"name":           actor.Admin.Name,
		"email":          actor.Admin.Email,
		"is_super_admin": actor.Admin.IsSuperAdmin,
	}
	if actor.Permissions != nil {
		resp["permissions"] = actor.Permissions.Flags
	}
	c.JSON(http.StatusOK, resp)
}

// ChangePasswordHandler lets the authenticated admin set a new password.
func (h *AuthHandler) ChangePasswordHandler(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if actor == nil || actor.Admin == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	var input struct {
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Admins.UpdatePassword(actor.Admin.ID, input.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
