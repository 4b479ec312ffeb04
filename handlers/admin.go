// File: kts/handlers/admin.go
package handlers

import (
	"net/http"

	"kts/middleware"
	"kts/services/admin"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler exposes admin account and permission management. Routes using
// it are gated on the manage-admins permission.
type AdminHandler struct {
	Admins admin.AdminService
}

// NewAdminHandler creates a new AdminHandler instance.
func NewAdminHandler(svc admin.AdminService) *AdminHandler {
	return &AdminHandler{Admins: svc}
}

// ListHandler returns every admin account.
func (h *AdminHandler) ListHandler(c *gin.Context) {
	admins, err := h.Admins.List()
	if err != nil {
		getLogger(c).Error("Failed to list admins", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get admins"})
		return
	}
	// Never leak password or token hashes.
	out := make([]gin.H, 0, len(admins))
	for _, a := range admins {
		out = append(out, gin.H{
			"id":             a.ID,
			"name":           a.Name,
			"email":          a.Email,
			"is_super_admin": a.IsSuperAdmin,
			"created_at":     a.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"admins": out})
}

// CreateHandler registers a new admin account. Only a super-admin may mint
// another super-admin.
func (h *AdminHandler) CreateHandler(c *gin.Context) {
	var input struct {
		Name         string `json:"name" binding:"required"`
		Email        string `json:"email" binding:"required"`
		Password     string `json:"password" binding:"required"`
		IsSuperAdmin bool   `json:"is_super_admin"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	actor := middleware.ActorFrom(c)
	if input.IsSuperAdmin && (actor == nil || actor.Admin == nil || !actor.Admin.IsSuperAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only a super-admin can create super-admins"})
		return
	}
	a, err := h.Admins.Create(input.Name, input.Email, input.Password, input.IsSuperAdmin)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": a.ID, "email": a.Email})
}

// DeleteHandler removes an admin account.
func (h *AdminHandler) DeleteHandler(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if actor != nil && actor.Admin != nil && actor.Admin.ID == c.Param("id") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your own account"})
		return
	}
	if err := h.Admins.Delete(c.Param("id")); err != nil {
		getLogger(c).Error("Failed to delete admin", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete admin"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// SetPermissionsHandler replaces an admin's permission flags.
func (h *AdminHandler) SetPermissionsHandler(c *gin.Context) {
	var input struct {
		Flags map[string]bool `json:"flags" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Admins.SetPermissions(c.Param("id"), input.Flags); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

// GetPermissionsHandler returns an admin's stored permission flags.
func (h *AdminHandler) GetPermissionsHandler(c *gin.Context) {
	actor, err := h.Admins.GetActor(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
		return
	}
	resp := gin.H{"admin_id": actor.Admin.ID, "is_super_admin": actor.Admin.IsSuperAdmin}
	if actor.Permissions != nil {
		resp["flags"] = actor.Permissions.Flags
	}
	c.JSON(http.StatusOK, resp)
}
