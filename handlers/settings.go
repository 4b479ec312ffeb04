// File: kts/handlers/settings.go
package handlers

import (
	"net/http"

	"kts/services/settings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SettingsHandler exposes the site-settings store.
type SettingsHandler struct {
	Settings settings.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler instance.
func NewSettingsHandler(svc settings.SettingsService) *SettingsHandler {
	return &SettingsHandler{Settings: svc}
}

// GetAllHandler returns every setting as a key/value map.
func (h *SettingsHandler) GetAllHandler(c *gin.Context) {
	all, err := h.Settings.GetAll()
	if err != nil {
		getLogger(c).Error("Failed to load settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": all})
}

// SetHandler writes one or more settings.
func (h *SettingsHandler) SetHandler(c *gin.Context) {
	var input map[string]string
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if len(input) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no settings provided"})
		return
	}
	for key, value := range input {
		if err := h.Settings.Set(key, value); err != nil {
			getLogger(c).Error("Failed to save setting", zap.String("key", key), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save setting " + key})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}
