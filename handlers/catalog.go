// File: kts/handlers/catalog.go
package handlers

import (
	"net/http"

	"kts/models"
	"kts/services/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler exposes the services catalog: a public read surface for the
// site and a CRUD surface for the back office.
type CatalogHandler struct {
	Catalog catalog.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler instance.
func NewCatalogHandler(svc catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{Catalog: svc}
}

// ListPublicHandler returns only active services for the marketing site.
func (h *CatalogHandler) ListPublicHandler(c *gin.Context) {
	services, err := h.Catalog.ListPublic()
	if err != nil {
		getLogger(c).Error("Failed to list services", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get services"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// ListAllHandler returns every service, hidden ones included.
func (h *CatalogHandler) ListAllHandler(c *gin.Context) {
	services, err := h.Catalog.ListAll()
	if err != nil {
		getLogger(c).Error("Failed to list services", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get services"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// GetHandler returns one service by id.
func (h *CatalogHandler) GetHandler(c *gin.Context) {
	svc, err := h.Catalog.Get(c.Param("id"))
	if err != nil {
		getLogger(c).Error("Failed to get service", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get service"})
		return
	}
	if svc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}
	c.JSON(http.StatusOK, svc)
}

// CreateHandler adds a service to the catalog.
func (h *CatalogHandler) CreateHandler(c *gin.Context) {
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := h.Catalog.Create(&svc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, svc)
}

// UpdateHandler updates a service.
func (h *CatalogHandler) UpdateHandler(c *gin.Context) {
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	svc.ID = c.Param("id")
	if err := h.Catalog.Update(&svc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, svc)
}

// DeleteHandler removes a service.
func (h *CatalogHandler) DeleteHandler(c *gin.Context) {
	if err := h.Catalog.Delete(c.Param("id")); err != nil {
		getLogger(c).Error("Failed to delete service", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete service"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
