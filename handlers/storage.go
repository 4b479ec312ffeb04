// File: kts/handlers/storage.go
package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"kts/services/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StorageHandler handles image uploads for site content.
type StorageHandler struct {
	StorageSvc storage.StorageService
}

// NewStorageHandler creates a new StorageHandler instance.
func NewStorageHandler(svc storage.StorageService) *StorageHandler {
	return &StorageHandler{StorageSvc: svc}
}

// allowedBuckets defines permitted destination folders for uploads.
var allowedBuckets = map[string]bool{
	"team":         true,
	"blog":         true,
	"services":     true,
	"testimonials": true,
}

// UploadFileHandler stores an uploaded image and returns its URL.
func (h *StorageHandler) UploadFileHandler(c *gin.Context) {
	bucket := c.Param("bucket")
	if !allowedBuckets[bucket] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bucket; allowed values are 'team', 'blog', 'services' and 'testimonials'"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "detail": err.Error()})
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), filepath.Base(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save uploaded file", "detail": err.Error()})
		return
	}
	defer os.Remove(tempFilePath)

	publicID, err := h.StorageSvc.UploadFile(c.Request.Context(), tempFilePath, bucket)
	if err != nil {
		getLogger(c).Error("Upload failed", zap.String("bucket", bucket), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed", "detail": err.Error()})
		return
	}

	url, err := h.StorageSvc.GetDownloadURL(c.Request.Context(), "image", publicID, 24*time.Hour)
	if err != nil {
		getLogger(c).Error("Failed to build download URL", zap.String("public_id", publicID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"public_id": publicID, "url": url})
}
