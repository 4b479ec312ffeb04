// File: kts/handlers/notification.go
package handlers

import (
	"io"
	"net/http"
	"time"

	"kts/middleware"
	"kts/services/notification"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotificationHandler exposes the admin notification feed.
type NotificationHandler struct {
	Notifications notification.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler instance.
func NewNotificationHandler(svc notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{Notifications: svc}
}

// UnseenHandler returns notifications after the admin's watermark.
func (h *NotificationHandler) UnseenHandler(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if actor == nil || actor.Admin == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	items, err := h.Notifications.Unseen(actor.Admin.ID, actor.Admin.IsSuperAdmin)
	if err != nil {
		getLogger(c).Error("Failed to load notifications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": items})
}

// MarkSeenHandler advances the admin's watermark to now.
func (h *NotificationHandler) MarkSeenHandler(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	if actor == nil || actor.Admin == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	if err := h.Notifications.MarkSeen(actor.Admin.ID, time.Now().UTC()); err != nil {
		getLogger(c).Error("Failed to mark notifications seen", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update watermark"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "seen"})
}

// StreamHandler delivers notifications live over server-sent events, backed
// by the Redis pub/sub channel.
func (h *NotificationHandler) StreamHandler(c *gin.Context) {
	sub := h.Notifications.Subscribe(c.Request.Context())
	defer sub.Close()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	ch := sub.Channel()
	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("notification", msg.Payload)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
