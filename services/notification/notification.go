// File: kts/services/notification/notification.go
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	notificationRepo "kts/database/repository/notification"
	"kts/models"
	"kts/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// channel is the Redis pub/sub channel the admin panel stream listens on.
const channel = "kts:notifications"

const watermarkKeyPrefix = "notif:lastseen:"

// NotificationService persists notifications, broadcasts them over Redis
// pub/sub, and tracks a per-admin last-seen watermark so reconnecting
// clients only receive what they have not yet acknowledged.
type NotificationService interface {
	NewAppointment(a *models.Appointment)
	NewMessage(m *models.ContactMessage)
	DeletionRequested(req *models.DeletionRequest)
	Reminder(a *models.Appointment)

	// Unseen returns notifications after the admin's watermark.
	Unseen(adminID string, isSuper bool) ([]models.Notification, error)
	// MarkSeen advances the admin's watermark.
	MarkSeen(adminID string, seenAt time.Time) error
	// Subscribe returns a pub/sub subscription for live delivery.
	Subscribe(ctx context.Context) *redis.PubSub
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo notificationRepo.NotificationRepository
}

// NewAppointment broadcasts the booking-created event.
func (s *DefaultNotificationService) NewAppointment(a *models.Appointment) {
	s.publish(&models.Notification{
		ID:       uuid.New().String(),
		Type:     models.NotifNewAppointment,
		Title:    "New appointment",
		Body:     fmt.Sprintf("%s booked %s for %s %s", a.CustomerName, a.ServiceName, a.Date, a.TimeSlot),
		TargetID: a.ID,
	})
}

// NewMessage broadcasts a contact-message event.
func (s *DefaultNotificationService) NewMessage(m *models.ContactMessage) {
	s.publish(&models.Notification{
		ID:       uuid.New().String(),
		Type:     models.NotifNewMessage,
		Title:    "New message",
		Body:     m.Message,
		TargetID: m.ID,
	})
}

// DeletionRequested notifies super-admins of a pending deletion review.
func (s *DefaultNotificationService) DeletionRequested(req *models.DeletionRequest) {
	s.publish(&models.Notification{
		ID:        uuid.New().String(),
		Type:      models.NotifDeletionRequest,
		Title:     "Deletion requested",
		Body:      fmt.Sprintf("Admin %s asked to delete %s %s: %s", req.RequestedBy, req.TargetType, req.TargetID, req.Reason),
		TargetID:  req.ID,
		SuperOnly: true,
	})
}

// Reminder broadcasts an upcoming-appointment reminder.
func (s *DefaultNotificationService) Reminder(a *models.Appointment) {
	s.publish(&models.Notification{
		ID:       uuid.New().String(),
		Type:     models.NotifReminder,
		Title:    "Upcoming appointment",
		Body:     fmt.Sprintf("%s with %s on %s %s", a.ServiceName, a.CustomerName, a.Date, a.TimeSlot),
		TargetID: a.ID,
	})
}

// publish persists the row first, then broadcasts; a pub/sub failure is
// logged, not surfaced, since the row remains discoverable via Unseen.
func (s *DefaultNotificationService) publish(n *models.Notification) {
	if err := s.Repo.Create(n); err != nil {
		zap.L().Error("failed to persist notification", zap.Error(err))
		return
	}

	data, err := json.Marshal(n)
	if err != nil {
		zap.L().Error("failed to marshal notification", zap.Error(err))
		return
	}
	ctx := context.Background()
	if err := utils.GetCacheClient().Publish(ctx, channel, data).Err(); err != nil {
		zap.L().Warn("failed to broadcast notification", zap.Error(err))
	}
}

// Unseen lists notifications created after the admin's watermark.
func (s *DefaultNotificationService) Unseen(adminID string, isSuper bool) ([]models.Notification, error) {
	ctx := context.Background()
	after := time.Time{}
	if v, err := utils.GetCacheClient().Get(ctx, watermarkKeyPrefix+adminID).Result(); err == nil {
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			after = t
		}
	}
	return s.Repo.ListSince(after, isSuper)
}

// MarkSeen advances the admin's watermark to seenAt.
func (s *DefaultNotificationService) MarkSeen(adminID string, seenAt time.Time) error {
	ctx := context.Background()
	err := utils.GetCacheClient().Set(ctx, watermarkKeyPrefix+adminID, seenAt.Format(time.RFC3339Nano), 0).Err()
	if err != nil {
		return fmt.Errorf("failed to store watermark: %w", err)
	}
	return nil
}

// Subscribe opens the live notification channel.
func (s *DefaultNotificationService) Subscribe(ctx context.Context) *redis.PubSub {
	return utils.GetCacheClient().Subscribe(ctx, channel)
}
