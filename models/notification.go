package models

import "time"

// Notification is broadcast to the admin panel (persisted row plus a Redis
// pub/sub event). Delivery de-duplication uses a per-admin last-seen
// watermark, not the notification rows themselves.
type Notification struct {
	ID        string    `bson:"id" json:"id"`
	Type      string    `bson:"type" json:"type"` // e.g. "new_appointment", "deletion_request"
	Title     string    `bson:"title" json:"title"`
	Body      string    `bson:"body" json:"body"`
	TargetID  string    `bson:"target_id,omitempty" json:"target_id,omitempty"`
	SuperOnly bool      `bson:"super_only" json:"super_only"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Notification types.
const (
	NotifNewAppointment  = "new_appointment"
	NotifNewMessage      = "new_message"
	NotifDeletionRequest = "deletion_request"
	NotifReminder        = "appointment_reminder"
)
