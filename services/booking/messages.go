package booking

import (
	contentRepo "kts/database/repository/content"
	"kts/models"

	"github.com/google/uuid"
)

// MessageNotifier is the slice of the notification service the sink needs.
type MessageNotifier interface {
	NewMessage(m *models.ContactMessage)
}

// ContentMessageSink stores unmatched chat input as contact messages and
// raises the same new-message notification the contact form does.
type ContentMessageSink struct {
	Repo   contentRepo.ContentRepository
	Notify MessageNotifier
}

func (s *ContentMessageSink) SaveChatMessage(text string) error {
	m := &models.ContactMessage{
		ID:      uuid.New().String(),
		Message: text,
		Source:  "chat",
	}
	if err := s.Repo.CreateMessage(m); err != nil {
		return err
	}
	if s.Notify != nil {
		s.Notify.NewMessage(m)
	}
	return nil
}
