// File: kts/services/booking/wizard.go
package booking

import (
	"fmt"
	"strings"
	"time"

	appointmentRepo "kts/database/repository/appointment"
	"kts/models"
	"kts/services/catalog"
	"kts/services/coupon"
	"kts/services/settings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier is the slice of the notification service the wizard needs.
type Notifier interface {
	NewAppointment(a *models.Appointment)
}

// MessageSink receives chat input that did not match any intent.
type MessageSink interface {
	SaveChatMessage(text string) error
}

// WizardService drives the chat-widget booking flow:
// chat → date → time → details, then submit resets to chat.
type WizardService interface {
	Start() (*models.WizardReply, error)
	Chat(sessionID, text string) (*models.WizardReply, error)
	ChooseDate(sessionID, date string) (*models.WizardReply, error)
	ChooseTime(sessionID, slot string) (*models.WizardReply, error)
	SubmitDetails(sessionID string, details models.BookingDetails, couponCode string) (*models.WizardReply, error)
	ChangeTime(sessionID string, details models.BookingDetails, couponCode string) (*models.WizardReply, error)
	Cancel(sessionID string) error
}

// DefaultWizardService is the production implementation.
type DefaultWizardService struct {
	Sessions     SessionStore
	Catalog      catalog.CatalogService
	Coupons      coupon.CouponService
	Appointments appointmentRepo.AppointmentRepository
	Settings     settings.SettingsService
	Notify       Notifier
	Messages     MessageSink
	Now          func() time.Time // nil = time.Now
}

func (s *DefaultWizardService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Start opens a fresh session in the chat state.
func (s *DefaultWizardService) Start() (*models.WizardReply, error) {
	session := &models.BookingSession{
		SessionID: uuid.New().String(),
		State:     models.WizardStateChat,
	}
	if err := s.Sessions.Save(session); err != nil {
		return nil, err
	}
	return &models.WizardReply{
		SessionID: session.SessionID,
		State:     session.State,
		Message:   "Hi! I can help you book an appointment or tell you about our services.",
	}, nil
}

// Chat classifies free-text input by substring matching. Booking intent
// advances to the date step; service intent shows the catalog; anything else
// is stored as a contact message and the widget suggests next steps.
func (s *DefaultWizardService) Chat(sessionID, text string) (*models.WizardReply, error) {
	session, err := s.Sessions.Load(sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != models.WizardStateChat {
		return nil, StateError{State: session.State, Op: "chat"}
	}

	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "book", "appointment", "schedule"):
		session.State = models.WizardStateDate
		if err := s.Sessions.Save(session); err != nil {
			return nil, err
		}
		return &models.WizardReply{
			SessionID: sessionID,
			State:     session.State,
			Message:   "Great! Please pick a date. We are closed on Sundays.",
		}, nil

	case containsAny(lower, "service", "price", "offer"):
		services, err := s.Catalog.ListPublic()
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		return &models.WizardReply{
			SessionID: sessionID,
			State:     session.State,
			Message:   "Here is what we offer:",
			Services:  services,
		}, nil

	default:
		s.storeContactMessage(text)
		return &models.WizardReply{
			SessionID: sessionID,
			State:     session.State,
			Message:   "Thanks, we have noted your message. Try \"book an appointment\" or ask about our services.",
		}, nil
	}
}

// ChooseDate validates the picked date and advances to the time step.
func (s *DefaultWizardService) ChooseDate(sessionID, date string) (*models.WizardReply, error) {
	session, err := s.Sessions.Load(sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != models.WizardStateDate {
		return nil, StateError{State: session.State, Op: "choose a date"}
	}
	if err := validBookingDate(date, s.now()); err != nil {
		return nil, ValidationError{Fields: []string{"date"}}
	}

	session.Date = date
	session.State = models.WizardStateTime
	if err := s.Sessions.Save(session); err != nil {
		return nil, err
	}

	slots := s.slotLabels()
	return &models.WizardReply{
		SessionID: sessionID,
		State:     session.State,
		Message:   "Pick a time slot:",
		Slots:     slots,
	}, nil
}

// ChooseTime validates the picked slot and advances to the details step.
func (s *DefaultWizardService) ChooseTime(sessionID, slot string) (*models.WizardReply, error) {
	session, err := s.Sessions.Load(sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != models.WizardStateTime {
		return nil, StateError{State: session.State, Op: "choose a time"}
	}
	if !validSlot(slot, s.slotLabels()) {
		return nil, ValidationError{Fields: []string{"timeSlot"}}
	}

	session.TimeSlot = slot
	session.State = models.WizardStateDetails
	if err := s.Sessions.Save(session); err != nil {
		return nil, err
	}
	return &models.WizardReply{
		SessionID: sessionID,
		State:     session.State,
		Message:   "Almost done. Please share your name, email, phone and the service you need.",
	}, nil
}

// SubmitDetails finalizes the booking: it validates the contact fields,
// applies the coupon, writes exactly one pending appointment and (when a
// coupon was used) exactly one usage increment, then resets to chat.
func (s *DefaultWizardService) SubmitDetails(sessionID string, details models.BookingDetails, couponCode string) (*models.WizardReply, error) {
	session, err := s.Sessions.Load(sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != models.WizardStateDetails {
		return nil, StateError{State: session.State, Op: "submit details"}
	}

	// A bare submit after "change time" falls back to what the session
	// stashed, so the user does not retype the form.
	if details == (models.BookingDetails{}) {
		details = session.Details
	}
	if couponCode == "" {
		couponCode = session.CouponCode
	}

	var missing []string
	if strings.TrimSpace(details.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(details.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(details.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(details.ServiceID) == "" {
		missing = append(missing, "serviceId")
	}
	if len(missing) > 0 {
		return nil, ValidationError{Fields: missing}
	}

	svc, err := s.Catalog.Get(details.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load service: %w", err)
	}
	if svc == nil || !svc.IsActive {
		return nil, ValidationError{Fields: []string{"serviceId"}}
	}

	applied, err := s.Coupons.Validate(couponCode)
	if err != nil {
		return nil, err
	}

	var price float64
	if svc.Price != nil {
		price = coupon.DiscountedPrice(*svc.Price, applied)
	}

	appt := &models.Appointment{
		ID:            uuid.New().String(),
		ReferenceCode: newReferenceCode(),
		ServiceID:     svc.ID,
		ServiceName:   svc.Name,
		CustomerName:  details.Name,
		CustomerEmail: details.Email,
		CustomerPhone: details.Phone,
		Date:          session.Date,
		TimeSlot:      session.TimeSlot,
		Status:        models.AppointmentPending,
		Notes:         details.Notes,
		QuotedPrice:   price,
	}
	if applied != nil {
		appt.CouponCode = applied.Code
		appt.DiscountPct = applied.DiscountPercent
	}

	if err := s.Appointments.Create(appt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	// The usage increment happens only after the appointment write succeeded.
	if applied != nil {
		if err := s.Coupons.Redeem(applied.Code); err != nil {
			zap.L().Warn("coupon redemption failed after booking",
				zap.String("coupon", applied.Code),
				zap.String("appointment", appt.ID),
				zap.Error(err))
		}
	}

	if s.Notify != nil {
		s.Notify.NewAppointment(appt)
	}

	if err := s.Sessions.Delete(sessionID); err != nil {
		zap.L().Warn("failed to clear booking session", zap.Error(err))
	}

	return &models.WizardReply{
		SessionID:   sessionID,
		State:       models.WizardStateChat,
		Message:     confirmationMessage(appt),
		Appointment: appt,
	}, nil
}

// ChangeTime re-enters the date step from details, stashing any contact
// fields and coupon code already entered so a later submit can reuse them.
// This is the flow's only non-linear transition.
func (s *DefaultWizardService) ChangeTime(sessionID string, details models.BookingDetails, couponCode string) (*models.WizardReply, error) {
	session, err := s.Sessions.Load(sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != models.WizardStateDetails {
		return nil, StateError{State: session.State, Op: "change time"}
	}

	if details != (models.BookingDetails{}) {
		session.Details = details
	}
	if couponCode != "" {
		session.CouponCode = couponCode
	}
	session.State = models.WizardStateDate
	if err := s.Sessions.Save(session); err != nil {
		return nil, err
	}
	return &models.WizardReply{
		SessionID: sessionID,
		State:     session.State,
		Message:   "Sure, pick a new date. We are closed on Sundays.",
	}, nil
}

// Cancel discards the session from any state.
func (s *DefaultWizardService) Cancel(sessionID string) error {
	return s.Sessions.Delete(sessionID)
}

func (s *DefaultWizardService) slotLabels() []string {
	cfg, err := s.Settings.SlotConfig()
	if err != nil {
		zap.L().Warn("failed to load slot config, using defaults", zap.Error(err))
		return SlotLabels(settings.SlotConfig{})
	}
	return SlotLabels(cfg)
}

func (s *DefaultWizardService) storeContactMessage(text string) {
	if s.Messages == nil || strings.TrimSpace(text) == "" {
		return
	}
	// Best effort: a failed write must not break the conversation.
	if err := s.Messages.SaveChatMessage(text); err != nil {
		zap.L().Warn("failed to store chat message", zap.Error(err))
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func newReferenceCode() string {
	return "KTS-" + strings.ToUpper(uuid.New().String()[:8])
}

func confirmationMessage(a *models.Appointment) string {
	msg := fmt.Sprintf("Booked! %s on %s at %s. Your reference is %s.",
		a.ServiceName, a.Date, a.TimeSlot, a.ReferenceCode)
	if a.CouponCode != "" {
		msg += fmt.Sprintf(" Coupon %s applied (%.0f%% off).", a.CouponCode, a.DiscountPct)
	}
	return msg
}
