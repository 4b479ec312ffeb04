// File: kts/models/booking_session.go
package models

// Booking wizard states. The flow is linear: chat → date → time → details,
// then a submit resets back to chat. "Change time" from details re-enters
// date and is the only non-linear transition.
const (
	WizardStateChat    = "chat"
	WizardStateDate    = "date"
	WizardStateTime    = "time"
	WizardStateDetails = "details"
)

// BookingDetails are the contact fields collected in the details step.
type BookingDetails struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	ServiceID string `json:"serviceId"`
	Notes     string `json:"notes,omitempty"`
}

// BookingSession holds wizard context between steps; it lives in Redis for
// the lifetime of the conversation. Details and CouponCode are stashed when
// the user backs out of the details step, so re-picking a slot does not
// lose what was already typed.
type BookingSession struct {
	SessionID  string         `json:"sessionId"`
	State      string         `json:"state"`
	Date       string         `json:"date,omitempty"` // YYYY-MM-DD
	TimeSlot   string         `json:"timeSlot,omitempty"`
	Details    BookingDetails `json:"details"`
	CouponCode string         `json:"couponCode,omitempty"`
}

// WizardReply is what the chat widget renders after each step.
type WizardReply struct {
	SessionID   string       `json:"sessionId"`
	State       string       `json:"state"`
	Message     string       `json:"message"`
	Services    []Service    `json:"services,omitempty"`
	Slots       []string     `json:"slots,omitempty"`
	Appointment *Appointment `json:"appointment,omitempty"`
}
