// File: kts/models/appointment.go
package models

import "time"

// Appointment is a booked visit produced by the booking wizard.
// Discount metadata is stored in dedicated fields rather than being encoded
// into the notes text.
type Appointment struct {
	ID            string  `bson:"id" json:"id"`
	ReferenceCode string  `bson:"reference_code" json:"reference_code"`
	CustomerID    string  `bson:"customer_id,omitempty" json:"customer_id,omitempty"`
	ServiceID     string  `bson:"service_id" json:"service_id"`
	ServiceName   string  `bson:"service_name" json:"service_name"`
	CustomerName  string  `bson:"customer_name" json:"customer_name"`
	CustomerEmail string  `bson:"customer_email" json:"customer_email"`
	CustomerPhone string  `bson:"customer_phone" json:"customer_phone"`
	Date          string  `bson:"date" json:"date"` // YYYY-MM-DD
	TimeSlot      string  `bson:"time_slot" json:"time_slot"`
	Status        string  `bson:"status" json:"status"`
	Notes         string  `bson:"notes" json:"notes"`
	CouponCode    string  `bson:"coupon_code,omitempty" json:"coupon_code,omitempty"`
	DiscountPct   float64 `bson:"discount_percent" json:"discount_percent"`
	QuotedPrice   float64 `bson:"quoted_price" json:"quoted_price"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// DeletionRequest is raised when an admin without delete rights asks to
// remove a record; super-admins review it manually.
type DeletionRequest struct {
	ID          string    `bson:"id" json:"id"`
	TargetType  string    `bson:"target_type" json:"target_type"`
	TargetID    string    `bson:"target_id" json:"target_id"`
	RequestedBy string    `bson:"requested_by" json:"requested_by"`
	Reason      string    `bson:"reason" json:"reason"`
	Status      string    `bson:"status" json:"status"`
	ReviewedBy  string    `bson:"reviewed_by,omitempty" json:"reviewed_by,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
