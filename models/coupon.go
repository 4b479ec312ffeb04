package models

import "time"

// Coupon is a percent-off discount code. Codes are stored upper-cased and
// looked up case-insensitively by convention.
type Coupon struct {
	ID              string    `bson:"id" json:"id"`
	Code            string    `bson:"code" json:"code"`
	Description     string    `bson:"description" json:"description"`
	DiscountPercent float64   `bson:"discount_percent" json:"discount_percent"` // 0..100
	ValidFrom       time.Time `bson:"valid_from" json:"valid_from"`
	ValidUntil      time.Time `bson:"valid_until" json:"valid_until"`
	IsActive        bool      `bson:"is_active" json:"is_active"`
	MaxUses         *int64    `bson:"max_uses" json:"max_uses"` // nil = unlimited
	CurrentUses     int64     `bson:"current_uses" json:"current_uses"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// Usable reports whether the coupon can still be applied at time now.
func (c *Coupon) Usable(now time.Time) bool {
	if !c.IsActive || c.ValidUntil.Before(now) {
		return false
	}
	if c.MaxUses != nil && c.CurrentUses >= *c.MaxUses {
		return false
	}
	return true
}
