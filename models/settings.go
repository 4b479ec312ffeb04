package models

import "time"

// Setting is one key/value pair in the site-settings store. All UI copy,
// feature toggles and contact info live here as strings.
type Setting struct {
	Key       string    `bson:"key" json:"key"`
	Value     string    `bson:"value" json:"value"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Well-known settings keys used by the booking and payment flows.
const (
	SettingWorkingHoursStart = "working_hours_start" // "09:00"
	SettingWorkingHoursEnd   = "working_hours_end"   // "18:00"
	SettingSlotDurationMin   = "slot_duration_minutes"
	SettingTaxPercent        = "tax_percent"
	SettingGatewayProvider   = "payment_gateway_provider"
	SettingGatewayPublicKey  = "payment_gateway_public_key"
	SettingGatewayEnabled    = "payment_gateway_enabled"
	SettingGatewayCurrency   = "payment_gateway_currency"
)
