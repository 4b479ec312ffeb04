package models

// GatewayConfig is the payment gateway configuration assembled from the
// settings store (secret keys stay in server config, never in settings).
type GatewayConfig struct {
	Provider  string `json:"provider"`
	PublicKey string `json:"public_key"`
	Currency  string `json:"currency"`
	Enabled   bool   `json:"enabled"`
}

// PaymentIntentRequest asks for a card deposit against an appointment.
type PaymentIntentRequest struct {
	AppointmentID string  `json:"appointment_id"`
	Amount        float64 `json:"amount"`
}

// PaymentIntentResponse carries the gateway client secret back to the site.
type PaymentIntentResponse struct {
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret"`
	Currency     string `json:"currency"`
}
