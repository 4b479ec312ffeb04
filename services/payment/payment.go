// File: kts/services/payment/payment.go
package payment

import (
	"errors"
	"fmt"

	"kts/models"
	"kts/services/settings"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// ErrGatewayDisabled is returned when card payments are switched off in the
// settings store.
var ErrGatewayDisabled = errors.New("payment gateway is disabled")

// PaymentService creates card-deposit intents against the configured gateway.
type PaymentService interface {
	GatewayConfig() (models.GatewayConfig, error)
	CreateIntent(req models.PaymentIntentRequest) (*models.PaymentIntentResponse, error)
}

// StripePaymentService is the Stripe-backed implementation. The secret key
// is set globally from server config at startup.
type StripePaymentService struct {
	Settings settings.SettingsService
}

// GatewayConfig exposes the public gateway configuration to the site.
func (s *StripePaymentService) GatewayConfig() (models.GatewayConfig, error) {
	return s.Settings.GatewayConfig()
}

// CreateIntent creates a PaymentIntent for an appointment deposit.
func (s *StripePaymentService) CreateIntent(req models.PaymentIntentRequest) (*models.PaymentIntentResponse, error) {
	cfg, err := s.Settings.GatewayConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		return nil, ErrGatewayDisabled
	}
	if req.Amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	if req.AppointmentID == "" {
		return nil, errors.New("appointment_id is required")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(req.Amount * 100)),
		Currency: stripe.String(cfg.Currency),
	}
	params.AddMetadata("appointment_id", req.AppointmentID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	return &models.PaymentIntentResponse{
		IntentID:     pi.ID,
		ClientSecret: pi.ClientSecret,
		Currency:     cfg.Currency,
	}, nil
}
