// File: kts/services/invoice/invoice.go
package invoice

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	appointmentRepo "kts/database/repository/appointment"
	invoiceRepo "kts/database/repository/invoice"
	"kts/models"
	"kts/services/settings"

	"github.com/google/uuid"
)

// InvoiceService builds invoices from completed appointments and manages
// their lifecycle.
type InvoiceService interface {
	CreateFromAppointment(appointmentID string) (*models.Invoice, error)
	Get(id string) (*models.Invoice, error)
	List() ([]models.Invoice, error)
	UpdateStatus(id, status string) error
}

// DefaultInvoiceService is the production implementation.
type DefaultInvoiceService struct {
	Invoices     invoiceRepo.InvoiceRepository
	Appointments appointmentRepo.AppointmentRepository
	Settings     settings.SettingsService
	Now          func() time.Time // nil = time.Now
}

func (s *DefaultInvoiceService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreateFromAppointment drafts an invoice for a completed appointment. The
// invoice number comes from the fiscal-year counter; a duplicate-number
// insert (counter tampering, manual rows) is retried once with a fresh
// serial before giving up.
func (s *DefaultInvoiceService) CreateFromAppointment(appointmentID string) (*models.Invoice, error) {
	appt, err := s.Appointments.GetByID(appointmentID)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, fmt.Errorf("appointment %s not found", appointmentID)
	}
	if appt.Status != models.AppointmentCompleted {
		return nil, errors.New("only completed appointments can be invoiced")
	}

	taxPct := s.taxPercent()

	// Rate is the undiscounted price; the coupon shows up as a discount line.
	rate := appt.QuotedPrice
	if appt.DiscountPct > 0 && appt.DiscountPct < 100 {
		rate = appt.QuotedPrice / (1 - appt.DiscountPct/100)
	}

	subtotal := rate
	discount := subtotal * appt.DiscountPct / 100
	tax := (subtotal - discount) * taxPct / 100

	inv := &models.Invoice{
		ID:            uuid.New().String(),
		AppointmentID: appt.ID,
		CustomerName:  appt.CustomerName,
		CustomerEmail: appt.CustomerEmail,
		CustomerPhone: appt.CustomerPhone,
		Items: []models.InvoiceItem{{
			Description: appt.ServiceName,
			Quantity:    1,
			Rate:        rate,
			Amount:      rate,
		}},
		Subtotal:    subtotal,
		DiscountPct: appt.DiscountPct,
		Discount:    discount,
		TaxPct:      taxPct,
		Tax:         tax,
		Total:       subtotal - discount + tax,
		Status:      models.InvoiceUnpaid,
	}

	prefix := FiscalPrefix(s.now())
	for attempt := 0; attempt < 2; attempt++ {
		serial, err := s.Invoices.NextSerial(prefix)
		if err != nil {
			return nil, err
		}
		inv.InvoiceNumber = FormatNumber(prefix, serial)

		err = s.Invoices.Create(inv)
		if err == nil {
			return inv, nil
		}
		// Only a duplicate number warrants a fresh serial; anything else
		// would fail again regardless.
		if attempt == 1 || !errors.Is(err, invoiceRepo.ErrDuplicateNumber) {
			return nil, err
		}
	}
	return inv, nil
}

// Get returns one invoice, nil when absent.
func (s *DefaultInvoiceService) Get(id string) (*models.Invoice, error) {
	return s.Invoices.GetByID(id)
}

// List returns all invoices, newest first.
func (s *DefaultInvoiceService) List() ([]models.Invoice, error) {
	return s.Invoices.GetAll()
}

// UpdateStatus moves an invoice between draft/unpaid/paid/void.
func (s *DefaultInvoiceService) UpdateStatus(id, status string) error {
	switch status {
	case models.InvoiceDraft, models.InvoiceUnpaid, models.InvoicePaid, models.InvoiceVoid:
	default:
		return fmt.Errorf("unknown invoice status %q", status)
	}
	return s.Invoices.UpdateStatus(id, status)
}

func (s *DefaultInvoiceService) taxPercent() float64 {
	if s.Settings == nil {
		return 0
	}
	v, err := s.Settings.Get(models.SettingTaxPercent)
	if err != nil || v == "" {
		return 0
	}
	pct, err := strconv.ParseFloat(v, 64)
	if err != nil || pct < 0 {
		return 0
	}
	return pct
}
