package invoice

import (
	"errors"
	"fmt"
	"testing"
	"time"

	invoiceRepo "kts/database/repository/invoice"
	"kts/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvoiceRepo struct {
	serials map[string]int64
	created []*models.Invoice
	failAt  int   // fail the Nth Create call (1-based); 0 = never
	failErr error // error for the failing call; nil = duplicate number
	calls   int
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{serials: map[string]int64{}}
}

func (f *fakeInvoiceRepo) Create(inv *models.Invoice) error {
	f.calls++
	if f.failAt == f.calls {
		if f.failErr != nil {
			return f.failErr
		}
		return fmt.Errorf("invoice number %s: %w", inv.InvoiceNumber, invoiceRepo.ErrDuplicateNumber)
	}
	copied := *inv
	f.created = append(f.created, &copied)
	return nil
}

func (f *fakeInvoiceRepo) GetByID(string) (*models.Invoice, error) { return nil, nil }
func (f *fakeInvoiceRepo) GetAll() ([]models.Invoice, error)       { return nil, nil }
func (f *fakeInvoiceRepo) UpdateStatus(string, string) error       { return nil }
func (f *fakeInvoiceRepo) TotalInvoiced() (float64, error)         { return 0, nil }

func (f *fakeInvoiceRepo) NextSerial(prefix string) (int64, error) {
	f.serials[prefix]++
	return f.serials[prefix], nil
}

type fakeAppointments struct {
	appointment *models.Appointment
}

func (f *fakeAppointments) GetByID(string) (*models.Appointment, error) {
	return f.appointment, nil
}

func (f *fakeAppointments) Create(*models.Appointment) error                   { return nil }
func (f *fakeAppointments) GetByReference(string) (*models.Appointment, error) { return nil, nil }
func (f *fakeAppointments) GetAll(string) ([]models.Appointment, error)        { return nil, nil }
func (f *fakeAppointments) UpdateStatus(string, string) error                  { return nil }
func (f *fakeAppointments) Delete(string) error                                { return nil }
func (f *fakeAppointments) CountByStatus() (map[string]int, error)             { return nil, nil }
func (f *fakeAppointments) CreatedSince(time.Time) ([]time.Time, error)        { return nil, nil }
func (f *fakeAppointments) CreateDeletionRequest(*models.DeletionRequest) error {
	return nil
}
func (f *fakeAppointments) GetDeletionRequest(string) (*models.DeletionRequest, error) {
	return nil, nil
}
func (f *fakeAppointments) ListDeletionRequests(string) ([]models.DeletionRequest, error) {
	return nil, nil
}
func (f *fakeAppointments) UpdateDeletionRequest(*models.DeletionRequest) error { return nil }

var invoiceNow = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

func completedAppointment() *models.Appointment {
	return &models.Appointment{
		ID:            "ap-1",
		ServiceName:   "Web Design",
		CustomerName:  "Asha Rao",
		CustomerEmail: "asha@example.com",
		Status:        models.AppointmentCompleted,
		QuotedPrice:   160,
		CouponCode:    "SAVE20",
		DiscountPct:   20,
	}
}

func newInvoiceService(repo *fakeInvoiceRepo, appt *models.Appointment) *DefaultInvoiceService {
	return &DefaultInvoiceService{
		Invoices:     repo,
		Appointments: &fakeAppointments{appointment: appt},
		Now:          func() time.Time { return invoiceNow },
	}
}

func TestCreateFromAppointment(t *testing.T) {
	repo := newFakeInvoiceRepo()
	svc := newInvoiceService(repo, completedAppointment())

	inv, err := svc.CreateFromAppointment("ap-1")
	require.NoError(t, err)

	// The discounted quote is unrolled back to the full rate, with the
	// coupon shown as a discount line.
	require.Len(t, inv.Items, 1)
	assert.InDelta(t, 200, inv.Items[0].Rate, 1e-9)
	assert.InDelta(t, 200, inv.Subtotal, 1e-9)
	assert.InDelta(t, 40, inv.Discount, 1e-9)
	assert.InDelta(t, 160, inv.Total, 1e-9)
	assert.Equal(t, models.InvoiceUnpaid, inv.Status)
	assert.Equal(t, "Inv-26-27/KTS-001", inv.InvoiceNumber)
}

func TestCreateFromAppointmentRequiresCompletion(t *testing.T) {
	for _, status := range []string{
		models.AppointmentPending,
		models.AppointmentConfirmed,
		models.AppointmentCancelled,
	} {
		appt := completedAppointment()
		appt.Status = status
		svc := newInvoiceService(newFakeInvoiceRepo(), appt)

		_, err := svc.CreateFromAppointment("ap-1")
		assert.Error(t, err, "status %s must not be invoiceable", status)
	}
}

func TestCreateFromAppointmentMissingAppointment(t *testing.T) {
	svc := newInvoiceService(newFakeInvoiceRepo(), nil)
	_, err := svc.CreateFromAppointment("nope")
	assert.Error(t, err)
}

func TestSerialsIncrementPerInvoice(t *testing.T) {
	repo := newFakeInvoiceRepo()
	svc := newInvoiceService(repo, completedAppointment())

	first, err := svc.CreateFromAppointment("ap-1")
	require.NoError(t, err)
	second, err := svc.CreateFromAppointment("ap-1")
	require.NoError(t, err)

	assert.Equal(t, "Inv-26-27/KTS-001", first.InvoiceNumber)
	assert.Equal(t, "Inv-26-27/KTS-002", second.InvoiceNumber)
}

func TestDuplicateNumberIsRetriedOnce(t *testing.T) {
	repo := newFakeInvoiceRepo()
	repo.failAt = 1
	svc := newInvoiceService(repo, completedAppointment())

	inv, err := svc.CreateFromAppointment("ap-1")
	require.NoError(t, err)
	assert.Equal(t, "Inv-26-27/KTS-002", inv.InvoiceNumber, "retry takes a fresh serial")
	require.Len(t, repo.created, 1)
}

func TestTransientCreateErrorIsNotRetried(t *testing.T) {
	repo := newFakeInvoiceRepo()
	repo.failAt = 1
	repo.failErr = errors.New("connection reset")
	svc := newInvoiceService(repo, completedAppointment())

	_, err := svc.CreateFromAppointment("ap-1")
	require.Error(t, err)
	assert.Equal(t, 1, repo.calls, "no second insert attempt")
	assert.Equal(t, int64(1), repo.serials["Inv-26-27/KTS"], "no serial burned on a retry")
	assert.Empty(t, repo.created)
}

func TestUpdateStatusValidatesStatus(t *testing.T) {
	svc := newInvoiceService(newFakeInvoiceRepo(), nil)

	assert.NoError(t, svc.UpdateStatus("inv-1", models.InvoicePaid))
	assert.NoError(t, svc.UpdateStatus("inv-1", models.InvoiceVoid))
	assert.Error(t, svc.UpdateStatus("inv-1", "shredded"))
}
