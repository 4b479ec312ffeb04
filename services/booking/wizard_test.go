package booking

import (
	"errors"
	"testing"
	"time"

	"kts/models"
	"kts/services/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type memorySessionStore struct {
	sessions map[string]models.BookingSession
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: map[string]models.BookingSession{}}
}

func (m *memorySessionStore) Save(s *models.BookingSession) error {
	m.sessions[s.SessionID] = *s
	return nil
}

func (m *memorySessionStore) Load(id string) (*models.BookingSession, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := s
	return &copied, nil
}

func (m *memorySessionStore) Delete(id string) error {
	delete(m.sessions, id)
	return nil
}

type fakeCatalog struct {
	services map[string]*models.Service
}

func (f *fakeCatalog) ListPublic() ([]models.Service, error) {
	var out []models.Service
	for _, s := range f.services {
		if s.IsActive {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeCatalog) ListAll() ([]models.Service, error)     { return nil, nil }
func (f *fakeCatalog) Get(id string) (*models.Service, error) { return f.services[id], nil }
func (f *fakeCatalog) Create(s *models.Service) error         { return nil }
func (f *fakeCatalog) Update(s *models.Service) error         { return nil }
func (f *fakeCatalog) Delete(id string) error                 { return nil }

type fakeCoupons struct {
	coupon  *models.Coupon
	err     error
	redeems int
}

func (f *fakeCoupons) Validate(code string) (*models.Coupon, error) {
	if code == "" {
		return nil, nil
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.coupon, nil
}

func (f *fakeCoupons) Redeem(code string) error {
	f.redeems++
	return nil
}

func (f *fakeCoupons) Create(c *models.Coupon) error    { return nil }
func (f *fakeCoupons) Update(c *models.Coupon) error    { return nil }
func (f *fakeCoupons) Delete(id string) error           { return nil }
func (f *fakeCoupons) GetAll() ([]models.Coupon, error) { return nil, nil }

type fakeAppointments struct {
	created []*models.Appointment
}

func (f *fakeAppointments) Create(a *models.Appointment) error {
	f.created = append(f.created, a)
	return nil
}

func (f *fakeAppointments) GetByID(string) (*models.Appointment, error)        { return nil, nil }
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

type fakeSettings struct {
	slots settings.SlotConfig
}

func (f *fakeSettings) Get(string) (string, error)         { return "", nil }
func (f *fakeSettings) GetAll() (map[string]string, error) { return nil, nil }
func (f *fakeSettings) Set(string, string) error           { return nil }
func (f *fakeSettings) SlotConfig() (settings.SlotConfig, error) {
	return f.slots, nil
}
func (f *fakeSettings) GatewayConfig() (models.GatewayConfig, error) {
	return models.GatewayConfig{}, nil
}

type fakeNotifier struct {
	appointments []*models.Appointment
}

func (f *fakeNotifier) NewAppointment(a *models.Appointment) {
	f.appointments = append(f.appointments, a)
}

type fakeSink struct {
	messages []string
}

func (f *fakeSink) SaveChatMessage(text string) error {
	f.messages = append(f.messages, text)
	return nil
}

// --- fixture ---

type wizardFixture struct {
	svc    *DefaultWizardService
	store  *memorySessionStore
	appts  *fakeAppointments
	coups  *fakeCoupons
	notify *fakeNotifier
	sink   *fakeSink
}

func float64p(v float64) *float64 { return &v }

// A Thursday.
var testNow = time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)

func newWizardFixture() *wizardFixture {
	price := float64p(200)
	f := &wizardFixture{
		store:  newMemorySessionStore(),
		appts:  &fakeAppointments{},
		coups:  &fakeCoupons{},
		notify: &fakeNotifier{},
		sink:   &fakeSink{},
	}
	f.svc = &DefaultWizardService{
		Sessions: f.store,
		Catalog: &fakeCatalog{services: map[string]*models.Service{
			"svc-1": {ID: "svc-1", Name: "Web Design", Price: price, IsActive: true},
			"svc-2": {ID: "svc-2", Name: "Retired", Price: price, IsActive: false},
		}},
		Coupons:      f.coups,
		Appointments: f.appts,
		Settings:     &fakeSettings{},
		Notify:       f.notify,
		Messages:     f.sink,
		Now:          func() time.Time { return testNow },
	}
	return f
}

func (f *wizardFixture) startSession(t *testing.T) string {
	t.Helper()
	reply, err := f.svc.Start()
	require.NoError(t, err)
	require.Equal(t, models.WizardStateChat, reply.State)
	return reply.SessionID
}

func (f *wizardFixture) advanceToDetails(t *testing.T, id string) {
	t.Helper()
	_, err := f.svc.Chat(id, "I want to book an appointment")
	require.NoError(t, err)
	_, err = f.svc.ChooseDate(id, "2026-08-29")
	require.NoError(t, err)
	_, err = f.svc.ChooseTime(id, "09:00")
	require.NoError(t, err)
}

var validDetails = models.BookingDetails{
	Name:      "Asha Rao",
	Email:     "asha@example.com",
	Phone:     "+91-9000000000",
	ServiceID: "svc-1",
}

// --- tests ---

func TestWizardHappyPath(t *testing.T) {
	f := newWizardFixture()
	id := f.startSession(t)

	reply, err := f.svc.Chat(id, "Can I book something?")
	require.NoError(t, err)
	assert.Equal(t, models.WizardStateDate, reply.State)

	reply, err = f.svc.ChooseDate(id, "2026-08-29")
	require.NoError(t, err)
	assert.Equal(t, models.WizardStateTime, reply.State)
	assert.Equal(t, []string{"09:00", "12:00", "14:00", "17:00"}, reply.Slots)

	reply, err = f.svc.ChooseTime(id, "12:00")
	require.NoError(t, err)
	assert.Equal(t, models.WizardStateDetails, reply.State)

	reply, err = f.svc.SubmitDetails(id, validDetails, "")
	require.NoError(t, err)
	assert.Equal(t, models.WizardStateChat, reply.State)
	require.NotNil(t, reply.Appointment)
	assert.Equal(t, models.AppointmentPending, reply.Appointment.Status)
	assert.Equal(t, "2026-08-29", reply.Appointment.Date)
	assert.Equal(t, "12:00", reply.Appointment.TimeSlot)
	assert.NotEmpty(t, reply.Appointment.ReferenceCode)
	assert.InDelta(t, 200, reply.Appointment.QuotedPrice, 1e-9)

	// Exactly one appointment row, one notification, and the session is gone.
	assert.Len(t, f.appts.created, 1)
	assert.Len(t, f.notify.appointments, 1)
	_, err = f.store.Load(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestWizardStepsAreStrictlyOrdered(t *testing.T) {
	f := newWizardFixture()
	id := f.startSession(t)

	var state StateError

	// From chat, only Chat is legal.
	_, err := f.svc.ChooseDate(id, "2026-08-29")
	require.ErrorAs(t, err, &state)
	_, err = f.svc.ChooseTime(id, "09:00")
	require.ErrorAs(t, err, &state)
	_, err = f.svc.SubmitDetails(id, validDetails, "")
	require.ErrorAs(t, err, &state)
	_, err = f.svc.ChangeTime(id, models.BookingDetails{}, "")
	require.ErrorAs(t, err, &state)

	// From date, choosing a time or submitting is still illegal.
	_, err = f.svc.Chat(id, "book")
	require.NoError(t, err)
	_, err = f.svc.ChooseTime(id, "09:00")
	require.ErrorAs(t, err, &state)
	_, err = f.svc.SubmitDetails(id, validDetails, "")
	require.ErrorAs(t, err, &state)

	// Nothing was persisted along the way.
	assert.Empty(t, f.appts.created)
}

func TestWizardChatIntents(t *testing.T) {
	f := newWizardFixture()
	id := f.startSession(t)

	// Service questions show the catalog without leaving chat.
	reply, err := f.svc.Chat(id, "what services do you offer?")
	require.NoError(t, err)
	assert.Equal(t, models.WizardStateChat, reply.State)
	require.Len(t, reply.Services, 1)
	assert.Equal(t, "Web Design", reply.Services[0].Name)

	// Unrecognized text lands in the contact inbox.
	reply, err = f.svc.Chat(id, "do you have parking?")
	require.NoError(t, err)
	assert.Equal(t, models.WizardStateChat, reply.State)
	assert.Equal(t, []string{"do you have parking?"}, f.sink.messages)
}

func TestWizardDateValidation(t *testing.T) {
	f := newWizardFixture()
	id := f.startSession(t)
	_, err := f.svc.Chat(id, "book")
	require.NoError(t, err)

	var validation ValidationError
	for _, date := range []string{
		"2026-08-26", // yesterday
		"2026-08-30", // a Sunday
		"not-a-date", // unparseable
		"29-08-2026", // wrong layout
	} {
		_, err := f.svc.ChooseDate(id, date)
		require.ErrorAs(t, err, &validation, "date %q should be rejected", date)
	}

	// Rejection leaves the session in the date state.
	reply, err := f.svc.ChooseDate(id, "2026-08-29")
	require.NoError(t, err)
	assert.Equal(t, models.WizardStateTime, reply.State)
}

func TestWizardRejectsUnknownSlot(t *testing.T) {
	f := newWizardFixture()
	id := f.startSession(t)
	_, err := f.svc.Chat(id, "book")
	require.NoError(t, err)
	_, err = f.svc.ChooseDate(id, "2026-08-29")
	require.NoError(t, err)

	var validation ValidationError
	_, err = f.svc.ChooseTime(id, "10:30")
	require.ErrorAs(t, err, &validation)
}

func TestWizardSubmitValidatesDetails(t *testing.T) {
	f := newWizardFixture()
	id := f.startSession(t)
	f.advanceToDetails(t, id)

	var validation ValidationError
	_, err := f.svc.SubmitDetails(id, models.BookingDetails{Name: "Asha Rao"}, "")
	require.ErrorAs(t, err, &validation)
	assert.ElementsMatch(t, []string{"email", "phone", "serviceId"}, validation.Fields)
	assert.Empty(t, f.appts.created)

	// Inactive services are rejected too.
	bad := validDetails
	bad.ServiceID = "svc-2"
	_, err = f.svc.SubmitDetails(id, bad, "")
	require.ErrorAs(t, err, &validation)
	assert.Empty(t, f.appts.created)
}

func TestWizardSubmitAppliesCouponOnce(t *testing.T) {
	f := newWizardFixture()
	f.coups.coupon = &models.Coupon{Code: "SAVE20", DiscountPercent: 20, IsActive: true}
	id := f.startSession(t)
	f.advanceToDetails(t, id)

	reply, err := f.svc.SubmitDetails(id, validDetails, "SAVE20")
	require.NoError(t, err)

	require.Len(t, f.appts.created, 1)
	appt := f.appts.created[0]
	assert.Equal(t, "SAVE20", appt.CouponCode)
	assert.InDelta(t, 20, appt.DiscountPct, 1e-9)
	assert.InDelta(t, 160, appt.QuotedPrice, 1e-9)
	assert.Equal(t, 1, f.coups.redeems, "exactly one usage increment")
	assert.Contains(t, reply.Message, "SAVE20")
}

func TestWizardSubmitStopsOnBadCoupon(t *testing.T) {
	f := newWizardFixture()
	f.coups.err = errors.New("coupon is invalid or expired: NOPE")
	id := f.startSession(t)
	f.advanceToDetails(t, id)

	_, err := f.svc.SubmitDetails(id, validDetails, "NOPE")
	require.Error(t, err)
	assert.Empty(t, f.appts.created, "no appointment on coupon failure")
	assert.Zero(t, f.coups.redeems)
}

func TestWizardChangeTimeReentersDateStep(t *testing.T) {
	f := newWizardFixture()
	id := f.startSession(t)
	f.advanceToDetails(t, id)

	reply, err := f.svc.ChangeTime(id, models.BookingDetails{}, "")
	require.NoError(t, err)
	assert.Equal(t, models.WizardStateDate, reply.State)

	// The flow continues normally from the date step.
	_, err = f.svc.ChooseDate(id, "2026-09-01")
	require.NoError(t, err)
	_, err = f.svc.ChooseTime(id, "17:00")
	require.NoError(t, err)

	reply, err = f.svc.SubmitDetails(id, validDetails, "")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", reply.Appointment.Date)
	assert.Equal(t, "17:00", reply.Appointment.TimeSlot)
	assert.Len(t, f.appts.created, 1)
}

func TestWizardChangeTimeStashesDetailsAndCoupon(t *testing.T) {
	f := newWizardFixture()
	f.coups.coupon = &models.Coupon{Code: "SAVE20", DiscountPercent: 20, IsActive: true}
	id := f.startSession(t)
	f.advanceToDetails(t, id)

	// Backing out of the details step keeps the typed form in the session.
	_, err := f.svc.ChangeTime(id, validDetails, "SAVE20")
	require.NoError(t, err)
	_, err = f.svc.ChooseDate(id, "2026-09-01")
	require.NoError(t, err)
	_, err = f.svc.ChooseTime(id, "12:00")
	require.NoError(t, err)

	// A bare submit reuses the stashed details and coupon.
	reply, err := f.svc.SubmitDetails(id, models.BookingDetails{}, "")
	require.NoError(t, err)
	appt := reply.Appointment
	assert.Equal(t, validDetails.Name, appt.CustomerName)
	assert.Equal(t, validDetails.Email, appt.CustomerEmail)
	assert.Equal(t, "2026-09-01", appt.Date)
	assert.Equal(t, "12:00", appt.TimeSlot)
	assert.Equal(t, "SAVE20", appt.CouponCode)
	assert.InDelta(t, 160, appt.QuotedPrice, 1e-9)
	assert.Equal(t, 1, f.coups.redeems)

	// Freshly submitted fields still win over the stash.
	id = f.startSession(t)
	f.advanceToDetails(t, id)
	_, err = f.svc.ChangeTime(id, validDetails, "SAVE20")
	require.NoError(t, err)
	_, err = f.svc.ChooseDate(id, "2026-09-01")
	require.NoError(t, err)
	_, err = f.svc.ChooseTime(id, "12:00")
	require.NoError(t, err)

	fresh := validDetails
	fresh.Name = "Ravi Rao"
	reply, err = f.svc.SubmitDetails(id, fresh, "")
	require.NoError(t, err)
	assert.Equal(t, "Ravi Rao", reply.Appointment.CustomerName)
	assert.Equal(t, "SAVE20", reply.Appointment.CouponCode, "stashed coupon still applies")
}

func TestWizardCancelDiscardsSession(t *testing.T) {
	f := newWizardFixture()
	id := f.startSession(t)

	require.NoError(t, f.svc.Cancel(id))
	_, err := f.svc.Chat(id, "hello")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
