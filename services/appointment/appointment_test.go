package appointment

import (
	"testing"
	"time"

	"kts/models"
	"kts/services/admin"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	appointments map[string]*models.Appointment
	requests     map[string]*models.DeletionRequest
	deleted      []string
	statusWrites []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		appointments: map[string]*models.Appointment{},
		requests:     map[string]*models.DeletionRequest{},
	}
}

func (f *fakeRepo) Create(a *models.Appointment) error {
	f.appointments[a.ID] = a
	return nil
}

func (f *fakeRepo) GetByID(id string) (*models.Appointment, error) {
	return f.appointments[id], nil
}

func (f *fakeRepo) GetByReference(ref string) (*models.Appointment, error) {
	for _, a := range f.appointments {
		if a.ReferenceCode == ref {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) GetAll(string) ([]models.Appointment, error) { return nil, nil }

func (f *fakeRepo) UpdateStatus(id, status string) error {
	f.statusWrites = append(f.statusWrites, id+":"+status)
	if a, ok := f.appointments[id]; ok {
		a.Status = status
	}
	return nil
}

func (f *fakeRepo) Delete(id string) error {
	f.deleted = append(f.deleted, id)
	delete(f.appointments, id)
	return nil
}

func (f *fakeRepo) CountByStatus() (map[string]int, error)      { return nil, nil }
func (f *fakeRepo) CreatedSince(time.Time) ([]time.Time, error) { return nil, nil }

func (f *fakeRepo) CreateDeletionRequest(req *models.DeletionRequest) error {
	f.requests[req.ID] = req
	return nil
}

func (f *fakeRepo) GetDeletionRequest(id string) (*models.DeletionRequest, error) {
	return f.requests[id], nil
}

func (f *fakeRepo) ListDeletionRequests(string) ([]models.DeletionRequest, error) {
	var out []models.DeletionRequest
	for _, r := range f.requests {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRepo) UpdateDeletionRequest(req *models.DeletionRequest) error {
	f.requests[req.ID] = req
	return nil
}

type fakeNotify struct {
	requests []*models.DeletionRequest
}

func (f *fakeNotify) DeletionRequested(req *models.DeletionRequest) {
	f.requests = append(f.requests, req)
}

var superActor = &admin.Actor{Admin: &models.Admin{ID: "root", IsSuperAdmin: true}}

func actorWith(flags ...string) *admin.Actor {
	m := map[string]bool{}
	for _, fl := range flags {
		m[fl] = true
	}
	return &admin.Actor{
		Admin:       &models.Admin{ID: "staff"},
		Permissions: &models.AdminPermissions{AdminID: "staff", Flags: m},
	}
}

func TestTransitionAllowed(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{models.AppointmentPending, models.AppointmentConfirmed, true},
		{models.AppointmentPending, models.AppointmentCancelled, true},
		{models.AppointmentPending, models.AppointmentCompleted, false},
		{models.AppointmentConfirmed, models.AppointmentCompleted, true},
		{models.AppointmentConfirmed, models.AppointmentCancelled, true},
		{models.AppointmentConfirmed, models.AppointmentPending, false},
		{models.AppointmentCompleted, models.AppointmentCancelled, false},
		{models.AppointmentCompleted, models.AppointmentPending, false},
		{models.AppointmentCancelled, models.AppointmentConfirmed, false},
		{models.AppointmentCancelled, models.AppointmentPending, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TransitionAllowed(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestTransitionEnforcesPermissionAndLegality(t *testing.T) {
	repo := newFakeRepo()
	repo.appointments["ap-1"] = &models.Appointment{ID: "ap-1", Status: models.AppointmentPending}
	svc := &DefaultAppointmentService{Repo: repo}

	// No confirm permission: rejected before any read.
	err := svc.Transition(actorWith(models.PermManageAppointments), "ap-1", models.AppointmentConfirmed)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, repo.statusWrites)

	// Legal move with the right flag.
	err = svc.Transition(actorWith(models.PermConfirmAppointments), "ap-1", models.AppointmentConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentConfirmed, repo.appointments["ap-1"].Status)

	// Completed is terminal.
	require.NoError(t, svc.Transition(superActor, "ap-1", models.AppointmentCompleted))
	err = svc.Transition(superActor, "ap-1", models.AppointmentCancelled)
	assert.Error(t, err)
}

func TestDeleteFilesRequestWithoutPermission(t *testing.T) {
	repo := newFakeRepo()
	repo.appointments["ap-1"] = &models.Appointment{ID: "ap-1", Status: models.AppointmentPending}
	notify := &fakeNotify{}
	svc := &DefaultAppointmentService{Repo: repo, Notify: notify}

	requested, err := svc.Delete(actorWith(models.PermManageAppointments), "ap-1", "duplicate booking")
	require.NoError(t, err)
	assert.True(t, requested)

	// The row survives and a pending request was filed and broadcast.
	assert.Contains(t, repo.appointments, "ap-1")
	require.Len(t, notify.requests, 1)
	req := notify.requests[0]
	assert.Equal(t, "ap-1", req.TargetID)
	assert.Equal(t, "staff", req.RequestedBy)
	assert.Equal(t, "duplicate booking", req.Reason)
	assert.Equal(t, models.DeletionRequestPending, req.Status)
}

func TestDeleteDirectForHoldersOfTheFlag(t *testing.T) {
	repo := newFakeRepo()
	repo.appointments["ap-1"] = &models.Appointment{ID: "ap-1"}
	svc := &DefaultAppointmentService{Repo: repo, Notify: &fakeNotify{}}

	requested, err := svc.Delete(actorWith(models.PermDeleteAppointments), "ap-1", "")
	require.NoError(t, err)
	assert.False(t, requested)
	assert.Equal(t, []string{"ap-1"}, repo.deleted)
	assert.Empty(t, repo.requests)
}

func TestReviewDeletionRequest(t *testing.T) {
	repo := newFakeRepo()
	repo.appointments["ap-1"] = &models.Appointment{ID: "ap-1"}
	repo.requests["rq-1"] = &models.DeletionRequest{
		ID: "rq-1", TargetType: "appointment", TargetID: "ap-1",
		Status: models.DeletionRequestPending,
	}
	svc := &DefaultAppointmentService{Repo: repo}

	// Only super-admins review.
	err := svc.ReviewDeletionRequest(actorWith(models.PermDeleteAppointments), "rq-1", true)
	assert.ErrorIs(t, err, ErrForbidden)

	// Approval performs the delete and closes the request.
	require.NoError(t, svc.ReviewDeletionRequest(superActor, "rq-1", true))
	assert.NotContains(t, repo.appointments, "ap-1")
	assert.Equal(t, models.DeletionRequestApproved, repo.requests["rq-1"].Status)
	assert.Equal(t, "root", repo.requests["rq-1"].ReviewedBy)

	// A closed request cannot be reviewed again.
	err = svc.ReviewDeletionRequest(superActor, "rq-1", false)
	assert.Error(t, err)
}

func TestCancelByReference(t *testing.T) {
	repo := newFakeRepo()
	repo.appointments["ap-1"] = &models.Appointment{
		ID: "ap-1", ReferenceCode: "KTS-AB12CD34",
		CustomerEmail: "asha@example.com", Status: models.AppointmentConfirmed,
	}
	svc := &DefaultAppointmentService{Repo: repo}

	// Email must match the booking, case-insensitively.
	assert.Error(t, svc.CancelByReference("KTS-AB12CD34", "wrong@example.com"))
	assert.Error(t, svc.CancelByReference("KTS-UNKNOWN", "asha@example.com"))

	require.NoError(t, svc.CancelByReference("KTS-AB12CD34", "Asha@Example.com"))
	assert.Equal(t, models.AppointmentCancelled, repo.appointments["ap-1"].Status)

	// Terminal statuses cannot be cancelled again.
	assert.Error(t, svc.CancelByReference("KTS-AB12CD34", "asha@example.com"))
}
