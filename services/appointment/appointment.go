// File: kts/services/appointment/appointment.go
package appointment

import (
	"errors"
	"fmt"
	"strings"

	appointmentRepo "kts/database/repository/appointment"
	"kts/models"
	"kts/services/admin"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrForbidden is returned when the acting admin lacks the required
// permission flag.
var ErrForbidden = errors.New("permission denied")

// legalTransitions encode the appointment lifecycle: completed and
// cancelled are terminal.
var legalTransitions = map[string][]string{
	models.AppointmentPending:   {models.AppointmentConfirmed, models.AppointmentCancelled},
	models.AppointmentConfirmed: {models.AppointmentCompleted, models.AppointmentCancelled},
}

// Notifier is the slice of the notification service this package needs.
type Notifier interface {
	DeletionRequested(req *models.DeletionRequest)
}

// Scheduler enqueues appointment reminders.
type Scheduler interface {
	ScheduleReminder(a *models.Appointment) error
}

// AppointmentService drives admin-side appointment management.
type AppointmentService interface {
	List(status string) ([]models.Appointment, error)
	Get(id string) (*models.Appointment, error)
	Transition(actor *admin.Actor, id, to string) error
	CancelByReference(ref, email string) error
	// Delete removes the appointment when the actor may delete directly;
	// otherwise it files a deletion request and reports requested=true.
	Delete(actor *admin.Actor, id, reason string) (requested bool, err error)
	ListDeletionRequests(status string) ([]models.DeletionRequest, error)
	ReviewDeletionRequest(actor *admin.Actor, requestID string, approve bool) error
}

// DefaultAppointmentService is the production implementation.
type DefaultAppointmentService struct {
	Repo      appointmentRepo.AppointmentRepository
	Notify    Notifier
	Reminders Scheduler
}

// List returns appointments, optionally filtered by status.
func (s *DefaultAppointmentService) List(status string) ([]models.Appointment, error) {
	return s.Repo.GetAll(status)
}

// Get returns one appointment, nil when absent.
func (s *DefaultAppointmentService) Get(id string) (*models.Appointment, error) {
	return s.Repo.GetByID(id)
}

// TransitionAllowed reports whether from → to is a legal lifecycle move.
func TransitionAllowed(from, to string) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition moves an appointment through its lifecycle, gated on the
// confirm-appointments permission.
func (s *DefaultAppointmentService) Transition(actor *admin.Actor, id, to string) error {
	if !admin.CanPerform(actor, models.PermConfirmAppointments) {
		return ErrForbidden
	}

	appt, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if appt == nil {
		return fmt.Errorf("appointment %s not found", id)
	}
	if !TransitionAllowed(appt.Status, to) {
		return fmt.Errorf("cannot move appointment from %s to %s", appt.Status, to)
	}

	if err := s.Repo.UpdateStatus(id, to); err != nil {
		return err
	}

	if to == models.AppointmentConfirmed && s.Reminders != nil {
		appt.Status = to
		if err := s.Reminders.ScheduleReminder(appt); err != nil {
			zap.L().Warn("failed to schedule reminder",
				zap.String("appointment", id), zap.Error(err))
		}
	}
	return nil
}

// CancelByReference is the guest self-service cancel: the reference code
// plus the booking email stand in for authentication.
func (s *DefaultAppointmentService) CancelByReference(ref, email string) error {
	appt, err := s.Repo.GetByReference(strings.TrimSpace(ref))
	if err != nil {
		return err
	}
	if appt == nil || !strings.EqualFold(appt.CustomerEmail, strings.TrimSpace(email)) {
		return errors.New("no matching appointment")
	}
	if appt.Status == models.AppointmentCompleted || appt.Status == models.AppointmentCancelled {
		return fmt.Errorf("appointment is already %s", appt.Status)
	}
	return s.Repo.UpdateStatus(appt.ID, models.AppointmentCancelled)
}

// Delete removes directly for super-admins and holders of the delete
// permission; for everyone else it files a deletion request and notifies
// super-admins, leaving the row untouched.
func (s *DefaultAppointmentService) Delete(actor *admin.Actor, id, reason string) (bool, error) {
	appt, err := s.Repo.GetByID(id)
	if err != nil {
		return false, err
	}
	if appt == nil {
		return false, fmt.Errorf("appointment %s not found", id)
	}

	if admin.CanPerform(actor, models.PermDeleteAppointments) {
		return false, s.Repo.Delete(id)
	}

	req := &models.DeletionRequest{
		ID:          uuid.New().String(),
		TargetType:  "appointment",
		TargetID:    id,
		RequestedBy: actor.Admin.ID,
		Reason:      reason,
		Status:      models.DeletionRequestPending,
	}
	if err := s.Repo.CreateDeletionRequest(req); err != nil {
		return false, err
	}
	if s.Notify != nil {
		s.Notify.DeletionRequested(req)
	}
	return true, nil
}

// ListDeletionRequests returns the review queue.
func (s *DefaultAppointmentService) ListDeletionRequests(status string) ([]models.DeletionRequest, error) {
	return s.Repo.ListDeletionRequests(status)
}

// ReviewDeletionRequest lets a super-admin approve (performing the delete)
// or reject a pending request.
func (s *DefaultAppointmentService) ReviewDeletionRequest(actor *admin.Actor, requestID string, approve bool) error {
	if actor == nil || actor.Admin == nil || !actor.Admin.IsSuperAdmin {
		return ErrForbidden
	}

	req, err := s.Repo.GetDeletionRequest(requestID)
	if err != nil {
		return err
	}
	if req == nil {
		return fmt.Errorf("deletion request %s not found", requestID)
	}
	if req.Status != models.DeletionRequestPending {
		return fmt.Errorf("deletion request %s is already %s", requestID, req.Status)
	}

	if approve {
		if err := s.Repo.Delete(req.TargetID); err != nil {
			return err
		}
		req.Status = models.DeletionRequestApproved
	} else {
		req.Status = models.DeletionRequestRejected
	}
	req.ReviewedBy = actor.Admin.ID
	return s.Repo.UpdateDeletionRequest(req)
}
