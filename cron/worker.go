// File: kts/cron/worker.go
package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"kts/config"
	appointmentRepo "kts/database/repository/appointment"
	"kts/models"
	"kts/services/notification"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeReminderSend = "reminder:send"

// reminderLead is how long before the appointment the reminder fires.
const reminderLead = 24 * time.Hour

type reminderPayload struct {
	AppointmentID string `json:"appointment_id"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// ReminderScheduler enqueues reminder tasks when appointments are confirmed.
type ReminderScheduler struct {
	client *asynq.Client
}

// NewReminderScheduler creates the asynq enqueue client.
func NewReminderScheduler() *ReminderScheduler {
	return &ReminderScheduler{client: asynq.NewClient(redisOpts())}
}

// ScheduleReminder enqueues a reminder 24h before the appointment slot.
// Appointments closer than the lead time get the reminder immediately.
func (s *ReminderScheduler) ScheduleReminder(a *models.Appointment) error {
	payload, err := json.Marshal(reminderPayload{AppointmentID: a.ID})
	if err != nil {
		return fmt.Errorf("failed to marshal reminder payload: %w", err)
	}

	task := asynq.NewTask(TypeReminderSend, payload)
	processAt := time.Now()
	if at, err := time.ParseInLocation("2006-01-02 15:04", a.Date+" "+a.TimeSlot, time.Local); err == nil {
		if due := at.Add(-reminderLead); due.After(processAt) {
			processAt = due
		}
	}

	if _, err := s.client.Enqueue(task, asynq.ProcessAt(processAt)); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(appts appointmentRepo.AppointmentRepository, notifSvc notification.NotificationService) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReminderSend, handleReminderTask(appts, notifSvc))

	go func() {
		zap.L().Info("starting reminder worker")
		if err := srv.Run(mux); err != nil {
			zap.L().Error("reminder worker stopped", zap.Error(err))
		}
	}()
}

func handleReminderTask(appts appointmentRepo.AppointmentRepository, notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload reminderPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("failed to unmarshal reminder payload: %w", err)
		}

		a, err := appts.GetByID(payload.AppointmentID)
		if err != nil {
			return err
		}
		// Cancelled or already-completed appointments need no reminder.
		if a == nil || a.Status != models.AppointmentConfirmed {
			return nil
		}

		notifSvc.Reminder(a)
		return nil
	}
}
