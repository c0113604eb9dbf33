package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clinichub/models"
	"clinichub/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	TypeAppointmentReminder = "appointment:reminder"
	TypeAppointmentAdvance  = "appointment:advance"
)

// NewReminderTask builds the reminder task for a slot. The task ID pins the
// appointment and slot so a reschedule enqueues a distinct task.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeAppointmentReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(fmt.Sprintf("reminder:%s:%sT%s", payload.AppointmentID, payload.Date, payload.Time)),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

// NewAdvanceTask builds the periodic status sweep task.
func NewAdvanceTask() *asynq.Task {
	return asynq.NewTask(TypeAppointmentAdvance, nil)
}

// Enqueuer is the subset of *asynq.Client used to schedule tasks.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqReminderScheduler schedules appointment reminders on the asynq queue.
type AsynqReminderScheduler struct {
	Client Enqueuer
	Lead   time.Duration
	Now    func() time.Time
}

// ScheduleReminder enqueues a reminder Lead before the appointment starts.
// Reminders whose fire time already passed are skipped.
func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, appt *models.Appointment) error {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	fireAt := appt.StartAt.Add(-s.Lead)
	if !fireAt.After(now) {
		return nil
	}

	task, opts, err := NewReminderTask(models.ReminderPayload{
		AppointmentID: appt.ID,
		Date:          appt.Date,
		Time:          appt.Time,
	}, fireAt)
	if err != nil {
		return err
	}
	info, err := s.Client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	utils.GetLogger().Debug("Reminder scheduled",
		zap.String("appointmentID", appt.ID),
		zap.String("taskID", info.ID),
		zap.Time("fireAt", fireAt),
	)
	return nil
}

// ReminderSender handles a due reminder.
type ReminderSender interface {
	SendReminder(ctx context.Context, payload models.ReminderPayload) error
}

// StatusAdvancer runs the time-driven status sweep.
type StatusAdvancer interface {
	AdvanceStatuses(ctx context.Context) (int64, error)
}

// HandleReminderTask decodes the payload and hands it to sender.
func HandleReminderTask(sender ReminderSender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("Invalid reminder payload", zap.Error(err))
			return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
		}
		return sender.SendReminder(ctx, p)
	}
}

// HandleAdvanceTask runs the status sweep.
func HandleAdvanceTask(advancer StatusAdvancer) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		n, err := advancer.AdvanceStatuses(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			utils.GetLogger().Info("Appointments moved to upcoming", zap.Int64("count", n))
		}
		return nil
	}
}
