package appointment

import (
	"context"
	"fmt"
	"strings"

	"clinichub/models"
	"clinichub/utils"

	"go.uber.org/zap"
)

// authorize checks that actor may act on appt.
func authorize(actor models.Actor, appt *models.Appointment) error {
	switch actor.Role {
	case models.RoleAdmin:
		return nil
	case models.RolePatient:
		if appt.PatientID == actor.ID {
			return nil
		}
	case models.RoleDoctor:
		if appt.DoctorID == actor.ID {
			return nil
		}
	}
	return fmt.Errorf("appointment %s: %w", appt.ID, models.ErrForbidden)
}

func invalidTransition(appt *models.Appointment, to models.AppointmentStatus) error {
	return fmt.Errorf("cannot move appointment from %s to %s: %w", appt.Status, to, models.ErrInvalidTransition)
}

func (s *DefaultAppointmentService) load(ctx context.Context, actor models.Actor, id string) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *DefaultAppointmentService) Get(ctx context.Context, actor models.Actor, id string) (*models.Appointment, error) {
	return s.load(ctx, actor, id)
}

// Cancel cancels an active appointment. Patients and doctors may cancel their own.
func (s *DefaultAppointmentService) Cancel(ctx context.Context, actor models.Actor, id, reason string) (*models.Appointment, error) {
	appt, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !appt.Status.CanTransitionTo(models.StatusCancelled) {
		return nil, invalidTransition(appt, models.StatusCancelled)
	}

	updated, err := s.Repo.ApplyTransition(ctx, id, appt.Status, models.AppointmentUpdate{
		Status:       models.StatusCancelled,
		CancelReason: strings.TrimSpace(reason),
		CancelledBy:  actor.Role,
		UpdatedAt:    s.now(),
	})
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("Appointment cancelled",
		zap.String("appointmentID", id),
		zap.String("by", string(actor.Role)),
	)
	recipients := []string{updated.PatientID}
	if actor.ID != updated.DoctorID {
		recipients = append(recipients, updated.DoctorID)
	}
	s.notify(ctx, updated, models.NotificationCancelled, recipients...)
	return updated, nil
}

// Reschedule moves an active appointment to a new free slot. Only the doctor or an admin may do so.
func (s *DefaultAppointmentService) Reschedule(ctx context.Context, actor models.Actor, id, date, clock string) (*models.Appointment, error) {
	if actor.Role != models.RoleDoctor && actor.Role != models.RoleAdmin {
		return nil, fmt.Errorf("only the doctor or an admin can reschedule: %w", models.ErrForbidden)
	}
	appt, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !appt.Status.CanTransitionTo(models.StatusRescheduled) {
		return nil, invalidTransition(appt, models.StatusRescheduled)
	}
	if appt.Date == date && appt.Time == clock {
		return nil, &models.ValidationError{Fields: map[string]string{"time": "pick a different slot"}}
	}

	doc, err := s.Doctors.GetByID(ctx, appt.DoctorID)
	if err != nil {
		return nil, err
	}
	start, err := s.checkSlot(doc, date, clock)
	if err != nil {
		return nil, err
	}

	updated, err := s.Repo.ApplyTransition(ctx, id, appt.Status, models.AppointmentUpdate{
		Status:        models.StatusRescheduled,
		Date:          date,
		Time:          clock,
		StartAt:       start,
		PreviousDate:  appt.Date,
		PreviousTime:  appt.Time,
		IncReschedule: true,
		UpdatedAt:     s.now(),
	})
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("Appointment rescheduled",
		zap.String("appointmentID", id),
		zap.String("from", appt.Date+" "+appt.Time),
		zap.String("to", date+" "+clock),
	)
	s.notify(ctx, updated, models.NotificationRescheduled, updated.PatientID)
	s.scheduleReminder(ctx, updated)
	return updated, nil
}

// Complete marks a started appointment as completed. Only its doctor or an admin may do so.
func (s *DefaultAppointmentService) Complete(ctx context.Context, actor models.Actor, id string) (*models.Appointment, error) {
	if actor.Role != models.RoleDoctor && actor.Role != models.RoleAdmin {
		return nil, fmt.Errorf("only the doctor or an admin can complete: %w", models.ErrForbidden)
	}
	appt, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !appt.Status.CanTransitionTo(models.StatusCompleted) {
		return nil, invalidTransition(appt, models.StatusCompleted)
	}
	if s.now().Before(appt.StartAt) {
		return nil, fmt.Errorf("appointment has not started yet: %w", models.ErrInvalidTransition)
	}

	updated, err := s.Repo.ApplyTransition(ctx, id, appt.Status, models.AppointmentUpdate{
		Status:    models.StatusCompleted,
		UpdatedAt: s.now(),
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, updated, models.NotificationCompleted, updated.PatientID)
	return updated, nil
}

func (s *DefaultAppointmentService) AdvanceStatuses(ctx context.Context) (int64, error) {
	now := s.now()
	n, err := s.Repo.PromoteDue(ctx, now.Add(s.window()), now)
	if err != nil {
		return 0, fmt.Errorf("status sweep failed: %w", err)
	}
	return n, nil
}

// SendReminder skips reminders for appointments that were cancelled,
// completed or moved after the reminder was scheduled.
func (s *DefaultAppointmentService) SendReminder(ctx context.Context, p models.ReminderPayload) error {
	appt, err := s.Repo.GetByID(ctx, p.AppointmentID)
	if err != nil {
		return err
	}
	logger := utils.GetLogger().With(zap.String("appointmentID", p.AppointmentID))
	if !appt.Status.IsActive() {
		logger.Debug("Reminder skipped: appointment no longer active", zap.String("status", string(appt.Status)))
		return nil
	}
	if appt.Date != p.Date || appt.Time != p.Time {
		logger.Debug("Reminder skipped: appointment was moved")
		return nil
	}
	s.notify(ctx, appt, models.NotificationReminder, appt.PatientID, appt.DoctorID)
	return nil
}
