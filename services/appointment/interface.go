package appointment

import (
	"context"
	"time"

	appointmentRepo "clinichub/database/repository/appointment"
	doctorRepo "clinichub/database/repository/doctor"
	serviceRepo "clinichub/database/repository/service"
	userRepo "clinichub/database/repository/user"
	"clinichub/models"
)

// AppointmentService owns the appointment lifecycle. Status changes happen
// only here, either on user action or on the periodic sweep.
type AppointmentService interface {
	Book(ctx context.Context, patientID string, req models.BookAppointmentRequest) (*models.Appointment, error)
	Get(ctx context.Context, actor models.Actor, id string) (*models.Appointment, error)
	// List returns the actor's appointments, optionally narrowed to one status.
	List(ctx context.Context, actor models.Actor, status string) ([]models.Appointment, error)
	Cancel(ctx context.Context, actor models.Actor, id, reason string) (*models.Appointment, error)
	Reschedule(ctx context.Context, actor models.Actor, id, date, clock string) (*models.Appointment, error)
	Complete(ctx context.Context, actor models.Actor, id string) (*models.Appointment, error)

	// AdvanceStatuses promotes booked and rescheduled appointments that start within the upcoming window.
	AdvanceStatuses(ctx context.Context) (int64, error)
	// SendReminder notifies both parties if the reminded slot is still current.
	SendReminder(ctx context.Context, payload models.ReminderPayload) error

	AdminDashboard(ctx context.Context) (*models.AdminDashboard, error)
	DoctorDashboard(ctx context.Context, doctorID string) (*models.DoctorDashboard, error)
}

// Notifier records appointment notifications.
type Notifier interface {
	NotifyAppointment(ctx context.Context, userID string, appt *models.Appointment, kind models.NotificationType) error
}

// ReminderScheduler schedules the reminder of an appointment's current slot.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, appt *models.Appointment) error
}

// DefaultAppointmentService is the production implementation.
type DefaultAppointmentService struct {
	Repo           appointmentRepo.AppointmentRepository
	Doctors        doctorRepo.DoctorRepository
	Users          userRepo.UserRepository
	Services       serviceRepo.ServiceRepository
	Notifier       Notifier
	Reminders      ReminderScheduler
	Location       *time.Location
	UpcomingWindow time.Duration
	Now            func() time.Time
}

const latestBookingsLimit = 5

func (s *DefaultAppointmentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultAppointmentService) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

func (s *DefaultAppointmentService) window() time.Duration {
	if s.UpcomingWindow <= 0 {
		return 24 * time.Hour
	}
	return s.UpcomingWindow
}
