package appointmentRepo

import (
	"context"
	"time"

	"clinichub/models"
)

// AppointmentRepository defines methods for booked appointment access.
type AppointmentRepository interface {
	// Create inserts an appointment. A slot held by another active appointment yields models.ErrSlotTaken.
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	Find(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error)
	// ApplyTransition writes upd only if the appointment is still in status from.
	// It yields models.ErrConflict when the status moved underneath the caller.
	ApplyTransition(ctx context.Context, id string, from models.AppointmentStatus, upd models.AppointmentUpdate) (*models.Appointment, error)
	// PromoteDue moves booked/rescheduled appointments starting before deadline to upcoming.
	PromoteDue(ctx context.Context, deadline, now time.Time) (int64, error)
	// TakenSlots returns the slot times held by active appointments of a doctor on a date.
	TakenSlots(ctx context.Context, doctorID, date string) ([]string, error)
	CountActiveForDoctor(ctx context.Context, doctorID string) (int64, error)
	SetChannelID(ctx context.Context, id, channelID string) error
	MarkReviewed(ctx context.Context, id string) error
	MarkReported(ctx context.Context, id string) error
	// Stats aggregates counts per status, completed earnings and distinct patients.
	Stats(ctx context.Context, doctorID string) (*Stats, error)
}

// Stats is the aggregate view used by dashboards.
type Stats struct {
	Total    int64
	ByStatus map[models.AppointmentStatus]int64
	Earnings float64
	Patients int64
}
