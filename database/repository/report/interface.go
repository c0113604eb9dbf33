package reportRepo

import (
	"context"

	"clinichub/models"
)

// ReportRepository defines methods for medical report storage.
type ReportRepository interface {
	// Create inserts a report; one report per appointment, duplicates yield models.ErrConflict.
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id string) (*models.Report, error)
	GetByAppointment(ctx context.Context, appointmentID string) (*models.Report, error)
	Update(ctx context.Context, report *models.Report) error
	ListByPatient(ctx context.Context, patientID string) ([]models.Report, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]models.Report, error)
}
