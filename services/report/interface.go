package report

import (
	"context"
	"time"

	appointmentRepo "clinichub/database/repository/appointment"
	reportRepo "clinichub/database/repository/report"
	"clinichub/models"
)

// ReportService manages medical reports and their PDF export.
type ReportService interface {
	Create(ctx context.Context, doctorID string, in models.ReportInput) (*models.Report, error)
	Update(ctx context.Context, doctorID, id string, in models.ReportInput) (*models.Report, error)
	Get(ctx context.Context, actor models.Actor, id string) (*models.Report, error)
	// List returns the reports the actor wrote or received.
	List(ctx context.Context, actor models.Actor) ([]models.Report, error)
	// RenderPDF returns the report as a PDF document.
	RenderPDF(ctx context.Context, actor models.Actor, id string) ([]byte, *models.Report, error)
}

// DefaultReportService is the production implementation.
type DefaultReportService struct {
	Repo         reportRepo.ReportRepository
	Appointments appointmentRepo.AppointmentRepository
	ClinicName   string
	Now          func() time.Time
}

func (s *DefaultReportService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
