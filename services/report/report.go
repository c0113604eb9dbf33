package report

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clinichub/models"
	"clinichub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func validate(in models.ReportInput) error {
	verr := &models.ValidationError{}
	if strings.TrimSpace(in.Diagnosis) == "" {
		verr.Add("diagnosis", "diagnosis is required")
	}
	for i, p := range in.Prescriptions {
		if strings.TrimSpace(p.Medicine) == "" {
			verr.Add(fmt.Sprintf("prescriptions[%d].medicine", i), "medicine is required")
		}
		if p.DurationDays < 0 {
			verr.Add(fmt.Sprintf("prescriptions[%d].durationDays", i), "duration cannot be negative")
		}
	}
	if in.FollowUpDate != "" {
		if _, err := models.ParseSlot(in.FollowUpDate, "00:00", nil); err != nil {
			verr.Add("followUpDate", "use the YYYY-MM-DD format")
		}
	}
	return verr.OrNil()
}

func apply(rep *models.Report, in models.ReportInput) {
	rep.Diagnosis = strings.TrimSpace(in.Diagnosis)
	rep.Symptoms = nonNil(in.Symptoms)
	rep.Prescriptions = in.Prescriptions
	if rep.Prescriptions == nil {
		rep.Prescriptions = []models.Prescription{}
	}
	rep.Tests = nonNil(in.Tests)
	rep.Notes = in.Notes
	rep.FollowUpDate = in.FollowUpDate
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

// Create writes the report of a completed appointment the doctor attended.
func (s *DefaultReportService) Create(ctx context.Context, doctorID string, in models.ReportInput) (*models.Report, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	appt, err := s.Appointments.GetByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appt.DoctorID != doctorID {
		return nil, fmt.Errorf("appointment %s: %w", appt.ID, models.ErrForbidden)
	}
	if appt.Status != models.StatusCompleted {
		return nil, fmt.Errorf("reports can only be written for completed appointments: %w", models.ErrInvalidTransition)
	}
	existing, err := s.Repo.GetByAppointment(ctx, appt.ID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("report %s already exists for this appointment: %w", existing.ID, models.ErrConflict)
	case !errors.Is(err, models.ErrNotFound):
		return nil, err
	}

	now := s.now()
	rep := &models.Report{
		ID:              uuid.New().String(),
		AppointmentID:   appt.ID,
		PatientID:       appt.PatientID,
		DoctorID:        appt.DoctorID,
		PatientName:     appt.Patient.Name,
		DoctorName:      appt.Doctor.Name,
		Speciality:      appt.Doctor.Speciality,
		AppointmentDate: appt.Date,
		AppointmentTime: appt.Time,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	apply(rep, in)
	if err := s.Repo.Create(ctx, rep); err != nil {
		return nil, err
	}
	if err := s.Appointments.MarkReported(ctx, appt.ID); err != nil {
		utils.GetLogger().Warn("Failed to flag appointment as reported", zap.String("appointmentID", appt.ID), zap.Error(err))
	}
	return rep, nil
}

// Update lets the authoring doctor revise a report.
func (s *DefaultReportService) Update(ctx context.Context, doctorID, id string, in models.ReportInput) (*models.Report, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	rep, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rep.DoctorID != doctorID {
		return nil, fmt.Errorf("report %s: %w", id, models.ErrForbidden)
	}
	apply(rep, in)
	rep.UpdatedAt = s.now()
	if err := s.Repo.Update(ctx, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

func canRead(actor models.Actor, rep *models.Report) bool {
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RolePatient:
		return rep.PatientID == actor.ID
	case models.RoleDoctor:
		return rep.DoctorID == actor.ID
	}
	return false
}

func (s *DefaultReportService) Get(ctx context.Context, actor models.Actor, id string) (*models.Report, error) {
	rep, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canRead(actor, rep) {
		return nil, fmt.Errorf("report %s: %w", id, models.ErrForbidden)
	}
	return rep, nil
}

func (s *DefaultReportService) List(ctx context.Context, actor models.Actor) ([]models.Report, error) {
	switch actor.Role {
	case models.RolePatient:
		return s.Repo.ListByPatient(ctx, actor.ID)
	case models.RoleDoctor:
		return s.Repo.ListByDoctor(ctx, actor.ID)
	}
	return nil, fmt.Errorf("reports are listed per patient or doctor: %w", models.ErrForbidden)
}

func (s *DefaultReportService) RenderPDF(ctx context.Context, actor models.Actor, id string) ([]byte, *models.Report, error) {
	rep, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, nil, err
	}
	doc, err := renderPDF(s.ClinicName, rep)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to render report: %w", err)
	}
	return doc, rep, nil
}
