package appointment

import (
	"context"
	"fmt"

	"clinichub/models"
)

func (s *DefaultAppointmentService) List(ctx context.Context, actor models.Actor, status string) ([]models.Appointment, error) {
	filter := models.AppointmentFilter{}
	if status != "" {
		st := models.AppointmentStatus(status)
		if !st.Valid() {
			return nil, &models.ValidationError{Fields: map[string]string{"status": "unknown status"}}
		}
		filter.Statuses = []models.AppointmentStatus{st}
	}
	switch actor.Role {
	case models.RolePatient:
		filter.PatientID = actor.ID
	case models.RoleDoctor:
		filter.DoctorID = actor.ID
	case models.RoleAdmin:
	default:
		return nil, models.ErrForbidden
	}
	appts, err := s.Repo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appts, nil
}

func (s *DefaultAppointmentService) latest(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return s.Repo.Find(ctx, models.AppointmentFilter{
		DoctorID:    doctorID,
		NewestFirst: true,
		Limit:       latestBookingsLimit,
	})
}

func (s *DefaultAppointmentService) AdminDashboard(ctx context.Context) (*models.AdminDashboard, error) {
	doctors, err := s.Doctors.Count(ctx)
	if err != nil {
		return nil, err
	}
	patients, err := s.Users.CountByRole(ctx, models.RolePatient)
	if err != nil {
		return nil, err
	}
	stats, err := s.Repo.Stats(ctx, "")
	if err != nil {
		return nil, err
	}
	latest, err := s.latest(ctx, "")
	if err != nil {
		return nil, err
	}
	return &models.AdminDashboard{
		Doctors:        doctors,
		Patients:       patients,
		Appointments:   stats.Total,
		ByStatus:       stats.ByStatus,
		LatestBookings: latest,
	}, nil
}

func (s *DefaultAppointmentService) DoctorDashboard(ctx context.Context, doctorID string) (*models.DoctorDashboard, error) {
	stats, err := s.Repo.Stats(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	latest, err := s.latest(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return &models.DoctorDashboard{
		Earnings:       stats.Earnings,
		Patients:       stats.Patients,
		Appointments:   stats.Total,
		ByStatus:       stats.ByStatus,
		LatestBookings: latest,
	}, nil
}
