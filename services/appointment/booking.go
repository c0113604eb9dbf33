package appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clinichub/models"
	"clinichub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// checkSlot validates that date and clock name a future slot the doctor works.
func (s *DefaultAppointmentService) checkSlot(doc *models.Doctor, date, clock string) (time.Time, error) {
	verr := &models.ValidationError{}
	start, perr := models.ParseSlot(date, clock, s.location())
	if perr != nil {
		verr.Add("date", "use YYYY-MM-DD and HH:MM")
		return time.Time{}, verr
	}
	if !start.After(s.now()) {
		verr.Add("date", "appointments must be booked in the future")
	}
	if !doc.HasSlot(clock) {
		verr.Add("time", "not one of the doctor's slots")
	}
	if err := verr.OrNil(); err != nil {
		return time.Time{}, err
	}
	if !doc.Available {
		return time.Time{}, fmt.Errorf("doctor is not accepting appointments: %w", models.ErrConflict)
	}
	return start, nil
}

func (s *DefaultAppointmentService) Book(ctx context.Context, patientID string, req models.BookAppointmentRequest) (*models.Appointment, error) {
	doc, err := s.Doctors.GetByID(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}
	start, err := s.checkSlot(doc, req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	patient, err := s.Users.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	appt := &models.Appointment{
		ID:        uuid.New().String(),
		PatientID: patientID,
		DoctorID:  doc.ID,
		Date:      req.Date,
		Time:      req.Time,
		StartAt:   start,
		Status:    models.StatusBooked,
		Reason:    strings.TrimSpace(req.Reason),
		Amount:    doc.Fees,
		Doctor: models.DoctorSnapshot{
			Name:       doc.Name,
			Speciality: doc.Speciality,
			Image:      doc.Image,
			Fees:       doc.Fees,
		},
		Patient: models.PatientSnapshot{
			Name:  patient.Name,
			Phone: patient.Phone,
			Email: patient.Email,
		},
	}

	if req.ServiceID != "" {
		svc, err := s.Services.GetByID(ctx, req.ServiceID)
		if err != nil {
			return nil, err
		}
		if !svc.Active || !doc.OffersService(svc.ID) {
			return nil, &models.ValidationError{Fields: map[string]string{"serviceId": "this doctor does not offer the selected service"}}
		}
		appt.ServiceID = svc.ID
		appt.Service = models.ServiceSnapshot{Name: svc.Name, Price: svc.Price}
		if svc.Price > 0 {
			appt.Amount = svc.Price
		}
	}

	now := s.now()
	appt.CreatedAt = now
	appt.UpdatedAt = now
	if err := s.Repo.Create(ctx, appt); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("Appointment booked",
		zap.String("appointmentID", appt.ID),
		zap.String("doctorID", appt.DoctorID),
		zap.String("slot", appt.Date+" "+appt.Time),
	)
	s.notify(ctx, appt, models.NotificationBooked, appt.PatientID, appt.DoctorID)
	s.scheduleReminder(ctx, appt)
	return appt, nil
}

// notify sends kind to each recipient. Failures never fail the action.
func (s *DefaultAppointmentService) notify(ctx context.Context, appt *models.Appointment, kind models.NotificationType, recipients ...string) {
	if s.Notifier == nil {
		return
	}
	for _, userID := range recipients {
		if err := s.Notifier.NotifyAppointment(ctx, userID, appt, kind); err != nil {
			utils.GetLogger().Error("Failed to create notification",
				zap.String("appointmentID", appt.ID),
				zap.String("userID", userID),
				zap.String("type", string(kind)),
				zap.Error(err),
			)
		}
	}
}

func (s *DefaultAppointmentService) scheduleReminder(ctx context.Context, appt *models.Appointment) {
	if s.Reminders == nil {
		return
	}
	if err := s.Reminders.ScheduleReminder(ctx, appt); err != nil {
		utils.GetLogger().Error("Failed to schedule reminder", zap.String("appointmentID", appt.ID), zap.Error(err))
	}
}
