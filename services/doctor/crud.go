package doctor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"clinichub/models"
	"clinichub/utils"

	"go.uber.org/zap"
)

// CreateDoctor creates the doctor's login and profile. Both share one ID.
func (s *DefaultDoctorService) CreateDoctor(ctx context.Context, in models.DoctorInput) (*models.Doctor, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	account, err := s.Accounts.CreateAccount(ctx, in.Name, in.Email, in.Phone, in.Password, models.RoleDoctor)
	if err != nil {
		return nil, err
	}

	now := s.now()
	doc := &models.Doctor{
		ID:        account.ID,
		Email:     account.Email,
		Available: true,
		CreatedAt: now,
	}
	applyInput(doc, in)
	doc.UpdatedAt = now

	if err := s.Repo.Create(ctx, doc); err != nil {
		// Roll back the login so the email can be reused.
		if delErr := s.Users.Delete(ctx, account.ID); delErr != nil {
			utils.GetLogger().Error("Failed to roll back doctor account", zap.String("id", account.ID), zap.Error(delErr))
		}
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}
	utils.GetLogger().Info("Doctor created", zap.String("id", doc.ID), zap.String("speciality", doc.Speciality))
	return doc, nil
}

func applyInput(doc *models.Doctor, in models.DoctorInput) {
	doc.Name = strings.TrimSpace(in.Name)
	if in.Phone != "" {
		doc.Phone = strings.TrimSpace(in.Phone)
	}
	doc.Speciality = strings.TrimSpace(in.Speciality)
	doc.Degree = in.Degree
	doc.Experience = in.Experience
	doc.About = in.About
	doc.Fees = in.Fees
	doc.Address = in.Address
	if in.Available != nil {
		doc.Available = *in.Available
	}
	doc.ServiceIDs = in.ServiceIDs
	if doc.ServiceIDs == nil {
		doc.ServiceIDs = []string{}
	}
	doc.SlotMinutes = in.SlotMinutes
	if doc.SlotMinutes == 0 {
		doc.SlotMinutes = models.DefaultSlotMinutes
	}
	doc.WorkStart = in.WorkStart
	if doc.WorkStart == "" {
		doc.WorkStart = models.DefaultWorkStart
	}
	doc.WorkEnd = in.WorkEnd
	if doc.WorkEnd == "" {
		doc.WorkEnd = models.DefaultWorkEnd
	}
}

// UpdateDoctor replaces the editable profile fields and mirrors name and phone onto the login.
func (s *DefaultDoctorService) UpdateDoctor(ctx context.Context, id string, in models.DoctorInput) (*models.Doctor, error) {
	if err := validateUpdate(in); err != nil {
		return nil, err
	}
	doc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyInput(doc, in)
	doc.UpdatedAt = s.now()
	if err := s.Repo.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to update doctor: %w", err)
	}

	upd := models.UserUpdateRequest{Name: &doc.Name}
	if in.Phone != "" {
		upd.Phone = &doc.Phone
	}
	if err := s.Users.UpdateProfile(ctx, id, upd); err != nil {
		utils.GetLogger().Warn("Failed to sync doctor login profile", zap.String("id", id), zap.Error(err))
	}
	return doc, nil
}

// DeleteDoctor removes a doctor with no active appointments, together with its login.
func (s *DefaultDoctorService) DeleteDoctor(ctx context.Context, id string) error {
	doc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	active, err := s.Appointments.CountActiveForDoctor(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check appointments: %w", err)
	}
	if active > 0 {
		return fmt.Errorf("doctor has %d active appointments: %w", active, models.ErrConflict)
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}
	if err := s.Users.Delete(ctx, id); err != nil && !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("failed to delete doctor account: %w", err)
	}
	if s.Storage != nil && doc.Image != "" {
		if err := s.Storage.DeleteFile(ctx, imageFolder+"/"+id); err != nil {
			utils.GetLogger().Warn("Failed to delete doctor image", zap.String("id", id), zap.Error(err))
		}
	}
	return nil
}

func (s *DefaultDoctorService) SetAvailability(ctx context.Context, id string, available bool) (*models.Doctor, error) {
	if err := s.Repo.SetAvailability(ctx, id, available); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, id)
}

// UploadImage stores a profile photo and records its URL on profile and login.
func (s *DefaultDoctorService) UploadImage(ctx context.Context, id string, file io.Reader) (*models.Doctor, error) {
	if s.Storage == nil {
		return nil, fmt.Errorf("image storage is not configured: %w", models.ErrUnavailable)
	}
	if _, err := s.Repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	url, err := s.Storage.UploadImage(ctx, file, imageFolder, id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SetImage(ctx, id, url); err != nil {
		return nil, err
	}
	if err := s.Users.SetImage(ctx, id, url); err != nil {
		utils.GetLogger().Warn("Failed to sync doctor login image", zap.String("id", id), zap.Error(err))
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultDoctorService) GetDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultDoctorService) ListDoctors(ctx context.Context, filter models.DoctorFilter) ([]models.Doctor, error) {
	return s.Repo.List(ctx, filter)
}
