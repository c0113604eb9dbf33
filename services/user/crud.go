package user

import (
	"context"
	"fmt"

	"clinichub/models"
)

// GetUser retrieves a user by ID.
func (s *DefaultUserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.Repo.GetByID(ctx, userID)
}

// UpdateProfile validates and applies a profile change.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, upd models.UserUpdateRequest) (*models.User, error) {
	if upd.Empty() {
		return nil, &models.ValidationError{Fields: map[string]string{"body": "no fields to update"}}
	}
	verr := &models.ValidationError{}
	if upd.Name != nil && *upd.Name == "" {
		verr.Add("name", "name cannot be empty")
	}
	if upd.Phone != nil && !ValidPhone(*upd.Phone) {
		verr.Add("phone", "enter a valid phone number")
	}
	if upd.DOB != nil && *upd.DOB != "" {
		if _, err := models.ParseSlot(*upd.DOB, "00:00", nil); err != nil {
			verr.Add("dob", "use the YYYY-MM-DD format")
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if err := s.Repo.UpdateProfile(ctx, userID, upd); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.Repo.GetByID(ctx, userID)
}

// ListPatients returns every patient account for the admin console.
func (s *DefaultUserService) ListPatients(ctx context.Context) ([]models.User, error) {
	users, err := s.Repo.List(ctx, models.RolePatient)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patients: %w", err)
	}
	return users, nil
}
