package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clinichub/models"
	"clinichub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a patient account and returns its first token.
func (s *DefaultUserService) Register(ctx context.Context, req models.RegisterRequest) (*AuthResponse, error) {
	usr, err := s.CreateAccount(ctx, req.Name, req.Email, req.Phone, req.Password, models.RolePatient)
	if err != nil {
		return nil, err
	}
	return s.issueToken(ctx, usr)
}

// CreateAccount validates and persists a new account.
func (s *DefaultUserService) CreateAccount(ctx context.Context, name, email, phone, password string, role models.Role) (*models.User, error) {
	if err := ValidateAccount(name, email, phone, password); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	// Hash the provided password.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	now := time.Now()
	usr := &models.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Phone:        strings.TrimSpace(phone),
		Role:         role,
		PasswordHash: string(hashedPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, usr); err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, fmt.Errorf("a user with this email already exists: %w", models.ErrConflict)
		}
		utils.GetLogger().Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return usr, nil
}

// SeedAdmin creates the admin account unless the email is already taken.
func (s *DefaultUserService) SeedAdmin(ctx context.Context, email, password string) (bool, error) {
	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, models.ErrNotFound) {
		return false, err
	}
	if _, err := s.CreateAccount(ctx, "Administrator", email, "+10000000000", password, models.RoleAdmin); err != nil {
		return false, err
	}
	utils.GetLogger().Info("Admin account created", zap.String("email", email))
	return true, nil
}
