package user

import (
	"context"
	"time"

	userRepo "clinichub/database/repository/user"
	"clinichub/models"
)

// UserService defines account, authentication and profile operations.
type UserService interface {
	// Register validates a patient sign-up, creates the account and signs it in.
	Register(ctx context.Context, req models.RegisterRequest) (*AuthResponse, error)
	// Login verifies credentials and issues a token.
	Login(ctx context.Context, req models.LoginRequest) (*AuthResponse, error)
	// Logout revokes the active token of a user.
	Logout(ctx context.Context, userID string) error
	// Authenticate resolves a bearer token to the calling actor.
	Authenticate(ctx context.Context, token string) (models.Actor, error)

	// CreateAccount creates a login of the given role without signing it in.
	CreateAccount(ctx context.Context, name, email, phone, password string, role models.Role) (*models.User, error)
	// SeedAdmin creates the admin account if no user holds that email yet.
	SeedAdmin(ctx context.Context, email, password string) (bool, error)

	GetUser(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, upd models.UserUpdateRequest) (*models.User, error)
	ListPatients(ctx context.Context) ([]models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Tokens   TokenCache
	TokenTTL time.Duration
}

// AuthResponse contains the signed-in user's identity and token.
type AuthResponse struct {
	ID    string      `json:"id"`
	Token string      `json:"token"`
	Role  models.Role `json:"role"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Image string      `json:"image,omitempty"`
}

func (s *DefaultUserService) tokenTTL() time.Duration {
	if s.TokenTTL <= 0 {
		return 72 * time.Hour
	}
	return s.TokenTTL
}
