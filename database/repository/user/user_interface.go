package userRepo

import (
	"context"

	"clinichub/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// Create inserts a new user; a duplicate email yields models.ErrConflict.
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves a user by their unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by their email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateProfile applies the non-nil fields of upd.
	UpdateProfile(ctx context.Context, id string, upd models.UserUpdateRequest) error
	// SetTokenHash stores (or clears, when empty) the active token hash.
	SetTokenHash(ctx context.Context, id, hash string) error
	// SetImage stores the profile image URL.
	SetImage(ctx context.Context, id, url string) error
	// Delete removes a user record by its ID.
	Delete(ctx context.Context, id string) error
	// List returns users of the given role, or every user when role is empty.
	List(ctx context.Context, role models.Role) ([]models.User, error)
	// CountByRole counts users of a role.
	CountByRole(ctx context.Context, role models.Role) (int64, error)
}
