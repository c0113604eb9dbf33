// models/user.go
package models

import "time"

// Role is the access role of an account.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

// User is an account of any role. Doctors share their ID with their Doctor profile.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	Phone        string    `bson:"phone" json:"phone"`
	Role         Role      `bson:"role" json:"role"`
	Gender       string    `bson:"gender,omitempty" json:"gender,omitempty"`
	Address      string    `bson:"address,omitempty" json:"address,omitempty"`
	DOB          string    `bson:"dob,omitempty" json:"dob,omitempty"`
	Image        string    `bson:"image,omitempty" json:"image,omitempty"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	TokenHash    string    `bson:"tokenHash,omitempty" json:"-"`
	FCMToken     string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// RegisterRequest is the patient sign-up payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// LoginRequest is the sign-in payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserUpdateRequest carries the profile fields a user may change; nil means unchanged.
type UserUpdateRequest struct {
	Name     *string `json:"name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Gender   *string `json:"gender,omitempty"`
	Address  *string `json:"address,omitempty"`
	DOB      *string `json:"dob,omitempty"`
	FCMToken *string `json:"fcmToken,omitempty"`
}

// Empty reports whether the request changes nothing.
func (r UserUpdateRequest) Empty() bool {
	return r.Name == nil && r.Phone == nil && r.Gender == nil && r.Address == nil && r.DOB == nil && r.FCMToken == nil
}

// Actor identifies the caller of a service operation.
type Actor struct {
	ID   string
	Role Role
}
