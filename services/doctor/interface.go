package doctor

import (
	"context"
	"io"
	"time"

	appointmentRepo "clinichub/database/repository/appointment"
	doctorRepo "clinichub/database/repository/doctor"
	userRepo "clinichub/database/repository/user"
	"clinichub/models"
	"clinichub/services/storage"
	"clinichub/services/user"
)

// imageFolder is the Cloudinary folder holding doctor photos.
const imageFolder = "doctors"

// DoctorService defines doctor profile management and slot lookup.
type DoctorService interface {
	CreateDoctor(ctx context.Context, in models.DoctorInput) (*models.Doctor, error)
	UpdateDoctor(ctx context.Context, id string, in models.DoctorInput) (*models.Doctor, error)
	DeleteDoctor(ctx context.Context, id string) error
	SetAvailability(ctx context.Context, id string, available bool) (*models.Doctor, error)
	UploadImage(ctx context.Context, id string, file io.Reader) (*models.Doctor, error)
	GetDoctor(ctx context.Context, id string) (*models.Doctor, error)
	ListDoctors(ctx context.Context, filter models.DoctorFilter) ([]models.Doctor, error)
	// Slots lists the free and taken slots of a doctor on a date.
	Slots(ctx context.Context, id, date string) (*models.DaySlots, error)
}

// DefaultDoctorService is the production implementation.
type DefaultDoctorService struct {
	Repo         doctorRepo.DoctorRepository
	Users        userRepo.UserRepository
	Accounts     user.UserService
	Appointments appointmentRepo.AppointmentRepository
	Storage      storage.StorageService
	Location     *time.Location
	Now          func() time.Time
}

func (s *DefaultDoctorService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultDoctorService) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}
