package doctorRepo

import (
	"context"

	"clinichub/models"
)

// DoctorRepository defines methods for doctor profile access.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *models.Doctor) error
	GetByID(ctx context.Context, id string) (*models.Doctor, error)
	Update(ctx context.Context, doctor *models.Doctor) error
	SetAvailability(ctx context.Context, id string, available bool) error
	SetImage(ctx context.Context, id, url string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter models.DoctorFilter) ([]models.Doctor, error)
	Count(ctx context.Context) (int64, error)
}
