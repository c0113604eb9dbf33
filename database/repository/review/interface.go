package reviewRepo

import (
	"context"

	"clinichub/models"
)

// ReviewRepository defines methods for appointment review storage.
type ReviewRepository interface {
	// Create inserts a review; a second review of the same appointment yields models.ErrReviewExists.
	Create(ctx context.Context, review *models.Review) error
	GetByAppointment(ctx context.Context, appointmentID string) (*models.Review, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]models.Review, error)
	// DoctorRating returns the average rating and review count of a doctor.
	DoctorRating(ctx context.Context, doctorID string) (avg float64, count int64, err error)
}
