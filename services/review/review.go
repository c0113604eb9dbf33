package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	appointmentRepo "clinichub/database/repository/appointment"
	reviewRepo "clinichub/database/repository/review"
	"clinichub/models"
	"clinichub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReviewService handles patient reviews of completed appointments.
type ReviewService interface {
	Submit(ctx context.Context, patientID string, req models.ReviewRequest) (*models.Review, error)
	DoctorReviews(ctx context.Context, doctorID string) (*models.DoctorReviews, error)
}

// DefaultReviewService is the production implementation.
type DefaultReviewService struct {
	Repo         reviewRepo.ReviewRepository
	Appointments appointmentRepo.AppointmentRepository
}

const maxCommentLength = 1000

// Submit stores a review. Only the patient of a completed appointment may
// review it, and only once.
func (s *DefaultReviewService) Submit(ctx context.Context, patientID string, req models.ReviewRequest) (*models.Review, error) {
	verr := &models.ValidationError{}
	if req.Rating < 1 || req.Rating > 5 {
		verr.Add("rating", "rating must be between 1 and 5")
	}
	comment := strings.TrimSpace(req.Comment)
	if len(comment) > maxCommentLength {
		verr.Add("comment", fmt.Sprintf("comment must be at most %d characters", maxCommentLength))
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	appt, err := s.Appointments.GetByID(ctx, req.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appt.PatientID != patientID {
		return nil, fmt.Errorf("appointment %s: %w", appt.ID, models.ErrForbidden)
	}
	if appt.Status != models.StatusCompleted {
		return nil, fmt.Errorf("only completed appointments can be reviewed: %w", models.ErrInvalidTransition)
	}
	if appt.Reviewed {
		return nil, models.ErrReviewExists
	}
	// The reviewed flag is best effort; the stored review is authoritative.
	if _, err := s.Repo.GetByAppointment(ctx, appt.ID); err == nil {
		return nil, models.ErrReviewExists
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}

	review := &models.Review{
		ID:            uuid.New().String(),
		AppointmentID: appt.ID,
		PatientID:     patientID,
		PatientName:   appt.Patient.Name,
		DoctorID:      appt.DoctorID,
		Rating:        req.Rating,
		Comment:       comment,
		CreatedAt:     time.Now(),
	}
	if err := s.Repo.Create(ctx, review); err != nil {
		if errors.Is(err, models.ErrReviewExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save review: %w", err)
	}
	if err := s.Appointments.MarkReviewed(ctx, appt.ID); err != nil {
		utils.GetLogger().Warn("Failed to flag appointment as reviewed", zap.String("appointmentID", appt.ID), zap.Error(err))
	}
	return review, nil
}

func (s *DefaultReviewService) DoctorReviews(ctx context.Context, doctorID string) (*models.DoctorReviews, error) {
	reviews, err := s.Repo.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	avg, count, err := s.Repo.DoctorRating(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return &models.DoctorReviews{DoctorID: doctorID, Average: avg, Count: count, Reviews: reviews}, nil
}
