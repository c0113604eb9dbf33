package catalogue

import (
	"context"
	"fmt"
	"strings"
	"time"

	serviceRepo "clinichub/database/repository/service"
	"clinichub/models"

	"github.com/google/uuid"
)

// CatalogueService manages the clinic's bookable services.
type CatalogueService interface {
	Create(ctx context.Context, in models.ServiceInput) (*models.Service, error)
	Update(ctx context.Context, id string, in models.ServiceInput) (*models.Service, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Service, error)
	List(ctx context.Context, onlyActive bool) ([]models.Service, error)
}

// DefaultCatalogueService is the production implementation.
type DefaultCatalogueService struct {
	Repo serviceRepo.ServiceRepository
}

const defaultDurationMinutes = 30

func validate(in models.ServiceInput) error {
	verr := &models.ValidationError{}
	if strings.TrimSpace(in.Name) == "" {
		verr.Add("name", "name is required")
	}
	if in.Price < 0 {
		verr.Add("price", "price cannot be negative")
	}
	if in.DurationMinutes < 0 {
		verr.Add("durationMinutes", "duration cannot be negative")
	}
	return verr.OrNil()
}

func apply(svc *models.Service, in models.ServiceInput) {
	svc.Name = strings.TrimSpace(in.Name)
	svc.Description = in.Description
	svc.Price = in.Price
	svc.DurationMinutes = in.DurationMinutes
	if svc.DurationMinutes == 0 {
		svc.DurationMinutes = defaultDurationMinutes
	}
	if in.Active != nil {
		svc.Active = *in.Active
	}
}

func (s *DefaultCatalogueService) Create(ctx context.Context, in models.ServiceInput) (*models.Service, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	now := time.Now()
	svc := &models.Service{ID: uuid.New().String(), Active: true, CreatedAt: now, UpdatedAt: now}
	apply(svc, in)
	if err := s.Repo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return svc, nil
}

func (s *DefaultCatalogueService) Update(ctx context.Context, id string, in models.ServiceInput) (*models.Service, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	svc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(svc, in)
	svc.UpdatedAt = time.Now()
	if err := s.Repo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return svc, nil
}

func (s *DefaultCatalogueService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func (s *DefaultCatalogueService) Get(ctx context.Context, id string) (*models.Service, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultCatalogueService) List(ctx context.Context, onlyActive bool) ([]models.Service, error) {
	return s.Repo.List(ctx, onlyActive)
}
