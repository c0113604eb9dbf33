package serviceRepo

import (
	"context"

	"clinichub/models"
)

// ServiceRepository defines methods for the service catalogue.
type ServiceRepository interface {
	Create(ctx context.Context, svc *models.Service) error
	GetByID(ctx context.Context, id string) (*models.Service, error)
	Update(ctx context.Context, svc *models.Service) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, onlyActive bool) ([]models.Service, error)
}
