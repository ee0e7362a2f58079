package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/printdesk/daybook-api/internal/domain/entity"
)

// ServiceRepository defines catalog persistence operations
type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Service, error)
	// List returns all services ordered by (service_type, name)
	List(ctx context.Context) ([]entity.Service, error)
	Update(ctx context.Context, service *entity.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
}
