package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/printdesk/daybook-api/internal/domain/entity"
	"github.com/printdesk/daybook-api/internal/domain/enum"
	"github.com/printdesk/daybook-api/internal/domain/repository"
	"github.com/printdesk/daybook-api/pkg/apperror"
)

// CatalogService manages the priced service catalog
type CatalogService struct {
	serviceRepo repository.ServiceRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(serviceRepo repository.ServiceRepository) *CatalogService {
	return &CatalogService{serviceRepo: serviceRepo}
}

// ServiceInput carries the editable fields of a catalog entry. Price is in
// rupees and is stored as paise.
type ServiceInput struct {
	ServiceType      enum.ServiceType
	Name             string
	Price            float64
	PaperSize        string
	ColorType        enum.ColorType
	PaperOrientation enum.PaperOrientation
}

func (in *ServiceInput) validate() []apperror.FieldError {
	var fieldErrs []apperror.FieldError

	if !in.ServiceType.Valid() {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "service_type", Message: "unknown service type"})
	}
	if in.Name == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if in.Price < 0 {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "price", Message: "must not be negative"})
	}
	if in.ColorType != "" && !in.ColorType.Valid() {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "color_type", Message: "must be black_white or color"})
	}
	if in.PaperOrientation != "" && !in.PaperOrientation.Valid() {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "paper_orientation", Message: "must be single_side or both_sides"})
	}

	return fieldErrs
}

func (in *ServiceInput) apply(svc *entity.Service) {
	svc.ServiceType = in.ServiceType
	svc.Name = in.Name
	svc.SetPriceFromDecimal(in.Price)

	svc.PaperSize = optional(in.PaperSize)
	svc.ColorType = nil
	svc.PaperOrientation = nil
	if in.ColorType != "" && in.ServiceType.SupportsColorType() {
		ct := in.ColorType
		svc.ColorType = &ct
	}
	if in.PaperOrientation != "" && in.ServiceType.SupportsOrientation() {
		po := in.PaperOrientation
		svc.PaperOrientation = &po
	}
}

// ListServices returns the catalog ordered by category then name
func (s *CatalogService) ListServices(ctx context.Context) ([]entity.Service, error) {
	services, err := s.serviceRepo.List(ctx)
	if err != nil {
		return nil, apperror.NewPersistenceError("list services", err)
	}
	return services, nil
}

// GetService returns a single catalog entry
func (s *CatalogService) GetService(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError("load service", err)
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Service")
	}
	return svc, nil
}

// CreateService adds a new entry to the catalog
func (s *CatalogService) CreateService(ctx context.Context, input *ServiceInput) (*entity.Service, error) {
	if fieldErrs := input.validate(); len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	svc := &entity.Service{}
	input.apply(svc)

	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return nil, apperror.NewPersistenceError("create service", err)
	}
	return svc, nil
}

// UpdateService changes an existing catalog entry. Price changes only affect
// transactions recorded afterwards; past transactions keep their snapshots.
func (s *CatalogService) UpdateService(ctx context.Context, id uuid.UUID, input *ServiceInput) (*entity.Service, error) {
	if fieldErrs := input.validate(); len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewPersistenceError("load service", err)
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Service")
	}

	input.apply(svc)

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, apperror.NewPersistenceError("update service", err)
	}
	return svc, nil
}

// DeleteService soft-deletes a catalog entry. Recorded transactions keep
// their price snapshots, so history stays intact.
func (s *CatalogService) DeleteService(ctx context.Context, id uuid.UUID) error {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NewPersistenceError("load service", err)
	}
	if svc == nil {
		return apperror.NewNotFoundError("Service")
	}

	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		return apperror.NewPersistenceError("delete service", err)
	}
	return nil
}
