package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dj-idk/gym-backend/domain"
	"github.com/dj-idk/gym-backend/internal/infrastructure/repositories"
)

// CatalogService manages the purchasable service catalog.
type CatalogService struct {
	catalog *repositories.CatalogRepository
}

func NewCatalogService(catalog *repositories.CatalogRepository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

func (s *CatalogService) CreateCategory(ctx context.Context, name, description string) (*domain.ServiceCategory, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", domain.ErrConflict)
	}
	category := &domain.ServiceCategory{Name: name, Description: description}
	if err := s.catalog.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.ServiceCategory, error) {
	return s.catalog.ListCategories(ctx)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, name, description string) (*domain.ServiceCategory, error) {
	category, err := s.catalog.FindCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		category.Name = name
	}
	category.Description = description
	if err := s.catalog.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory refuses while services still reference the category.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.catalog.DeleteCategory(ctx, id)
}

func (s *CatalogService) CreateService(ctx context.Context, categoryID uuid.UUID, name, description string, price int64, durationDays, capacity int) (*domain.Service, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: service name is required", domain.ErrConflict)
	}
	if price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", domain.ErrConflict)
	}
	if _, err := s.catalog.FindCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	service := &domain.Service{
		CategoryID:   categoryID,
		Name:         name,
		Description:  description,
		Price:        price,
		DurationDays: durationDays,
		Capacity:     capacity,
		IsActive:     true,
	}
	if err := s.catalog.CreateService(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *CatalogService) GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	return s.catalog.FindService(ctx, id)
}

type ServiceUpdate struct {
	Name         *string
	Description  *string
	Price        *int64
	DurationDays *int
	Capacity     *int
	IsActive     *bool
}

func (s *CatalogService) UpdateService(ctx context.Context, id uuid.UUID, upd ServiceUpdate) (*domain.Service, error) {
	service, err := s.catalog.FindService(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		service.Name = *upd.Name
	}
	if upd.Description != nil {
		service.Description = *upd.Description
	}
	if upd.Price != nil {
		if *upd.Price < 0 {
			return nil, fmt.Errorf("%w: price cannot be negative", domain.ErrConflict)
		}
		service.Price = *upd.Price
	}
	if upd.DurationDays != nil {
		service.DurationDays = *upd.DurationDays
	}
	if upd.Capacity != nil {
		service.Capacity = *upd.Capacity
	}
	if upd.IsActive != nil {
		service.IsActive = *upd.IsActive
	}
	if err := s.catalog.UpdateService(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *CatalogService) DeleteService(ctx context.Context, id uuid.UUID) error {
	return s.catalog.DeleteService(ctx, id)
}

// ListServices shows only active offerings unless includeInactive is set.
func (s *CatalogService) ListServices(ctx context.Context, categoryID *uuid.UUID, includeInactive bool, limit, skip int) ([]domain.Service, int64, error) {
	return s.catalog.ListServices(ctx, categoryID, !includeInactive, limit, skip)
}
