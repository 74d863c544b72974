package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dj-idk/gym-backend/domain"
)

// CatalogRepository persists service categories and services.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) CreateCategory(ctx context.Context, category *domain.ServiceCategory) error {
	err := r.db.WithContext(ctx).Create(category).Error
	if err != nil && isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

func (r *CatalogRepository) FindCategory(ctx context.Context, id uuid.UUID) (*domain.ServiceCategory, error) {
	var category domain.ServiceCategory
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]domain.ServiceCategory, error) {
	var categories []domain.ServiceCategory
	err := r.db.WithContext(ctx).Order("name").Find(&categories).Error
	return categories, err
}

func (r *CatalogRepository) UpdateCategory(ctx context.Context, category *domain.ServiceCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *CatalogRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Service{}).
		Where("category_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	res := r.db.WithContext(ctx).Delete(&domain.ServiceCategory{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CatalogRepository) CreateService(ctx context.Context, service *domain.Service) error {
	return r.db.WithContext(ctx).Create(service).Error
}

func (r *CatalogRepository) FindService(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	var service domain.Service
	err := r.db.WithContext(ctx).First(&service, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &service, nil
}

func (r *CatalogRepository) UpdateService(ctx context.Context, service *domain.Service) error {
	return r.db.WithContext(ctx).Save(service).Error
}

func (r *CatalogRepository) DeleteService(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.Service{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListServices returns active services, optionally filtered by category.
func (r *CatalogRepository) ListServices(ctx context.Context, categoryID *uuid.UUID, activeOnly bool, limit, skip int) ([]domain.Service, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Service{})
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var services []domain.Service
	if err := q.Limit(limit).Offset(skip).Order("name").Find(&services).Error; err != nil {
		return nil, 0, err
	}
	return services, total, nil
}
