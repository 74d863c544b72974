package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dj-idk/gym-backend/domain"
)

// ProfileRepository persists member profiles and their photos.
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.db.WithContext(ctx).Preload("Photo").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *ProfileRepository) SavePhoto(ctx context.Context, photo *domain.ProfilePhoto) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *ProfileRepository) FindPhoto(ctx context.Context, profileID, photoID uuid.UUID) (*domain.ProfilePhoto, error) {
	var photo domain.ProfilePhoto
	err := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", photoID, profileID).First(&photo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &photo, nil
}

func (r *ProfileRepository) DeletePhoto(ctx context.Context, photoID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.ProfilePhoto{}, "id = ?", photoID).Error
}
