package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dj-idk/gym-backend/domain"
	"github.com/dj-idk/gym-backend/internal/infrastructure/repositories"
)

// allowed photo content types mapped to their stored extension.
var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ProfileUpdate carries the mutable profile fields; nil means unchanged.
type ProfileUpdate struct {
	FirstName   *string
	LastName    *string
	DateOfBirth *string
	Gender      *domain.Gender
	Bio         *string
	Height      *float64
	Weight      *float64
	City        *string
	Province    *string
	Address     *string
	PostalCode  *string
}

// ProfileService manages member profiles and photo uploads.
type ProfileService struct {
	profiles *repositories.ProfileRepository
	storage  domain.FileStorage
	maxBytes int64
}

func NewProfileService(profiles *repositories.ProfileRepository, storage domain.FileStorage, maxPhotoBytes int64) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		storage:  storage,
		maxBytes: maxPhotoBytes,
	}
}

// Get returns the profile, creating an empty one on first access.
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	profile = &domain.Profile{UserID: userID}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Update applies the non-nil fields and returns the fresh profile.
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, upd ProfileUpdate) (*domain.Profile, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upd.FirstName != nil {
		profile.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		profile.LastName = *upd.LastName
	}
	if upd.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *upd.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("%w: date of birth must be YYYY-MM-DD", domain.ErrConflict)
		}
		profile.DateOfBirth = &dob
	}
	if upd.Gender != nil {
		if *upd.Gender != domain.GenderMale && *upd.Gender != domain.GenderFemale {
			return nil, fmt.Errorf("%w: unknown gender", domain.ErrConflict)
		}
		profile.Gender = upd.Gender
	}
	if upd.Bio != nil {
		profile.Bio = *upd.Bio
	}
	if upd.Height != nil {
		profile.Height = upd.Height
	}
	if upd.Weight != nil {
		profile.Weight = upd.Weight
	}
	if upd.City != nil {
		profile.City = *upd.City
	}
	if upd.Province != nil {
		profile.Province = *upd.Province
	}
	if upd.Address != nil {
		profile.Address = *upd.Address
	}
	if upd.PostalCode != nil {
		profile.PostalCode = *upd.PostalCode
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UploadPhoto stores a new profile photo, replacing any previous one.
func (s *ProfileService) UploadPhoto(ctx context.Context, userID uuid.UUID, fileName, contentType string, body io.Reader, size int64) (*domain.ProfilePhoto, error) {
	ext, ok := photoExtensions[strings.ToLower(contentType)]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported content type %q", domain.ErrConflict, contentType)
	}
	if size <= 0 || size > s.maxBytes {
		return nil, fmt.Errorf("%w: photo exceeds %d bytes", domain.ErrConflict, s.maxBytes)
	}

	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := path.Join("profiles", profile.ID.String(), uuid.New().String()+ext)
	url, err := s.storage.Upload(ctx, key, contentType, body, size)
	if err != nil {
		return nil, fmt.Errorf("failed to upload photo: %w", err)
	}

	// Drop the previous photo after the new one is safely stored
	if profile.Photo != nil {
		old := profile.Photo
		if err := s.profiles.DeletePhoto(ctx, old.ID); err != nil {
			return nil, err
		}
		if err := s.storage.Delete(ctx, old.ObjectKey); err != nil {
			return nil, fmt.Errorf("failed to delete old photo: %w", err)
		}
	}

	photo := &domain.ProfilePhoto{
		ProfileID:   profile.ID,
		FileName:    fileName,
		ObjectKey:   key,
		URL:         url,
		ContentType: contentType,
		Size:        size,
	}
	if err := s.profiles.SavePhoto(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

// DeletePhoto removes the stored photo and its object.
func (s *ProfileService) DeletePhoto(ctx context.Context, userID, photoID uuid.UUID) error {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	photo, err := s.profiles.FindPhoto(ctx, profile.ID, photoID)
	if err != nil {
		return err
	}
	if err := s.profiles.DeletePhoto(ctx, photo.ID); err != nil {
		return err
	}
	return s.storage.Delete(ctx, photo.ObjectKey)
}
