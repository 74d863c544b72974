package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dj-idk/gym-backend/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM.
type UserRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository.
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID implements domain.UserRepository.
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Preload("Roles").Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByPhone implements domain.UserRepository.
func (r *UserRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.FindByIdentifier(ctx, domain.IdentPhone, phone)
}

// FindByIdentifier implements domain.UserRepository. The kind discriminates
// which credential column the value is matched against.
func (r *UserRepositoryImpl) FindByIdentifier(ctx context.Context, kind domain.IdentifierKind, value string) (*domain.User, error) {
	var column string
	switch kind {
	case domain.IdentEmail:
		column = "email"
	case domain.IdentUsername:
		column = "username"
	case domain.IdentPhone:
		column = "phone"
	default:
		return nil, fmt.Errorf("unknown identifier kind %q", kind)
	}

	var user domain.User
	err := r.db.WithContext(ctx).Preload("Roles").Where(column+" = ?", value).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmailToken implements domain.UserRepository.
func (r *UserRepositoryImpl) FindByEmailToken(ctx context.Context, token string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("email_token = ?", token).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Update implements domain.UserRepository.
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// MarkVerified implements domain.UserRepository. Verification also moves the
// account out of pending_verification.
func (r *UserRepositoryImpl) MarkVerified(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", userID).
		Updates(map[string]any{
			"is_verified": true,
			"status":      domain.StatusActive,
		}).Error
}

// SetPassword implements domain.UserRepository.
func (r *UserRepositoryImpl) SetPassword(ctx context.Context, userID uuid.UUID, hash string) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", userID).
		Update("password", hash).Error
}

// TouchLastLogin implements domain.UserRepository.
func (r *UserRepositoryImpl) TouchLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", userID).
		Update("last_login", at).Error
}

// SetActive implements domain.UserRepository.
func (r *UserRepositoryImpl) SetActive(ctx context.Context, userID uuid.UUID, active bool) error {
	status := domain.StatusActive
	if !active {
		status = domain.StatusInactive
	}
	return r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", userID).
		Updates(map[string]any{"is_active": active, "status": status}).Error
}

// AssignRole implements domain.UserRepository.
func (r *UserRepositoryImpl) AssignRole(ctx context.Context, userID uuid.UUID, role *domain.Role) error {
	return r.db.WithContext(ctx).Model(&domain.User{ID: userID}).
		Association("Roles").Append(role)
}

// List implements domain.UserRepository.
func (r *UserRepositoryImpl) List(ctx context.Context, limit, skip int) ([]domain.User, int64, error) {
	var users []domain.User
	var total int64

	if err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.WithContext(ctx).Preload("Roles").
		Order("created_at").Limit(limit).Offset(skip).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Search implements domain.UserRepository. Matches email, username or phone.
func (r *UserRepositoryImpl) Search(ctx context.Context, query string, limit, skip int) ([]domain.User, int64, error) {
	pattern := "%" + query + "%"
	base := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("LOWER(email) LIKE LOWER(?) OR LOWER(username) LIKE LOWER(?) OR phone LIKE ?", pattern, pattern, pattern)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []domain.User
	err := base.Preload("Roles").Order("created_at").Limit(limit).Offset(skip).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Delete implements domain.UserRepository (soft delete).
func (r *UserRepositoryImpl) Delete(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.User{}, "id = ?", userID).Error
}
