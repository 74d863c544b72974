package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dj-idk/gym-backend/domain"
)

// MockUserRepository implements domain.UserRepository for testing
type MockUserRepository struct {
	CreateFunc           func(ctx context.Context, user *domain.User) error
	FindByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByPhoneFunc      func(ctx context.Context, phone string) (*domain.User, error)
	FindByIdentifierFunc func(ctx context.Context, kind domain.IdentifierKind, value string) (*domain.User, error)
	FindByEmailTokenFunc func(ctx context.Context, token string) (*domain.User, error)
	UpdateFunc           func(ctx context.Context, user *domain.User) error
	MarkVerifiedFunc     func(ctx context.Context, userID uuid.UUID) error
	SetPasswordFunc      func(ctx context.Context, userID uuid.UUID, hash string) error
	TouchLastLoginFunc   func(ctx context.Context, userID uuid.UUID, at time.Time) error
	SetActiveFunc        func(ctx context.Context, userID uuid.UUID, active bool) error
	AssignRoleFunc       func(ctx context.Context, userID uuid.UUID, role *domain.Role) error
	ListFunc             func(ctx context.Context, limit, skip int) ([]domain.User, int64, error)
	SearchFunc           func(ctx context.Context, query string, limit, skip int) ([]domain.User, int64, error)
	DeleteFunc           func(ctx context.Context, userID uuid.UUID) error
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByIdentifier(ctx context.Context, kind domain.IdentifierKind, value string) (*domain.User, error) {
	if m.FindByIdentifierFunc != nil {
		return m.FindByIdentifierFunc(ctx, kind, value)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByEmailToken(ctx context.Context, token string) (*domain.User, error) {
	if m.FindByEmailTokenFunc != nil {
		return m.FindByEmailTokenFunc(ctx, token)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) MarkVerified(ctx context.Context, userID uuid.UUID) error {
	if m.MarkVerifiedFunc != nil {
		return m.MarkVerifiedFunc(ctx, userID)
	}
	return nil
}

func (m *MockUserRepository) SetPassword(ctx context.Context, userID uuid.UUID, hash string) error {
	if m.SetPasswordFunc != nil {
		return m.SetPasswordFunc(ctx, userID, hash)
	}
	return nil
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	if m.TouchLastLoginFunc != nil {
		return m.TouchLastLoginFunc(ctx, userID, at)
	}
	return nil
}

func (m *MockUserRepository) SetActive(ctx context.Context, userID uuid.UUID, active bool) error {
	if m.SetActiveFunc != nil {
		return m.SetActiveFunc(ctx, userID, active)
	}
	return nil
}

func (m *MockUserRepository) AssignRole(ctx context.Context, userID uuid.UUID, role *domain.Role) error {
	if m.AssignRoleFunc != nil {
		return m.AssignRoleFunc(ctx, userID, role)
	}
	return nil
}

func (m *MockUserRepository) List(ctx context.Context, limit, skip int) ([]domain.User, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, skip)
	}
	return nil, 0, nil
}

func (m *MockUserRepository) Search(ctx context.Context, query string, limit, skip int) ([]domain.User, int64, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, limit, skip)
	}
	return nil, 0, nil
}

func (m *MockUserRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
