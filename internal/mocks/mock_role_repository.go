package mocks

import (
	"context"

	"github.com/dj-idk/gym-backend/domain"
)

// MockRoleRepository implements domain.RoleRepository for testing
type MockRoleRepository struct {
	FindByNameFunc func(ctx context.Context, name string) (*domain.Role, error)
	ListFunc       func(ctx context.Context) ([]domain.Role, error)
	SeedFunc       func(ctx context.Context) error
}

func NewMockRoleRepository() *MockRoleRepository {
	return &MockRoleRepository{}
}

func (m *MockRoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return &domain.Role{Name: name}, nil
}

func (m *MockRoleRepository) List(ctx context.Context) ([]domain.Role, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockRoleRepository) Seed(ctx context.Context) error {
	if m.SeedFunc != nil {
		return m.SeedFunc(ctx)
	}
	return nil
}

var _ domain.RoleRepository = (*MockRoleRepository)(nil)
