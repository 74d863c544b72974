package mocks

import (
	"context"

	"github.com/dj-idk/gym-backend/domain"
)

// MockTokenStore implements domain.TokenStore for testing
type MockTokenStore struct {
	SaveFunc   func(ctx context.Context, tokenID string, rec *domain.TokenRecord) error
	FindFunc   func(ctx context.Context, tokenID string) (*domain.TokenRecord, error)
	RevokeFunc func(ctx context.Context, tokenID string) error
}

func NewMockTokenStore() *MockTokenStore {
	return &MockTokenStore{}
}

func (m *MockTokenStore) Save(ctx context.Context, tokenID string, rec *domain.TokenRecord) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tokenID, rec)
	}
	return nil
}

func (m *MockTokenStore) Find(ctx context.Context, tokenID string) (*domain.TokenRecord, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, tokenID)
	}
	return nil, domain.ErrTokenRevoked
}

func (m *MockTokenStore) Revoke(ctx context.Context, tokenID string) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, tokenID)
	}
	return nil
}

var _ domain.TokenStore = (*MockTokenStore)(nil)
