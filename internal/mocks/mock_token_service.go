package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/dj-idk/gym-backend/domain"
)

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	IssueFunc    func(ctx context.Context, accountID uuid.UUID) (string, *domain.TokenClaims, error)
	ValidateFunc func(ctx context.Context, token string) (*domain.TokenClaims, error)
	DecodeFunc   func(token string) (*domain.TokenClaims, error)
}

func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func (m *MockTokenService) Issue(ctx context.Context, accountID uuid.UUID) (string, *domain.TokenClaims, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, accountID)
	}
	return "", nil, domain.ErrTokenInvalid
}

func (m *MockTokenService) Validate(ctx context.Context, token string) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, token)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockTokenService) Decode(token string) (*domain.TokenClaims, error) {
	if m.DecodeFunc != nil {
		return m.DecodeFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

var _ domain.TokenService = (*MockTokenService)(nil)
