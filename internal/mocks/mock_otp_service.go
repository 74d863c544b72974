package mocks

import (
	"context"

	"github.com/dj-idk/gym-backend/domain"
)

// MockOTPService implements domain.OTPService for testing
type MockOTPService struct {
	GenerateFunc func(ctx context.Context, purpose domain.OTPPurpose, phone string) (string, error)
	VerifyFunc   func(ctx context.Context, purpose domain.OTPPurpose, phone, code string) error
}

func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

func (m *MockOTPService) Generate(ctx context.Context, purpose domain.OTPPurpose, phone string) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, purpose, phone)
	}
	return "123456", nil
}

func (m *MockOTPService) Verify(ctx context.Context, purpose domain.OTPPurpose, phone, code string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, purpose, phone, code)
	}
	return domain.ErrOTPNotFound
}

var _ domain.OTPService = (*MockOTPService)(nil)
