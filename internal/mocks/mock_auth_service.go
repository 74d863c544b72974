package mocks

import (
	"context"

	"github.com/dj-idk/gym-backend/domain"
)

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	RegisterFunc             func(ctx context.Context, phone, password string) (*domain.User, string, error)
	VerifyPhoneFunc          func(ctx context.Context, phone, code string) (*domain.AuthResult, error)
	LoginFunc                func(ctx context.Context, identifier, password string) (*domain.AuthResult, error)
	RequestPasswordResetFunc func(ctx context.Context, phone string) (string, error)
	ConfirmPasswordResetFunc func(ctx context.Context, phone, code, newPassword string) error
	RefreshFunc              func(ctx context.Context, token string) (*domain.AuthResult, error)
	LogoutFunc               func(ctx context.Context, token string) error
}

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Register(ctx context.Context, phone, password string) (*domain.User, string, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, phone, password)
	}
	return &domain.User{Phone: phone}, "123456", nil
}

func (m *MockAuthService) VerifyPhone(ctx context.Context, phone, code string) (*domain.AuthResult, error) {
	if m.VerifyPhoneFunc != nil {
		return m.VerifyPhoneFunc(ctx, phone, code)
	}
	return nil, domain.ErrOTPInvalid
}

func (m *MockAuthService) Login(ctx context.Context, identifier, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, identifier, password)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockAuthService) RequestPasswordReset(ctx context.Context, phone string) (string, error) {
	if m.RequestPasswordResetFunc != nil {
		return m.RequestPasswordResetFunc(ctx, phone)
	}
	return "", nil
}

func (m *MockAuthService) ConfirmPasswordReset(ctx context.Context, phone, code, newPassword string) error {
	if m.ConfirmPasswordResetFunc != nil {
		return m.ConfirmPasswordResetFunc(ctx, phone, code, newPassword)
	}
	return domain.ErrOTPInvalid
}

func (m *MockAuthService) Refresh(ctx context.Context, token string) (*domain.AuthResult, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, token)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}

var _ domain.AuthService = (*MockAuthService)(nil)
