package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dj-idk/gym-backend/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	roleRepo    domain.RoleRepository
	tokens      domain.TokenStore
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	otpSvc      domain.OTPService
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	roleRepo domain.RoleRepository,
	tokens domain.TokenStore,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		tokens:      tokens,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
	}
}

// Register implements domain.AuthService. The account starts unverified;
// a verification code is sent to the phone and also returned so callers
// can surface it in environments without an SMS gateway.
func (s *AuthServiceImpl) Register(ctx context.Context, phone, password string) (*domain.User, string, error) {
	if err := ValidatePhone(phone); err != nil {
		return nil, "", err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, "", err
	}

	existing, err := s.userRepo.FindByPhone(ctx, phone)
	if err == nil && existing != nil {
		return nil, "", domain.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", fmt.Errorf("failed to look up phone: %w", err)
	}

	hashed, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Phone:        phone,
		PasswordHash: hashed,
		IsActive:     true,
		IsVerified:   false,
		Status:       domain.StatusPendingVerification,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	role, err := s.roleRepo.FindByName(ctx, "member")
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up default role: %w", err)
	}
	if err := s.userRepo.AssignRole(ctx, user.ID, role); err != nil {
		return nil, "", fmt.Errorf("failed to assign default role: %w", err)
	}

	code, err := s.otpSvc.Generate(ctx, domain.OTPPhoneVerification, phone)
	if err != nil {
		return nil, "", fmt.Errorf("failed to send OTP: %w", err)
	}

	return user, code, nil
}

// VerifyPhone implements domain.AuthService. A correct code activates
// the account and logs it in.
func (s *AuthServiceImpl) VerifyPhone(ctx context.Context, phone, code string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if user.IsVerified {
		return nil, domain.ErrAlreadyVerified
	}

	if err := s.otpSvc.Verify(ctx, domain.OTPPhoneVerification, phone, code); err != nil {
		return nil, err
	}

	if err := s.userRepo.MarkVerified(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to mark verified: %w", err)
	}
	user.IsVerified = true
	user.Status = domain.StatusActive

	return s.issueFor(ctx, user)
}

// Login implements domain.AuthService. The identifier is matched against
// email, then username, then phone; the first hit wins. Every failure
// mode reads as invalid credentials so the identifier space cannot be
// probed.
func (s *AuthServiceImpl) Login(ctx context.Context, identifier, password string) (*domain.AuthResult, error) {
	var user *domain.User
	for _, kind := range domain.LoginIdentifierOrder {
		found, err := s.userRepo.FindByIdentifier(ctx, kind, identifier)
		if err == nil {
			user = found
			break
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to look up identifier: %w", err)
		}
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive || !user.IsVerified {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.userRepo.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	user.LastLogin = &now

	return s.issueFor(ctx, user)
}

// RequestPasswordReset implements domain.AuthService. Unknown phones get
// the same answer as known ones.
func (s *AuthServiceImpl) RequestPasswordReset(ctx context.Context, phone string) (string, error) {
	_, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to look up phone: %w", err)
	}

	code, err := s.otpSvc.Generate(ctx, domain.OTPPasswordReset, phone)
	if err != nil {
		return "", err
	}
	return code, nil
}

// ConfirmPasswordReset implements domain.AuthService
func (s *AuthServiceImpl) ConfirmPasswordReset(ctx context.Context, phone, code, newPassword string) error {
	user, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		return err
	}

	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	if err := s.otpSvc.Verify(ctx, domain.OTPPasswordReset, phone, code); err != nil {
		return err
	}

	hashed, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.SetPassword(ctx, user.ID, hashed)
}

// Refresh implements domain.AuthService. The new token is issued before
// the old one is revoked, so a failure mid-way leaves the caller with at
// least one usable token.
func (s *AuthServiceImpl) Refresh(ctx context.Context, token string) (*domain.AuthResult, error) {
	claims, err := s.tokenSvc.Validate(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	result, err := s.issueFor(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Revoke(ctx, claims.TokenID); err != nil {
		return nil, err
	}

	return result, nil
}

// Logout implements domain.AuthService. Revoking a token the store no
// longer tracks is reported, not swallowed.
func (s *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := s.tokenSvc.Decode(token)
	if err != nil {
		return err
	}
	return s.tokens.Revoke(ctx, claims.TokenID)
}

func (s *AuthServiceImpl) issueFor(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	token, claims, err := s.tokenSvc.Issue(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &domain.AuthResult{
		User:        user,
		AccessToken: token,
		ExpiresAt:   claims.ExpiresAt,
	}, nil
}
