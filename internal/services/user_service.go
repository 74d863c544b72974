package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dj-idk/gym-backend/domain"
)

// emailTokenTTL bounds how long a mailed confirmation link stays valid.
const emailTokenTTL = 24 * time.Hour

// UserService manages account attributes beyond the auth lifecycle:
// usernames, verified email changes, password changes and the admin
// account operations.
type UserService struct {
	userRepo domain.UserRepository
	roleRepo domain.RoleRepository
	password domain.PasswordService
	email    domain.EmailSender
	baseURL  string
}

func NewUserService(userRepo domain.UserRepository, roleRepo domain.RoleRepository, password domain.PasswordService, email domain.EmailSender, baseURL string) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		password: password,
		email:    email,
		baseURL:  baseURL,
	}
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// SetUsername claims a username for the account. Uniqueness is enforced
// by the database; a duplicate reads as ErrUsernameTaken.
func (s *UserService) SetUsername(ctx context.Context, userID uuid.UUID, username string) (*domain.User, error) {
	if !ValidateUsername(username) {
		return nil, fmt.Errorf("%w: username must be 3-32 letters, digits or underscore", domain.ErrConflict)
	}

	if existing, err := s.userRepo.FindByIdentifier(ctx, domain.IdentUsername, username); err == nil {
		if existing.ID != userID {
			return nil, domain.ErrUsernameTaken
		}
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Username = &username
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// RequestEmailChange stores the new address as pending and mails a
// confirmation token to it. The current address stays authoritative
// until the token is confirmed.
func (s *UserService) RequestEmailChange(ctx context.Context, userID uuid.UUID, newEmail string) error {
	if !ValidateEmail(newEmail) {
		return fmt.Errorf("%w: malformed email address", domain.ErrConflict)
	}

	if existing, err := s.userRepo.FindByIdentifier(ctx, domain.IdentEmail, newEmail); err == nil {
		if existing.ID != userID {
			return domain.ErrEmailTaken
		}
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	token, err := randomToken()
	if err != nil {
		return fmt.Errorf("failed to generate email token: %w", err)
	}
	exp := time.Now().Add(emailTokenTTL)

	user.PendingEmail = &newEmail
	user.EmailToken = &token
	user.EmailTokenExp = &exp
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/api/v1/users/me/email/confirm?token=%s", s.baseURL, token)
	body := fmt.Sprintf(
		"<p>Confirm your new email address by following this link:</p><p><a href=%q>%s</a></p><p>The link is valid for 24 hours.</p>",
		link, link,
	)
	return s.email.SendEmail(newEmail, "Confirm your email address", body)
}

// ConfirmEmailChange promotes the pending address when the token checks
// out. Tokens are single use.
func (s *UserService) ConfirmEmailChange(ctx context.Context, token string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmailToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrEmailTokenBad
		}
		return nil, err
	}

	if user.EmailTokenExp == nil || time.Now().After(*user.EmailTokenExp) {
		return nil, domain.ErrEmailTokenBad
	}
	if user.PendingEmail == nil {
		return nil, domain.ErrEmailTokenBad
	}

	user.Email = user.PendingEmail
	user.IsEmailVerified = true
	user.PendingEmail = nil
	user.EmailToken = nil
	user.EmailTokenExp = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword requires the current password before accepting the new one.
func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, current, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !s.password.Verify(user.PasswordHash, current) {
		return domain.ErrInvalidCredentials
	}
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}
	hashed, err := s.password.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.userRepo.SetPassword(ctx, userID, hashed)
}

// List pages over all accounts. Admin only.
func (s *UserService) List(ctx context.Context, limit, skip int) ([]domain.User, int64, error) {
	return s.userRepo.List(ctx, limit, skip)
}

// Search matches email, username or phone. Admin only.
func (s *UserService) Search(ctx context.Context, query string, limit, skip int) ([]domain.User, int64, error) {
	return s.userRepo.Search(ctx, query, limit, skip)
}

// SetActive suspends or reinstates an account. Admin only.
func (s *UserService) SetActive(ctx context.Context, userID uuid.UUID, active bool) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.SetActive(ctx, userID, active)
}

// AssignRole grants a named role. Admin only.
func (s *UserService) AssignRole(ctx context.Context, userID uuid.UUID, roleName string) error {
	role, err := s.roleRepo.FindByName(ctx, roleName)
	if err != nil {
		return err
	}
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.AssignRole(ctx, userID, role)
}

// Delete soft-deletes an account. Admin only.
func (s *UserService) Delete(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
