package domain

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// IdentifierKind discriminates which credential column a login identifier
// should be matched against.
type IdentifierKind string

const (
	IdentEmail    IdentifierKind = "email"
	IdentUsername IdentifierKind = "username"
	IdentPhone    IdentifierKind = "phone"
)

// LoginIdentifierOrder is the order credential lookups are attempted;
// the first match wins.
var LoginIdentifierOrder = []IdentifierKind{IdentEmail, IdentUsername, IdentPhone}

// UserRepository defines account data access operations.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	FindByIdentifier(ctx context.Context, kind IdentifierKind, value string) (*User, error)
	FindByEmailToken(ctx context.Context, token string) (*User, error)
	Update(ctx context.Context, user *User) error
	MarkVerified(ctx context.Context, userID uuid.UUID) error
	SetPassword(ctx context.Context, userID uuid.UUID, hash string) error
	TouchLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
	SetActive(ctx context.Context, userID uuid.UUID, active bool) error
	AssignRole(ctx context.Context, userID uuid.UUID, role *Role) error
	List(ctx context.Context, limit, skip int) ([]User, int64, error)
	Search(ctx context.Context, query string, limit, skip int) ([]User, int64, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

// RoleRepository defines access to the role/permission reference data.
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*Role, error)
	List(ctx context.Context) ([]Role, error)
	Seed(ctx context.Context) error
}

// TokenStore mirrors issued token metadata into the cache store so that
// revocation takes effect before natural expiry.
type TokenStore interface {
	// Save stores a record under the token id with TTL = ExpiresAt - now.
	// A non-positive TTL is a caller error.
	Save(ctx context.Context, tokenID string, rec *TokenRecord) error
	// Find returns nil, ErrTokenRevoked when the record is absent.
	Find(ctx context.Context, tokenID string) (*TokenRecord, error)
	// Revoke flags the record; a missing record is ErrTokenNotTracked.
	Revoke(ctx context.Context, tokenID string) error
}

// OTPStore keeps short-lived one-time codes keyed by purpose and phone.
type OTPStore interface {
	Put(ctx context.Context, purpose OTPPurpose, phone, code string, ttl time.Duration) error
	Get(ctx context.Context, purpose OTPPurpose, phone string) (string, error)
	Delete(ctx context.Context, purpose OTPPurpose, phone string) error
}

// TokenService issues and validates signed access tokens.
type TokenService interface {
	// Issue signs a token for the account and mirrors it into the token store.
	Issue(ctx context.Context, accountID uuid.UUID) (string, *TokenClaims, error)
	// Validate checks signature and expiry, then the cache record; a token
	// whose record is absent or revoked fails even with a valid signature.
	Validate(ctx context.Context, token string) (*TokenClaims, error)
	// Decode verifies the signature only, without consulting the cache.
	Decode(token string) (*TokenClaims, error)
}

// AuthService orchestrates registration, login and the token lifecycle.
type AuthService interface {
	Register(ctx context.Context, phone, password string) (*User, string, error)
	VerifyPhone(ctx context.Context, phone, code string) (*AuthResult, error)
	Login(ctx context.Context, identifier, password string) (*AuthResult, error)
	RequestPasswordReset(ctx context.Context, phone string) (string, error)
	ConfirmPasswordReset(ctx context.Context, phone, code, newPassword string) error
	Refresh(ctx context.Context, token string) (*AuthResult, error)
	Logout(ctx context.Context, token string) error
}

// OTPService generates and checks one-time codes.
type OTPService interface {
	Generate(ctx context.Context, purpose OTPPurpose, phone string) (string, error)
	Verify(ctx context.Context, purpose OTPPurpose, phone, code string) error
}

// PasswordService defines password hashing operations.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// SMSSender delivers one-time codes out of band.
type SMSSender interface {
	SendSMS(to, message string) error
}

// EmailSender delivers transactional mail.
type EmailSender interface {
	SendEmail(to, subject, htmlBody string) error
}

// FileStorage stores uploaded media in an S3-compatible bucket.
type FileStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, key string) error
}
