package domain

import "errors"

// Account errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("phone number already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrUserNotVerified    = errors.New("phone number not verified")
	ErrAlreadyVerified    = errors.New("phone number already verified")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
)

// Validation errors
var (
	ErrInvalidPhone = errors.New("phone number must start with 09 and have 11 digits total")
	ErrWeakPassword = errors.New("password does not meet strength requirements")
)

// OTP errors
var (
	ErrOTPNotFound    = errors.New("otp not found or expired")
	ErrOTPInvalid     = errors.New("invalid otp code")
	ErrOTPMaxAttempts = errors.New("maximum otp attempts exceeded")
	ErrOTPResendLimit = errors.New("otp resend limit exceeded")
)

// Token errors
var (
	ErrTokenInvalid    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token has expired")
	ErrTokenRevoked    = errors.New("token has been invalidated")
	ErrTokenNotTracked = errors.New("token has no cache record")
	ErrTokenMalformed  = errors.New("malformed token")
)

// Resource errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrForbidden     = errors.New("not authorized for this resource")
	ErrConflict      = errors.New("conflicting resource state")
	ErrEmailTokenBad = errors.New("invalid or expired email verification token")
)
