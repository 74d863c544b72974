package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dj-idk/gym-backend/domain"
)

// OTPServiceImpl implements domain.OTPService. Codes live in the OTP
// store keyed by purpose and phone; attempt counters and the resend
// throttle are tracked in Redis alongside.
type OTPServiceImpl struct {
	store       domain.OTPStore
	sms         domain.SMSSender
	redisClient *redis.Client
	config      OTPConfig
}

type OTPConfig struct {
	Length          int
	VerificationTTL time.Duration
	ResetTTL        time.Duration
	MaxAttempts     int
	ResendWindow    time.Duration
}

// NewOTPService creates a new Redis-backed OTP service
func NewOTPService(store domain.OTPStore, sms domain.SMSSender, redisClient *redis.Client, config OTPConfig) domain.OTPService {
	return &OTPServiceImpl{
		store:       store,
		sms:         sms,
		redisClient: redisClient,
		config:      config,
	}
}

func (s *OTPServiceImpl) ttl(purpose domain.OTPPurpose) time.Duration {
	if purpose == domain.OTPPasswordReset {
		return s.config.ResetTTL
	}
	return s.config.VerificationTTL
}

func attemptsKey(purpose domain.OTPPurpose, phone string) string {
	return fmt.Sprintf("otp:att:%s:%s", purpose, phone)
}

func resendKey(purpose domain.OTPPurpose, phone string) string {
	return fmt.Sprintf("otp:res:%s:%s", purpose, phone)
}

// Generate implements domain.OTPService. The returned code is also
// delivered over SMS; callers decide whether to surface it.
func (s *OTPServiceImpl) Generate(ctx context.Context, purpose domain.OTPPurpose, phone string) (string, error) {
	if wait, err := s.resendWait(ctx, purpose, phone); err != nil {
		return "", err
	} else if wait > 0 {
		return "", domain.ErrOTPResendLimit
	}

	code, err := s.generateSecureCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP code: %w", err)
	}

	ttl := s.ttl(purpose)
	if err := s.store.Put(ctx, purpose, phone, code, ttl); err != nil {
		return "", fmt.Errorf("failed to store OTP: %w", err)
	}

	// Reset the attempts counter for the fresh code
	if err := s.redisClient.Set(ctx, attemptsKey(purpose, phone), 0, ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to initialize attempts counter: %w", err)
	}

	if err := s.redisClient.Set(ctx, resendKey(purpose, phone), 1, s.config.ResendWindow).Err(); err != nil {
		return "", fmt.Errorf("failed to set resend throttle: %w", err)
	}

	message := fmt.Sprintf("Your verification code is: %s. Valid for %d minutes.", code, int(ttl.Minutes()))
	if err := s.sms.SendSMS(phone, message); err != nil {
		// Clean up so a failed send does not burn the resend window
		s.store.Delete(ctx, purpose, phone)
		s.redisClient.Del(ctx, attemptsKey(purpose, phone), resendKey(purpose, phone))
		return "", fmt.Errorf("failed to send OTP SMS: %w", err)
	}

	return code, nil
}

// Verify implements domain.OTPService. A matching code is single use
// and is deleted on success.
func (s *OTPServiceImpl) Verify(ctx context.Context, purpose domain.OTPPurpose, phone, code string) error {
	attempts, err := s.redisClient.Incr(ctx, attemptsKey(purpose, phone)).Result()
	if err != nil {
		return fmt.Errorf("failed to increment attempts: %w", err)
	}

	if attempts > int64(s.config.MaxAttempts) {
		s.store.Delete(ctx, purpose, phone)
		s.redisClient.Del(ctx, attemptsKey(purpose, phone))
		return domain.ErrOTPMaxAttempts
	}

	stored, err := s.store.Get(ctx, purpose, phone)
	if err != nil {
		return err
	}

	if stored != code {
		return domain.ErrOTPInvalid
	}

	s.store.Delete(ctx, purpose, phone)
	s.redisClient.Del(ctx, attemptsKey(purpose, phone))

	return nil
}

// resendWait returns the remaining throttle window in seconds.
func (s *OTPServiceImpl) resendWait(ctx context.Context, purpose domain.OTPPurpose, phone string) (int64, error) {
	ttl, err := s.redisClient.TTL(ctx, resendKey(purpose, phone)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to check resend TTL: %w", err)
	}
	if ttl <= 0 {
		return 0, nil
	}
	return int64(ttl.Seconds()), nil
}

// generateSecureCode generates a cryptographically secure numeric code
func (s *OTPServiceImpl) generateSecureCode() (string, error) {
	digits := make([]byte, s.config.Length)

	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}

	return string(digits), nil
}
