package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dj-idk/gym-backend/domain"
)

// OTPRepositoryImpl implements domain.OTPStore on Redis. Codes live under
// "<purpose>:<phone>" and rely on key expiry for their lifetime.
type OTPRepositoryImpl struct {
	client *redis.Client
}

// NewOTPRepository creates a new OTP store.
func NewOTPRepository(client *redis.Client) domain.OTPStore {
	return &OTPRepositoryImpl{client: client}
}

func otpKey(purpose domain.OTPPurpose, phone string) string {
	return fmt.Sprintf("%s:%s", purpose, phone)
}

// Put implements domain.OTPStore.
func (r *OTPRepositoryImpl) Put(ctx context.Context, purpose domain.OTPPurpose, phone, code string, ttl time.Duration) error {
	return r.client.Set(ctx, otpKey(purpose, phone), code, ttl).Err()
}

// Get implements domain.OTPStore. A missing key reads as expired.
func (r *OTPRepositoryImpl) Get(ctx context.Context, purpose domain.OTPPurpose, phone string) (string, error) {
	code, err := r.client.Get(ctx, otpKey(purpose, phone)).Result()
	if err == redis.Nil {
		return "", domain.ErrOTPNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read otp: %w", err)
	}
	return code, nil
}

// Delete implements domain.OTPStore.
func (r *OTPRepositoryImpl) Delete(ctx context.Context, purpose domain.OTPPurpose, phone string) error {
	return r.client.Del(ctx, otpKey(purpose, phone)).Err()
}
