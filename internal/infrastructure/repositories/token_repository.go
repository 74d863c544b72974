package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dj-idk/gym-backend/domain"
)

// TokenRepositoryImpl implements domain.TokenStore on Redis. Records live
// under "token:<jti>" and expire together with the token they mirror.
type TokenRepositoryImpl struct {
	client *redis.Client
	prefix string
}

// NewTokenRepository creates a new token store.
func NewTokenRepository(client *redis.Client) domain.TokenStore {
	return &TokenRepositoryImpl{
		client: client,
		prefix: "token:",
	}
}

// Save implements domain.TokenStore. The TTL is derived from the record's
// expiry; an already-expired record is a caller error and is not stored.
func (r *TokenRepositoryImpl) Save(ctx context.Context, tokenID string, rec *domain.TokenRecord) error {
	ttl := time.Until(rec.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("token %s already expired, refusing to store", tokenID)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal token record: %w", err)
	}

	return r.client.Set(ctx, r.prefix+tokenID, data, ttl).Err()
}

// Find implements domain.TokenStore. An absent record means the token was
// revoked and cleaned up, or was never tracked; either way it is unusable.
func (r *TokenRepositoryImpl) Find(ctx context.Context, tokenID string) (*domain.TokenRecord, error) {
	data, err := r.client.Get(ctx, r.prefix+tokenID).Result()
	if err == redis.Nil {
		return nil, domain.ErrTokenRevoked
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token record: %w", err)
	}

	var rec domain.TokenRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token record: %w", err)
	}
	return &rec, nil
}

// Revoke implements domain.TokenStore. Every issued token must have a cache
// record, so a missing one is reported rather than treated as a no-op.
func (r *TokenRepositoryImpl) Revoke(ctx context.Context, tokenID string) error {
	key := r.prefix + tokenID

	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return domain.ErrTokenNotTracked
	}
	if err != nil {
		return fmt.Errorf("failed to read token record: %w", err)
	}

	var rec domain.TokenRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return fmt.Errorf("failed to unmarshal token record: %w", err)
	}
	rec.IsRevoked = true

	updated, err := json.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("failed to marshal token record: %w", err)
	}

	// KeepTTL so the revoked marker disappears with the token's natural expiry.
	return r.client.Set(ctx, key, updated, redis.KeepTTL).Err()
}
