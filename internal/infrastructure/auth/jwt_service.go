package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dj-idk/gym-backend/domain"
)

// JWTServiceImpl implements domain.TokenService. Every issued token is
// mirrored into the token store so revocation can take effect before the
// token's natural expiry.
type JWTServiceImpl struct {
	secretKey []byte
	issuer    string
	accessTTL time.Duration
	tokens    domain.TokenStore
}

// NewJWTService creates a new JWT service.
func NewJWTService(secretKey, issuer string, accessTTL time.Duration, tokens domain.TokenStore) domain.TokenService {
	return &JWTServiceImpl{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		accessTTL: accessTTL,
		tokens:    tokens,
	}
}

// Issue implements domain.TokenService.
func (j *JWTServiceImpl) Issue(ctx context.Context, accountID uuid.UUID) (string, *domain.TokenClaims, error) {
	now := time.Now()
	expiresAt := now.Add(j.accessTTL)
	tokenID := uuid.NewString()

	claims := jwt.MapClaims{
		"sub": accountID.String(),
		"jti": tokenID,
		"iss": j.issuer,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	rec := &domain.TokenRecord{
		AccountID: accountID,
		IsRevoked: false,
		ExpiresAt: expiresAt,
	}
	if err := j.tokens.Save(ctx, tokenID, rec); err != nil {
		return "", nil, fmt.Errorf("failed to store token record: %w", err)
	}

	return signed, &domain.TokenClaims{
		Subject:   accountID,
		TokenID:   tokenID,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}, nil
}

// Validate implements domain.TokenService. Both checks are mandatory: the
// signature/expiry of the token itself, and the live cache record.
func (j *JWTServiceImpl) Validate(ctx context.Context, tokenString string) (*domain.TokenClaims, error) {
	claims, err := j.Decode(tokenString)
	if err != nil {
		return nil, err
	}

	rec, err := j.tokens.Find(ctx, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if rec.IsRevoked {
		return nil, domain.ErrTokenRevoked
	}
	if rec.ExpiresAt.Before(time.Now()) {
		return nil, domain.ErrTokenExpired
	}

	return claims, nil
}

// Decode verifies the signature and structure without consulting the cache.
func (j *JWTServiceImpl) Decode(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return j.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	accountID, err := uuid.Parse(sub)
	if err != nil {
		return nil, domain.ErrTokenMalformed
	}

	tokenID, ok := claims["jti"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	expiresAt := time.Unix(int64(exp), 0)
	if expiresAt.Before(time.Now()) {
		return nil, domain.ErrTokenExpired
	}

	return &domain.TokenClaims{
		Subject:   accountID,
		TokenID:   tokenID,
		IssuedAt:  time.Unix(int64(iat), 0),
		ExpiresAt: expiresAt,
	}, nil
}
