package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const clockSkew = 2 * time.Minute

// TokenProvider reads the user id from the subject of an HS256 signed token.
type TokenProvider struct {
	token      string
	signingKey []byte
	timeFunc   func() time.Time
	logger     *slog.Logger
}

func NewTokenProvider(token, secret string, logger *slog.Logger) *TokenProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenProvider{
		token:      token,
		signingKey: []byte(secret),
		timeFunc:   time.Now,
		logger:     logger,
	}
}

func (p *TokenProvider) CurrentUserID(_ context.Context) (string, error) {
	if p.token == "" {
		return "", ErrUnauthenticated
	}
	if len(p.signingKey) == 0 {
		return "", fmt.Errorf("%w: no signing key configured", ErrUnauthenticated)
	}

	now := p.timeFunc()
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(
		p.token,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return p.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			p.logger.Debug("token validation failed: token expired", "error", err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			p.logger.Debug("token validation failed: invalid signature", "error", err)
		default:
			p.logger.Debug("token validation failed", "error", err)
		}
		return "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: token has no subject", ErrUnauthenticated)
	}
	return claims.Subject, nil
}

// IssueToken signs a token for userID that expires after lifetime.
func IssueToken(userID, secret string, now time.Time, lifetime time.Duration) (string, error) {
	if userID == "" {
		return "", errors.New("user id is required")
	}
	if secret == "" {
		return "", errors.New("signing secret is required")
	}
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		ID:        uuid.NewString(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("jwt.Token.SignedString() > %w", err)
	}
	return signed, nil
}
