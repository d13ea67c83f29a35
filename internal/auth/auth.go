// Package auth resolves the signed-in user.
package auth

import (
	"context"
	"errors"
)

// ErrUnauthenticated is returned when no user is signed in.
var ErrUnauthenticated = errors.New("unauthenticated")

//go:generate mockgen -source=auth.go -destination=../mocks/auth/mock_provider.go -package=mock_auth

// Provider returns the id of the signed-in user.
type Provider interface {
	CurrentUserID(ctx context.Context) (string, error)
}

// StaticProvider always returns a configured user id.
type StaticProvider struct {
	userID string
}

func NewStaticProvider(userID string) *StaticProvider {
	return &StaticProvider{userID: userID}
}

func (p *StaticProvider) CurrentUserID(_ context.Context) (string, error) {
	if p.userID == "" {
		return "", ErrUnauthenticated
	}
	return p.userID, nil
}
