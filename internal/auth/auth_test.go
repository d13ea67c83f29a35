package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "a-test-secret-that-is-long-enough"

func TestStaticProvider(t *testing.T) {
	got, err := NewStaticProvider("user-1").CurrentUserID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", got)

	_, err = NewStaticProvider("").CurrentUserID(context.Background())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestTokenProvider_CurrentUserID(t *testing.T) {
	now := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	valid, err := IssueToken("user-1", testSecret, now, time.Hour)
	require.NoError(t, err)
	expired, err := IssueToken("user-1", testSecret, now.Add(-3*time.Hour), time.Hour)
	require.NoError(t, err)
	otherKey, err := IssueToken("user-1", "another-secret-that-is-long-enough", now, time.Hour)
	require.NoError(t, err)
	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		secret  string
		want    string
		wantErr bool
	}{
		{name: "valid token", token: valid, secret: testSecret, want: "user-1"},
		{name: "empty token", token: "", secret: testSecret, wantErr: true},
		{name: "no secret", token: valid, secret: "", wantErr: true},
		{name: "expired", token: expired, secret: testSecret, wantErr: true},
		{name: "wrong key", token: otherKey, secret: testSecret, wantErr: true},
		{name: "no subject", token: noSubject, secret: testSecret, wantErr: true},
		{name: "unexpected algorithm", token: hs512, secret: testSecret, wantErr: true},
		{name: "malformed", token: "not-a-token", secret: testSecret, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewTokenProvider(tt.token, tt.secret, nil)
			p.timeFunc = func() time.Time { return now }

			got, err := p.CurrentUserID(context.Background())
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnauthenticated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIssueToken_RequiresInput(t *testing.T) {
	_, err := IssueToken("", testSecret, time.Now(), time.Hour)
	assert.Error(t, err)
	_, err = IssueToken("user-1", "", time.Now(), time.Hour)
	assert.Error(t, err)
}
