package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret_key_1234567890"

func newMaker(t *testing.T, secret string, opts ...Option) *MakerImpl {
	t.Helper()
	maker, err := NewJWTMaker(secret, opts...)
	require.NoError(t, err)
	return maker
}

func TestNewJWTMaker_EmptySecret(t *testing.T) {
	maker, err := NewJWTMaker("")
	assert.ErrorIs(t, err, ErrEmptySecretKey)
	assert.Nil(t, maker)
}

func TestJWTMaker_IssueAndValidate(t *testing.T) {
	maker := newMaker(t, testSecret)

	for _, username := range []string{"nico", "user@domain.com", "user123"} {
		t.Run(username, func(t *testing.T) {
			token, err := maker.Issue(username)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.Validate(token)
			require.NoError(t, err)

			assert.Equal(t, username, claims.Username())
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestJWTMaker_ExpiryIsIssuedAtPlusTTL(t *testing.T) {
	issuedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	maker := newMaker(t, testSecret, WithClock(func() time.Time { return issuedAt }))

	token, err := maker.Issue("nico")
	require.NoError(t, err)

	claims, err := maker.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(TokenTTL), claims.ExpiresAt.Time.UTC())
}

func TestJWTMaker_Validate_Errors(t *testing.T) {
	maker := newMaker(t, testSecret)

	validToken, err := maker.Issue("nico")
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{
			name:    "empty token",
			token:   "",
			wantErr: ErrMalformed,
		},
		{
			name:    "not a jwt",
			token:   "invalid.token.here",
			wantErr: ErrMalformed,
		},
		{
			name:    "expired one second ago",
			token:   issueExpired(t, testSecret, time.Second),
			wantErr: ErrExpired,
		},
		{
			name:    "wrong secret key",
			token:   issueWithSecret(t, "different_secret_key"),
			wantErr: ErrBadSignature,
		},
		{
			name:    "missing expiry",
			token:   signRaw(t, testSecret, gojwt.RegisteredClaims{Subject: "nico"}),
			wantErr: ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.Validate(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, claims)
		})
	}

	t.Run("tampered token", func(t *testing.T) {
		claims, err := maker.Validate(validToken + "tampered")
		assert.Error(t, err)
		assert.Nil(t, claims)
	})
}

func TestJWTMaker_DifferentSecretKeys(t *testing.T) {
	maker1 := newMaker(t, "first_secret_key")
	maker2 := newMaker(t, "different_secret_key")

	token, err := maker1.Issue("nico")
	require.NoError(t, err)

	claims, err := maker2.Validate(token)
	assert.ErrorIs(t, err, ErrBadSignature)
	assert.Nil(t, claims)

	claims, err = maker1.Validate(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
}

func TestJWTMaker_ExpiredWithValidSignature(t *testing.T) {
	maker := newMaker(t, testSecret)
	token := issueExpired(t, testSecret, time.Second)

	_, err := maker.Validate(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExpired)
	assert.NotErrorIs(t, err, ErrBadSignature)
}

func issueExpired(t *testing.T, secret string, ago time.Duration) string {
	t.Helper()
	past := time.Now().Add(-TokenTTL - ago)
	maker := newMaker(t, secret, WithClock(func() time.Time { return past }))
	token, err := maker.Issue("nico")
	require.NoError(t, err)
	return token
}

func issueWithSecret(t *testing.T, secret string) string {
	t.Helper()
	token, err := newMaker(t, secret).Issue("nico")
	require.NoError(t, err)
	return token
}

func signRaw(t *testing.T, secret string, claims gojwt.RegisteredClaims) string {
	t.Helper()
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}
