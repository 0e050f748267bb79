package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthServiceRoundTrip(t *testing.T) {
	auth := NewAuthService("secret")
	require.True(t, auth.Enabled())

	token, expiresAt, err := auth.IssueToken("dashboard", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "dashboard", claims.Subject)
}

func TestAuthServiceRejects(t *testing.T) {
	auth := NewAuthService("secret")

	expired, _, err := auth.IssueToken("x", -time.Minute)
	require.NoError(t, err)
	_, err = auth.ValidateToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	foreign, _, err := NewAuthService("other").IssueToken("x", time.Hour)
	require.NoError(t, err)
	_, err = auth.ValidateToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "x"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = auth.ValidateToken(none)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthServiceDisabled(t *testing.T) {
	auth := NewAuthService("")
	assert.False(t, auth.Enabled())

	_, _, err := auth.IssueToken("x", time.Hour)
	assert.ErrorIs(t, err, ErrAuthDisabled)
}
