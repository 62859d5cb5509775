package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
)

func TestTokenServiceRoundTrip(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: "secret", TTL: time.Hour})

	token, expiresAt, err := svc.Issue("session-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "session-1", claims.SessionID())
}

func TestTokenServiceRejectsForeignSecret(t *testing.T) {
	token, _, err := NewTokenService(TokenConfig{Secret: "a"}).Issue("s")
	require.NoError(t, err)

	_, err = NewTokenService(TokenConfig{Secret: "b"}).Parse(token)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestTokenServiceRejectsExpired(t *testing.T) {
	svc := NewTokenService(TokenConfig{Secret: "secret", TTL: time.Minute})
	issued := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return issued }
	token, _, err := svc.Issue("s")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}
