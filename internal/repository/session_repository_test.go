package repository

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/taptime-api/internal/models"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
)

func TestMemorySessionRepositoryRoundTrip(t *testing.T) {
	repo := NewMemorySessionRepository(time.Hour)
	ctx := context.Background()

	session := &models.Session{ID: "s1", Nav: models.NavState{Screen: models.ScreenLogin}}
	require.NoError(t, repo.Save(ctx, session))

	loaded, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, models.ScreenLogin, loaded.Nav.Screen)

	loaded.Nav.Screen = models.ScreenDashboard
	again, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, models.ScreenLogin, again.Nav.Screen, "callers must not share stored state")

	require.NoError(t, repo.Delete(ctx, "s1"))
	_, err = repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestMemorySessionRepositoryExpiry(t *testing.T) {
	repo := NewMemorySessionRepository(time.Minute)
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &models.Session{ID: "a"}))
	require.NoError(t, repo.Save(ctx, &models.Session{ID: "b"}))

	now = now.Add(2 * time.Minute)
	_, err := repo.Get(ctx, "a")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Equal(t, 1, repo.Len())
	assert.Equal(t, 1, repo.Sweep())
	assert.Equal(t, 0, repo.Len())
}

func TestRedisSessionRepositoryUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	repo := NewRedisSessionRepository(client, "test:", time.Minute, nil)
	ctx := context.Background()

	_, err := repo.Get(ctx, "s1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, appErrors.ErrNotFound)
	assert.Error(t, repo.Save(ctx, &models.Session{ID: "s1"}))
	assert.Error(t, repo.Ping(ctx))
	assert.Equal(t, "test:s1", repo.key("s1"))
}
