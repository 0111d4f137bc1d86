package session

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psicocare/psicocare_bot/internal/model"
)

func newTestCache(t *testing.T, now time.Time) (*RedisCache, *memStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := newMemStore()
	c := NewRedisCache(store, client, nil)
	c.now = func() time.Time { return now }
	return c, store, mr
}

func TestRedisCache_WriteThroughWithTokenTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	c, store, mr := newTestCache(t, now)

	s := &Session{TelegramID: 5, UserID: "u5", Role: model.RolePsychologist, Token: "t", ExpiresAt: now.Add(2 * time.Hour)}
	require.NoError(t, c.Save(ctx, s))

	assert.True(t, mr.Exists("psicocare:session:5"))
	assert.Equal(t, 2*time.Hour, mr.TTL("psicocare:session:5"))
	assert.Contains(t, store.data, int64(5))

	got, err := c.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "u5", got.UserID)
	assert.Equal(t, model.RolePsychologist, got.Role)
	assert.Equal(t, 0, store.gets)
}

func TestRedisCache_ReadThrough(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	c, store, mr := newTestCache(t, now)

	require.NoError(t, store.Save(ctx, &Session{TelegramID: 6, UserID: "u6", Role: model.RolePatient}))

	got, err := c.Get(ctx, 6)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u6", got.UserID)
	assert.Equal(t, 1, store.gets)
	assert.Equal(t, defaultCacheTTL, mr.TTL("psicocare:session:6"))

	_, err = c.Get(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, 1, store.gets)

	missing, err := c.Get(ctx, 404)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRedisCache_Delete(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	c, store, mr := newTestCache(t, now)

	require.NoError(t, c.Save(ctx, &Session{TelegramID: 7, UserID: "u7"}))
	require.NoError(t, c.Delete(ctx, 7))

	assert.False(t, mr.Exists("psicocare:session:7"))
	assert.NotContains(t, store.data, int64(7))
}

func TestRedisCache_SkipsAlreadyExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	c, _, mr := newTestCache(t, now)

	require.NoError(t, c.Save(ctx, &Session{TelegramID: 8, ExpiresAt: now.Add(-time.Minute)}))
	assert.False(t, mr.Exists("psicocare:session:8"))
}
