package session

import (
	"context"
	"testing"
	"time"

	"hotelsupport/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, time.Hour), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	s := &models.Session{
		ID:       "abc",
		UserName: "Amina",
		Rooms:    map[string]models.Room{"room_101": {Type: "single", Price: 100, Available: true}},
	}
	_, err := store.Create(ctx, s)
	require.NoError(t, err)
	assert.True(t, mr.Exists("hotel:session:abc"))
	assert.Equal(t, time.Hour, mr.TTL("hotel:session:abc"))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "Amina", got.UserName)
	assert.Equal(t, 100.0, got.Rooms["room_101"].Price)

	got.UserName = "Omar"
	require.NoError(t, store.Save(ctx, got))
	again, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "Omar", again.UserName)

	require.NoError(t, store.Delete(ctx, "abc"))
	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRedisStoreDoesNotResurrectExpiredSessions(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	s := &models.Session{ID: "gone", Rooms: map[string]models.Room{}}
	_, err := store.Create(ctx, s)
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	assert.ErrorIs(t, store.Save(ctx, s), models.ErrNotFound)
	_, err = store.Get(ctx, "gone")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRedisStoreRejectsDuplicateCreate(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	s := &models.Session{ID: "dup", Rooms: map[string]models.Room{}}
	_, err := store.Create(ctx, s)
	require.NoError(t, err)
	_, err = store.Create(ctx, s)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
