package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/distle/internal/editdist"
	"github.com/robalobadob/distle/internal/game"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	s := NewRedisStore(client, time.Minute)

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	g := game.New("cot", 3)
	_, err = g.ApplyGuess("cat")
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, g))
	assert.True(t, mr.Exists(redisKeyPrefix+g.ID))

	got, err := s.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, g, got)
	require.Len(t, got.Turns, 1)
	assert.Equal(t, editdist.Ops{editdist.OpReplace}, got.Turns[0].Transforms)
	assert.Equal(t, time.Minute, mr.TTL(redisKeyPrefix+g.ID))

	mr.FastForward(2 * time.Minute)
	_, err = s.Get(ctx, g.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreNoTTL(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	s := NewRedisStore(client, 0)

	g := game.New("cat", 3)
	require.NoError(t, s.Save(ctx, g))
	assert.Zero(t, mr.TTL(redisKeyPrefix+g.ID))
}

func TestRedisStoreCorruptEntry(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	s := NewRedisStore(client, time.Minute)

	require.NoError(t, mr.Set(redisKeyPrefix+"bad", "{not json"))
	_, err := s.Get(ctx, "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreServerDown(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	s := NewRedisStore(client, time.Minute)

	mr.Close()
	_, err := s.Get(ctx, "any")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
