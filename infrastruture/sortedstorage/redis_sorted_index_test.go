package sortedstorage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const key = "mazeview:snapshots:recent"

func newIndex(t *testing.T, ttlSeconds int) (*miniredis.Miniredis, *RedisSortedIndex) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	index, err := NewRedisSortedIndex(client, ttlSeconds)
	require.NoError(t, err)
	return mr, index.(*RedisSortedIndex)
}

func TestPush(t *testing.T) {
	t.Run("Expiry is set on first insert only", func(t *testing.T) {
		mr, index := newIndex(t, 3600)
		ctx := context.Background()

		require.NoError(t, index.Push(ctx, key, 1, "a"))
		assert.Equal(t, time.Hour, mr.TTL(key))

		mr.FastForward(10 * time.Minute)
		require.NoError(t, index.Push(ctx, key, 2, "b"))
		assert.Equal(t, 50*time.Minute, mr.TTL(key))
		assert.Equal(t, int64(2), index.Count(ctx, key))
	})

	t.Run("Key is gone after expiry", func(t *testing.T) {
		mr, index := newIndex(t, 60)
		ctx := context.Background()

		require.NoError(t, index.Push(ctx, key, 1, "a"))
		mr.FastForward(61 * time.Second)
		assert.Equal(t, int64(0), index.Count(ctx, key))
	})
}

func TestLatest(t *testing.T) {
	_, index := newIndex(t, 3600)
	ctx := context.Background()
	require.NoError(t, index.Push(ctx, key, 20, "b"))
	require.NoError(t, index.Push(ctx, key, 30, "c"))
	require.NoError(t, index.Push(ctx, key, 10, "a"))

	t.Run("Newest first, capped at n", func(t *testing.T) {
		got, err := index.Latest(ctx, key, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "b"}, got)
	})

	t.Run("n larger than the set", func(t *testing.T) {
		got, err := index.Latest(ctx, key, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "b", "a"}, got)
	})

	t.Run("Non-positive n returns nothing", func(t *testing.T) {
		for _, n := range []int64{0, -1} {
			got, err := index.Latest(ctx, key, n)
			require.NoError(t, err)
			assert.Empty(t, got)
		}
	})

	t.Run("Missing key", func(t *testing.T) {
		got, err := index.Latest(ctx, "missing", 5)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
