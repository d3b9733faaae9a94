package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rerrors "github.com/matzehuels/regexrail/pkg/errors"
)

func newTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisCache(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)

	_, hit, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, hit, "missing key should miss")

	require.NoError(t, c.Set(ctx, "k", []byte("svg bytes"), time.Hour))
	data, hit, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "svg bytes", string(data))
	assert.Equal(t, time.Hour, mr.TTL("k"))

	require.NoError(t, c.Delete(ctx, "k"))
	assert.False(t, mr.Exists("k"))
	assert.NoError(t, c.Delete(ctx, "k"), "deleting a missing key is not an error")
}

func TestRedisCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)

	require.NoError(t, c.Set(ctx, "short", []byte("x"), time.Minute))
	mr.FastForward(2 * time.Minute)

	_, hit, err := c.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, "forever", []byte("y"), 0))
	assert.Equal(t, time.Duration(0), mr.TTL("forever"))
}

func TestRedisCacheFromClient(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer c.Close()

	require.NoError(t, mr.Set("seeded", "value"))
	data, hit, err := c.Get(context.Background(), "seeded")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "value", string(data))
}

func TestRedisCacheBackendDown(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)
	mr.Close()

	_, _, err := c.Get(ctx, "k")
	require.Error(t, err)
	assert.True(t, IsRetryable(err), "connection failures should be retryable")
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestNewRedisCacheErrors(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "not-a-url")
	assert.True(t, rerrors.Is(err, rerrors.ErrCodeInvalidConfig), "got %v", err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewRedisCache(ctx, "redis://127.0.0.1:1/0")
	assert.True(t, rerrors.Is(err, rerrors.ErrCodeNetwork), "got %v", err)
}
