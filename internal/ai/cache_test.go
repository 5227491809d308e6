package ai

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errGeneratorFailed = errors.New("generator failed")

func newTestCache(enabled bool, ttl time.Duration, maxSize int) *ResponseCache {
	return NewResponseCache(&Config{
		CacheEnabled: enabled,
		CacheTTL:     ttl,
		CacheMaxSize: maxSize,
	})
}

func TestResponseCacheSetAndGet(t *testing.T) {
	cache := newTestCache(true, time.Hour, 10)

	cache.Set("input-a", "response-a")

	got, ok := cache.Get("input-a")
	require.True(t, ok)
	assert.Equal(t, "response-a", got)

	_, ok = cache.Get("input-b")
	assert.False(t, ok)
}

func TestResponseCacheDisabled(t *testing.T) {
	cache := newTestCache(false, time.Hour, 10)

	cache.Set("input", "response")

	_, ok := cache.Get("input")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Size())
}

func TestResponseCacheTTLExpiry(t *testing.T) {
	cache := newTestCache(true, 10*time.Millisecond, 10)

	cache.Set("input", "response")

	_, ok := cache.Get("input")
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	_, ok = cache.Get("input")
	assert.False(t, ok, "expired entry should not be returned")
}

func TestGetOrGenerateCachesResult(t *testing.T) {
	cache := newTestCache(true, time.Hour, 10)
	ctx := context.Background()

	var calls int32
	generator := func(_ context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "generated", nil
	}

	resp, hit, err := cache.GetOrGenerate(ctx, "analyze:", "same input", generator)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "generated", resp)

	resp, hit, err = cache.GetOrGenerate(ctx, "analyze:", "same input", generator)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "generated", resp)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second call should hit cache")

	hits, misses, size := cache.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
	assert.Equal(t, 1, size)
}

func TestGetOrGenerateKeyPrefixSeparatesOperations(t *testing.T) {
	cache := newTestCache(true, time.Hour, 10)
	ctx := context.Background()

	var calls int32
	generator := func(_ context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "generated", nil
	}

	_, _, err := cache.GetOrGenerate(ctx, "analyze:", "input", generator)
	require.NoError(t, err)

	_, hit, err := cache.GetOrGenerate(ctx, "rewrite:", "input", generator)
	require.NoError(t, err)
	assert.False(t, hit, "different prefix should not share entries")
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGetOrGenerateGeneratorError(t *testing.T) {
	cache := newTestCache(true, time.Hour, 10)
	ctx := context.Background()

	resp, hit, err := cache.GetOrGenerate(ctx, "analyze:", "input", func(_ context.Context) (string, error) {
		return "", errGeneratorFailed
	})

	require.ErrorIs(t, err, errGeneratorFailed)
	assert.False(t, hit)
	assert.Empty(t, resp)
	assert.Equal(t, 0, cache.Size(), "failed generation must not be cached")
}

func TestGetOrGenerateDisabledCallsGeneratorEveryTime(t *testing.T) {
	cache := newTestCache(false, time.Hour, 10)
	ctx := context.Background()

	var calls int32
	for i := 0; i < 3; i++ {
		_, hit, err := cache.GetOrGenerate(ctx, "analyze:", "input", func(_ context.Context) (string, error) {
			atomic.AddInt32(&calls, 1)
			return "generated", nil
		})
		require.NoError(t, err)
		assert.False(t, hit)
	}

	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestResponseCacheEviction(t *testing.T) {
	cache := newTestCache(true, time.Hour, 3)

	cache.Set("a", "1")
	cache.Set("b", "2")
	cache.Set("c", "3")
	cache.Set("d", "4")

	assert.LessOrEqual(t, cache.Size(), 3, "cache must not grow past max size")

	got, ok := cache.Get("d")
	require.True(t, ok, "newest entry should survive eviction")
	assert.Equal(t, "4", got)
}

func TestResponseCacheClear(t *testing.T) {
	cache := newTestCache(true, time.Hour, 10)

	cache.Set("a", "1")
	cache.Set("b", "2")
	require.Equal(t, 2, cache.Size())

	cache.Clear()

	assert.Equal(t, 0, cache.Size())
	hits, misses, _ := cache.Stats()
	assert.Equal(t, int64(0), hits)
	assert.Equal(t, int64(0), misses)
}
