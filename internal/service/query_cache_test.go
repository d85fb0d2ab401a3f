package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQueryCacheMemoizesWithinTTL(t *testing.T) {
	cache := NewQueryCache(time.Minute)

	calls := 0
	loader := func() (interface{}, error) {
		calls++
		return calls, nil
	}

	first, err := cache.Get("key", false, loader)
	require.NoError(t, err)
	require.Equal(t, 1, first)

	second, err := cache.Get("key", false, loader)
	require.NoError(t, err)
	require.Equal(t, 1, second)
	require.Equal(t, 1, calls)
}

func TestQueryCacheExpiresAfterTTL(t *testing.T) {
	cache := NewQueryCache(time.Minute)

	current := time.Now()
	cache.now = func() time.Time { return current }

	calls := 0
	loader := func() (interface{}, error) {
		calls++
		return calls, nil
	}

	_, err := cache.Get("key", false, loader)
	require.NoError(t, err)

	// Just inside the TTL: still memoized
	current = current.Add(59 * time.Second)
	value, err := cache.Get("key", false, loader)
	require.NoError(t, err)
	require.Equal(t, 1, value)

	// Past the TTL: loader runs again
	current = current.Add(2 * time.Second)
	value, err = cache.Get("key", false, loader)
	require.NoError(t, err)
	require.Equal(t, 2, value)
}

func TestQueryCacheForceBypassesFreshEntry(t *testing.T) {
	cache := NewQueryCache(time.Minute)

	calls := 0
	loader := func() (interface{}, error) {
		calls++
		return calls, nil
	}

	_, err := cache.Get("key", false, loader)
	require.NoError(t, err)

	value, err := cache.Get("key", true, loader)
	require.NoError(t, err)
	require.Equal(t, 2, value)

	// The forced result replaces the memo for subsequent reads
	value, err = cache.Get("key", false, loader)
	require.NoError(t, err)
	require.Equal(t, 2, value)
}

func TestQueryCacheKeysAreIndependent(t *testing.T) {
	cache := NewQueryCache(time.Minute)

	_, err := cache.Get("a", false, func() (interface{}, error) { return "a1", nil })
	require.NoError(t, err)
	_, err = cache.Get("b", false, func() (interface{}, error) { return "b1", nil })
	require.NoError(t, err)

	cache.Invalidate("a")

	value, err := cache.Get("b", false, func() (interface{}, error) { return "b2", nil })
	require.NoError(t, err)
	require.Equal(t, "b1", value)

	value, err = cache.Get("a", false, func() (interface{}, error) { return "a2", nil })
	require.NoError(t, err)
	require.Equal(t, "a2", value)
}

func TestQueryCacheLoaderErrorKeepsPreviousEntry(t *testing.T) {
	cache := NewQueryCache(time.Minute)

	_, err := cache.Get("key", false, func() (interface{}, error) { return "stale", nil })
	require.NoError(t, err)

	_, err = cache.Get("key", true, func() (interface{}, error) { return nil, errors.New("db down") })
	require.Error(t, err)

	value, err := cache.Get("key", false, func() (interface{}, error) { return "fresh", nil })
	require.NoError(t, err)
	require.Equal(t, "stale", value)
}
