package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsInvalidExpiry(t *testing.T) {
	_, err := New(0)
	assert.ErrorIs(t, err, ErrInvalidExpiry)

	_, err = New(-time.Minute)
	assert.ErrorIs(t, err, ErrInvalidExpiry)

	s, err := New(5 * time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, s.Expiry())
	assert.Equal(t, 0, s.Len())
}

func TestGetFreshnessWindow(t *testing.T) {
	s, err := New(300 * time.Second)
	require.NoError(t, err)

	t0 := time.Unix(1_700_000_000, 0)
	key := Key("k")
	s.Put(key, "v", t0)

	for _, offset := range []time.Duration{0, time.Second, 100 * time.Second, 299 * time.Second} {
		v, ok := s.Get(key, t0.Add(offset))
		assert.True(t, ok, "expected hit at +%s", offset)
		assert.Equal(t, "v", v)
	}

	for _, offset := range []time.Duration{300 * time.Second, 301 * time.Second, time.Hour} {
		_, ok := s.Get(key, t0.Add(offset))
		assert.False(t, ok, "expected miss at +%s", offset)
	}

	// Staleness does not delete: the entry is still there and a fresh Put
	// for the same key replaces it rather than appending.
	assert.Equal(t, 1, s.Len())
	s.Put(key, "v2", t0.Add(400*time.Second))
	assert.Equal(t, 1, s.Len())
	v, ok := s.Get(key, t0.Add(401*time.Second))
	require.True(t, ok)
	assert.Equal(t, "v2", v)
}

func TestPutOverwrites(t *testing.T) {
	s, err := New(time.Minute)
	require.NoError(t, err)

	t0 := time.Unix(0, 0)
	s.Put("k", 1, t0)
	s.Put("k", 2, t0.Add(time.Second))

	v, ok := s.Get("k", t0.Add(2*time.Second))
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, s.Len())
}

func TestFetchOrGetCachesWithinWindow(t *testing.T) {
	s, err := New(300 * time.Second)
	require.NoError(t, err)

	var calls atomic.Int64
	fetch := func(ctx context.Context, req Request) (any, error) {
		calls.Add(1)
		return "R1", nil
	}

	req := Request{"action": "quote", "ticker": "AAPL"}
	t0 := time.Unix(1_700_000_000, 0)

	v, err := s.FetchOrGet(context.Background(), req, t0, fetch)
	require.NoError(t, err)
	assert.Equal(t, "R1", v)
	assert.EqualValues(t, 1, calls.Load())

	// Identical call within the window short-circuits the fetch, even with
	// permuted argument order.
	v, err = s.FetchOrGet(context.Background(), Request{"ticker": "AAPL", "action": "quote"}, t0.Add(100*time.Second), fetch)
	require.NoError(t, err)
	assert.Equal(t, "R1", v)
	assert.EqualValues(t, 1, calls.Load())

	// Past the window the fetch runs again.
	_, err = s.FetchOrGet(context.Background(), req, t0.Add(301*time.Second), fetch)
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load())
}

func TestFetchOrGetDistinctRequests(t *testing.T) {
	s, err := New(time.Minute)
	require.NoError(t, err)

	var calls atomic.Int64
	fetch := func(ctx context.Context, req Request) (any, error) {
		calls.Add(1)
		return req["symbol"], nil
	}

	t0 := time.Unix(0, 0)
	for _, sym := range []string{"AAPL", "MSFT", "AAPL", "GOOG", "MSFT"} {
		v, err := s.FetchOrGet(context.Background(), Request{"action": "quote", "symbol": sym}, t0, fetch)
		require.NoError(t, err)
		assert.Equal(t, sym, v)
	}
	assert.EqualValues(t, 3, calls.Load())
	assert.Equal(t, 3, s.Len())
}

func TestFetchOrGetErrorNotCached(t *testing.T) {
	s, err := New(time.Minute)
	require.NoError(t, err)

	upstream := errors.New("upstream unavailable")
	var calls atomic.Int64
	failing := func(ctx context.Context, req Request) (any, error) {
		calls.Add(1)
		return nil, upstream
	}

	req := Request{"action": "quote", "symbol": "AAPL"}
	t0 := time.Unix(0, 0)

	_, err = s.FetchOrGet(context.Background(), req, t0, failing)
	assert.ErrorIs(t, err, upstream)
	assert.Equal(t, 0, s.Len())

	// The next identical call retries upstream instead of serving the error.
	_, err = s.FetchOrGet(context.Background(), req, t0, failing)
	assert.ErrorIs(t, err, upstream)
	assert.EqualValues(t, 2, calls.Load())
}

func TestFetchOrGetSingleFlight(t *testing.T) {
	s, err := New(time.Minute)
	require.NoError(t, err)

	var calls atomic.Int64
	release := make(chan struct{})
	fetch := func(ctx context.Context, req Request) (any, error) {
		calls.Add(1)
		<-release
		return "R", nil
	}

	req := Request{"action": "quote", "symbol": "AAPL"}
	t0 := time.Unix(0, 0)

	const n = 8
	var wg sync.WaitGroup
	results := make([]any, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := s.FetchOrGet(context.Background(), req, t0, fetch)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	// Let the goroutines pile up behind the one in-flight fetch.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load(), "identical concurrent requests must share one fetch")
	for _, v := range results {
		assert.Equal(t, "R", v)
	}
}

func TestFetchOrGetCanonicalizeError(t *testing.T) {
	s, err := New(time.Minute)
	require.NoError(t, err)

	_, err = s.FetchOrGet(context.Background(), Request{"bad": make(chan int)}, time.Now(), func(ctx context.Context, req Request) (any, error) {
		t.Fatal("fetch must not run for an uncanonicalizable request")
		return nil, nil
	})
	assert.Error(t, err)
}
