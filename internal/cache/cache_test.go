package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestKey_ParamOrderIndependent(t *testing.T) {
	a := Key("GET", "/api/v1/oura/sleep", map[string]string{"days": "7", "day": "2025-06-01"})
	b := Key("GET", "/api/v1/oura/sleep", map[string]string{"day": "2025-06-01", "days": "7"})
	if a != b {
		t.Errorf("keys differ for identical params: %q vs %q", a, b)
	}
	if a == Key("GET", "/api/v1/oura/sleep", map[string]string{"days": "8", "day": "2025-06-01"}) {
		t.Error("keys should differ for different param values")
	}
}

func TestTTLFor(t *testing.T) {
	c := New(nil, 5*time.Minute)
	tests := []struct {
		path string
		want time.Duration
	}{
		{"/api/v1/dashboard/today", 5 * time.Minute},
		{"/api/v1/oura/sleep/grouped", 10 * time.Minute},
		{"/api/v1/oura/sleep", 10 * time.Minute},
		{"/api/v1/training/history", 5 * time.Minute}, // prefix match
		{"/api/v1/trends/overview", 10 * time.Minute}, // prefix match
		{"/api/v1/unknown", 5 * time.Minute},          // default
	}
	for _, tt := range tests {
		if got := c.TTLFor(tt.path); got != tt.want {
			t.Errorf("TTLFor(%s) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestGet_ServesFreshEntryWithoutRefetch(t *testing.T) {
	var calls int32
	fetch := func(_ context.Context, _ string, _ map[string]string) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte(`{"ok":true}`), nil
	}
	c := New(fetch, 5*time.Minute)

	for i := 0; i < 3; i++ {
		if _, err := c.Get(context.Background(), "/api/v1/dashboard/today", nil, false); err != nil {
			t.Fatalf("get %d: %v", i, err)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("expected 1 network call, got %d", n)
	}
}

func TestGet_ExpiredEntryRefetches(t *testing.T) {
	var calls int32
	fetch := func(_ context.Context, _ string, _ map[string]string) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte(`{}`), nil
	}
	c := New(fetch, 5*time.Minute)

	now := time.Now()
	c.now = func() time.Time { return now }

	if _, err := c.Get(context.Background(), "/api/v1/dashboard/today", nil, false); err != nil {
		t.Fatal(err)
	}

	// Past the 5-minute TTL: a stale entry must never be served as-is.
	now = now.Add(5*time.Minute + time.Second)
	if _, err := c.Get(context.Background(), "/api/v1/dashboard/today", nil, false); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("expected refetch after TTL expiry, got %d calls", n)
	}
}

func TestGet_ForceRefreshBypassesFreshEntry(t *testing.T) {
	var calls int32
	fetch := func(_ context.Context, _ string, _ map[string]string) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte(`{}`), nil
	}
	c := New(fetch, 5*time.Minute)

	c.Get(context.Background(), "/api/v1/dashboard/today", nil, false)
	c.Get(context.Background(), "/api/v1/dashboard/today", nil, true)
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("expected force refresh to hit the network, got %d calls", n)
	}
}

func TestGet_ConcurrentCallersShareOneCall(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	fetch := func(_ context.Context, _ string, _ map[string]string) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return []byte(`{"shared":true}`), nil
	}
	c := New(fetch, 5*time.Minute)

	const waiters = 8
	var wg sync.WaitGroup
	results := make([][]byte, waiters)
	errs := make([]error, waiters)
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.Get(context.Background(), "/api/v1/oura/readiness",
				map[string]string{"days": "2"}, false)
		}(i)
	}

	// Give all goroutines time to join the in-flight call, then release it.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected exactly 1 network call for %d concurrent callers, got %d", waiters, n)
	}
	for i := 0; i < waiters; i++ {
		if errs[i] != nil {
			t.Errorf("waiter %d: %v", i, errs[i])
		}
		if string(results[i]) != `{"shared":true}` {
			t.Errorf("waiter %d got %q", i, results[i])
		}
	}
}

func TestGet_FailureReachesAllWaitersAndIsNotCached(t *testing.T) {
	var calls int32
	boom := errors.New("backend down")
	fetch := func(_ context.Context, _ string, _ map[string]string) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		if atomic.LoadInt32(&calls) == 1 {
			return nil, boom
		}
		return []byte(`{}`), nil
	}
	c := New(fetch, 5*time.Minute)

	if _, err := c.Get(context.Background(), "/api/v1/oura/stress", nil, false); !errors.Is(err, boom) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if c.Len() != 0 {
		t.Error("failed fetch must not be cached")
	}

	// Next call retries the network.
	if _, err := c.Get(context.Background(), "/api/v1/oura/stress", nil, false); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("expected 2 calls, got %d", n)
	}
}

func TestClearAndClearAll(t *testing.T) {
	var calls int32
	fetch := func(_ context.Context, _ string, _ map[string]string) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte(`{}`), nil
	}
	c := New(fetch, 5*time.Minute)
	ctx := context.Background()

	c.Get(ctx, "/api/v1/oura/sleep", map[string]string{"days": "7"}, false)
	c.Get(ctx, "/api/v1/oura/activity", nil, false)
	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}

	c.Clear("/api/v1/oura/sleep", map[string]string{"days": "7"})
	if c.Len() != 1 {
		t.Errorf("expected 1 entry after Clear, got %d", c.Len())
	}

	c.Get(ctx, "/api/v1/oura/sleep", map[string]string{"days": "7"}, false)
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Errorf("expected refetch after Clear, got %d calls", n)
	}

	c.ClearAll()
	if c.Len() != 0 {
		t.Errorf("expected empty store after ClearAll, got %d", c.Len())
	}
}
