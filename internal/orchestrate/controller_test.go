package orchestrate

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"HealthPulse/internal/cache"
	"HealthPulse/internal/session"
)

func newTestController(t *testing.T) (*Controller, *int32) {
	t.Helper()
	var fetches int32
	fetch := func(_ context.Context, _ string, _ map[string]string) ([]byte, error) {
		atomic.AddInt32(&fetches, 1)
		return []byte(`null`), nil
	}
	c := cache.New(fetch, time.Minute)

	store, err := session.NewStore(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatal(err)
	}
	return NewController(NewLoader(c, store), c, store), &fetches
}

func TestOnResume_FreshStateSkipsLoad(t *testing.T) {
	ctrl, fetches := newTestController(t)
	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	ctrl.Now = func() time.Time { return base }

	if err := ctrl.Store.MarkRefreshed(base.Add(-2 * time.Minute)); err != nil {
		t.Fatal(err)
	}
	if _, err := ctrl.OnResume(context.Background()); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(fetches); n != 0 {
		t.Errorf("fresh resume must not fetch, got %d fetches", n)
	}
}

func TestOnResume_StaleStateTriggersLoad(t *testing.T) {
	ctrl, fetches := newTestController(t)
	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	ctrl.Now = func() time.Time { return base }

	if err := ctrl.Store.MarkRefreshed(base.Add(-6 * time.Minute)); err != nil {
		t.Fatal(err)
	}
	if _, err := ctrl.OnResume(context.Background()); err != nil {
		t.Fatal(err)
	}
	// Tier 1 loads synchronously, so its fetches have happened by now.
	if n := atomic.LoadInt32(fetches); n == 0 {
		t.Error("stale resume must start a load cycle")
	}
}

func TestOnResume_NoHistoryTriggersLoad(t *testing.T) {
	ctrl, fetches := newTestController(t)
	if _, err := ctrl.OnResume(context.Background()); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(fetches); n == 0 {
		t.Error("first resume must start a load cycle")
	}
}

func TestForceRefresh_BypassesCachedEntries(t *testing.T) {
	ctrl, fetches := newTestController(t)

	if _, err := ctrl.OnEnter(context.Background()); err != nil {
		t.Fatal(err)
	}
	before := atomic.LoadInt32(fetches)
	if before == 0 {
		t.Fatal("enter must fetch")
	}

	if _, err := ctrl.ForceRefresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if after := atomic.LoadInt32(fetches); after <= before {
		t.Errorf("force refresh must re-fetch despite fresh cache entries: %d -> %d", before, after)
	}
}
