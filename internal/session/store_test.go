package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	store, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if !store.LastRefresh().IsZero() {
		t.Error("fresh store should have zero last-refresh")
	}

	at := time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)
	if err := store.MarkRefreshed(at); err != nil {
		t.Fatal(err)
	}
	if got := store.LastRefresh(); !got.Equal(at) {
		t.Errorf("LastRefresh = %v, want %v", got, at)
	}

	// A second store over the same file sees the persisted timestamp.
	reopened, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := reopened.LastRefresh(); !got.Equal(at) {
		t.Errorf("reopened LastRefresh = %v, want %v", got, at)
	}
}

func TestLoadState_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := SaveState(path, &State{}); err != nil {
		t.Fatal(err)
	}

	// Overwrite with junk; loading must fail rather than silently reset.
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadState(path); err == nil {
		t.Error("expected error for corrupt state file")
	}
}
