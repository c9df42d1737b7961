package session

import (
	"sync"
	"time"
)

// Store guards the persistent session state with a mutex, mirroring how
// load cycles from the scheduler and user-triggered refreshes may race.
type Store struct {
	mu       sync.Mutex
	state    *State
	filePath string
}

// NewStore creates a Store, loading or initializing state from disk.
func NewStore(filePath string) (*Store, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	return &Store{state: state, filePath: filePath}, nil
}

// LastRefresh returns when the last full load cycle completed; zero when
// none has.
func (s *Store) LastRefresh() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.LastRefreshAt
}

// MarkRefreshed records a completed full load cycle and persists it.
func (s *Store) MarkRefreshed(at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LastRefreshAt = at
	return SaveState(s.filePath, s.state)
}
