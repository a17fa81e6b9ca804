package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"wind-storage-sim/internal/simulation"
)

var (
	// ErrNotFound is returned when no run is stored under an ID (or it expired).
	ErrNotFound = errors.New("simulation run not found")
)

// Entry is a stored run.
type Entry struct {
	ID        string
	Result    *simulation.Result
	CreatedAt time.Time
	ExpiresAt time.Time
}

// RunStore keeps finished runs in memory so the API can serve a run's trace
// after the request that produced it. Nothing survives a restart.
type RunStore struct {
	mu    sync.RWMutex
	store map[string]*Entry
	ttl   time.Duration
	now   func() time.Time
	done  chan struct{}
	once  sync.Once
}

// NewRunStore creates a store whose entries expire after ttl
// (ttl <= 0 keeps entries until Close).
func NewRunStore(ttl time.Duration) *RunStore {
	s := &RunStore{
		store: make(map[string]*Entry),
		ttl:   ttl,
		now:   time.Now,
		done:  make(chan struct{}),
	}
	if ttl > 0 {
		go s.cleanup(ttl)
	}
	return s
}

// Put stores a result under a new ID.
func (s *RunStore) Put(res *simulation.Result) *Entry {
	id := uuid.NewString()
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	e := &Entry{ID: id, Result: res, CreatedAt: now}
	if s.ttl > 0 {
		e.ExpiresAt = now.Add(s.ttl)
	}
	s.store[id] = e
	return e
}

// Get retrieves a stored run if available and not expired.
func (s *RunStore) Get(id string) (*Entry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.store[id]
	if !ok || s.expired(e, s.now()) {
		return nil, ErrNotFound
	}
	return e, nil
}

// Len reports the number of stored (possibly expired) entries.
func (s *RunStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.store)
}

// Close stops the cleanup goroutine.
func (s *RunStore) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *RunStore) expired(e *Entry, now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// purge removes expired entries.
func (s *RunStore) purge() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, e := range s.store {
		if s.expired(e, now) {
			delete(s.store, id)
		}
	}
}

// cleanup periodically removes expired entries
func (s *RunStore) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.purge()
		case <-s.done:
			return
		}
	}
}
