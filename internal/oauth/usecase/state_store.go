package usecase

import (
	"sync"
	"time"
)

// StateStore tracks outstanding OAuth state values between the start and
// callback legs of the authorization flow.
type StateStore interface {
	// Put registers a state value for the given provider.
	Put(state, provider string)

	// Consume atomically retrieves and removes the provider bound to a state
	// value. Returns false for unknown and expired states alike.
	Consume(state string) (provider string, ok bool)
}

// stateEntry binds a state value to its provider with an expiry deadline.
type stateEntry struct {
	provider  string
	expiresAt time.Time
}

// MemoryStateStore is an in-memory StateStore with TTL-based expiry.
// A background goroutine sweeps expired entries so abandoned flows do not
// accumulate; Close stops it.
type MemoryStateStore struct {
	mu      sync.Mutex
	entries map[string]stateEntry
	ttl     time.Duration
	done    chan struct{}
	once    sync.Once
}

// NewMemoryStateStore creates an in-memory state store whose entries expire
// after ttl.
func NewMemoryStateStore(ttl time.Duration) *MemoryStateStore {
	store := &MemoryStateStore{
		entries: make(map[string]stateEntry),
		ttl:     ttl,
		done:    make(chan struct{}),
	}

	go store.sweep(time.Minute)

	return store
}

// Put registers a state value for the given provider.
func (s *MemoryStateStore) Put(state, provider string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[state] = stateEntry{
		provider:  provider,
		expiresAt: time.Now().Add(s.ttl),
	}
}

// Consume atomically retrieves and removes the provider bound to a state value.
func (s *MemoryStateStore) Consume(state string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[state]
	if !ok {
		return "", false
	}
	delete(s.entries, state)

	if time.Now().After(entry.expiresAt) {
		return "", false
	}
	return entry.provider, true
}

// Close stops the background sweeper.
func (s *MemoryStateStore) Close() {
	s.once.Do(func() {
		close(s.done)
	})
}

// sweep periodically removes expired entries to bound memory growth from
// abandoned authorization flows.
func (s *MemoryStateStore) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for state, entry := range s.entries {
				if now.After(entry.expiresAt) {
					delete(s.entries, state)
				}
			}
			s.mu.Unlock()
		}
	}
}
