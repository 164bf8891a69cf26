package storage

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore implements an in-memory store for health snapshots.
// It is safe for concurrent use by multiple goroutines.
//
// MemoryStore uses a simple map holding the latest snapshot per source.
// If TTL is configured, a background goroutine automatically removes
// stale snapshots. For multi-instance deployments needing shared state,
// use RedisStore instead.
type MemoryStore struct {
	mu            sync.RWMutex
	snapshots     map[string]Snapshot
	ttl           time.Duration
	cleanupTicker *time.Ticker
	stopCleanup   chan struct{}
	cleanupDone   chan struct{}
	stopped       bool
	stopMu        sync.Mutex
}

// NewMemoryStore creates a new in-memory snapshot store with no TTL.
// Snapshots are kept until overwritten or deleted.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[string]Snapshot),
	}
}

// NewMemoryStoreWithTTL creates an in-memory store with automatic
// TTL-based cleanup. A background goroutine removes snapshots older than
// ttl every cleanupInterval.
//
// The cleanup goroutine must be stopped with Stop() when the store is no
// longer needed.
func NewMemoryStoreWithTTL(ttl, cleanupInterval time.Duration) *MemoryStore {
	if ttl <= 0 {
		panic("TTL must be positive")
	}
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}

	store := &MemoryStore{
		snapshots:     make(map[string]Snapshot),
		ttl:           ttl,
		cleanupTicker: time.NewTicker(cleanupInterval),
		stopCleanup:   make(chan struct{}),
		cleanupDone:   make(chan struct{}),
	}

	go store.runCleanup()

	return store
}

// Stop shuts down the background cleanup goroutine. Calling Stop multiple
// times or on a store without TTL is safe and does nothing.
func (s *MemoryStore) Stop() {
	if s.cleanupTicker == nil {
		return
	}

	s.stopMu.Lock()
	defer s.stopMu.Unlock()

	if s.stopped {
		return
	}

	close(s.stopCleanup)
	<-s.cleanupDone
	s.cleanupTicker.Stop()
	s.stopped = true
}

func (s *MemoryStore) runCleanup() {
	defer close(s.cleanupDone)

	for {
		select {
		case <-s.cleanupTicker.C:
			s.cleanup()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *MemoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ttl == 0 {
		return
	}

	now := time.Now()
	for source, snapshot := range s.snapshots {
		if now.Sub(snapshot.GeneratedAt) > s.ttl {
			delete(s.snapshots, source)
		}
	}
}

// Put stores a snapshot, replacing any existing snapshot for the same
// source. Returns an error if the snapshot's Source field is empty or if
// the context is canceled.
func (s *MemoryStore) Put(ctx context.Context, snapshot Snapshot) error {
	if snapshot.Source == "" {
		return fmt.Errorf("snapshot source cannot be empty")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots[snapshot.Source] = snapshot
	return nil
}

// GetLatest retrieves the most recent snapshot for a source.
//
// Returns:
//   - snapshot: the stored snapshot (zero value if not found)
//   - found: true if a snapshot exists for this source
//   - error: context error if the context is canceled, nil otherwise
func (s *MemoryStore) GetLatest(ctx context.Context, source string) (Snapshot, bool, error) {
	select {
	case <-ctx.Done():
		return Snapshot{}, false, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, found := s.snapshots[source]
	return snapshot, found, nil
}

// Len returns the number of snapshots currently stored. Primarily useful
// for tests.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snapshots)
}

// Delete removes a snapshot for a source. Returns true if one existed.
func (s *MemoryStore) Delete(source string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, existed := s.snapshots[source]
	delete(s.snapshots, source)
	return existed
}
