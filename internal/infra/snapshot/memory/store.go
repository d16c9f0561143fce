// Package memory provides an in-memory snapshot store for tests and
// ephemeral runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"reactorcore/pkg/domain"
)

// Compile-time contract assertion.
var _ domain.SnapshotStore = (*Store)(nil)

// Store keeps snapshots in a map keyed by caller-chosen keys.
type Store struct {
	mu    sync.RWMutex
	snaps map[string]domain.Snapshot
}

// New constructs an empty store.
func New() *Store {
	return &Store{snaps: make(map[string]domain.Snapshot)}
}

// Driver implements domain.SnapshotStore.
func (s *Store) Driver() string { return "memory" }

// Save implements domain.SnapshotStore.
func (s *Store) Save(_ context.Context, key string, snap domain.Snapshot) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("empty snapshot key")
	}
	s.mu.Lock()
	s.snaps[key] = snap
	s.mu.Unlock()
	return nil
}

// Load implements domain.SnapshotStore.
func (s *Store) Load(_ context.Context, key string) (domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snaps[key]
	if !ok {
		return domain.Snapshot{}, fmt.Errorf("snapshot %s not found", key)
	}
	return snap, nil
}

// List implements domain.SnapshotStore.
func (s *Store) List(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var keys []string
	for k := range s.snaps {
		if prefix == "" || strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
