package persistence

import (
	"context"
	"sort"
	"sync"

	"github.com/jonathan/cv-builder/internal/types"
)

// MemoryStore keeps encoded snapshots in a map. Values are stored as bytes so
// callers never share memory with what was written.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore returns an empty in-memory adapter.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Write implements Adapter.
func (m *MemoryStore) Write(_ context.Context, snap *types.Snapshot) error {
	raw, err := Encode(snap)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[Key(snap.ID())] = raw
	m.mu.Unlock()
	return nil
}

// Read implements Adapter.
func (m *MemoryStore) Read(_ context.Context, id string) (*types.Snapshot, error) {
	m.mu.RLock()
	raw, ok := m.data[Key(id)]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return Decode(id, raw)
}

// Delete implements Adapter.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[Key(id)]; !ok {
		return ErrNotFound
	}
	delete(m.data, Key(id))
	return nil
}

// List implements Adapter.
func (m *MemoryStore) List(_ context.Context) ([]types.Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.Summary, 0, len(m.data))
	for key, raw := range m.data {
		snap, err := Decode(key[len(KeyPrefix):], raw)
		if err != nil {
			continue
		}
		out = append(out, snap.Summary())
	}
	sortSummaries(out)
	return out, nil
}

// Len returns how many snapshots are stored.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func sortSummaries(s []types.Summary) {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].UpdatedAt.Equal(s[j].UpdatedAt) {
			return s[i].ID < s[j].ID
		}
		return s[i].UpdatedAt.After(s[j].UpdatedAt)
	})
}
