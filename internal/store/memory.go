package store

import (
	"context"
	"sort"
	"sync"

	"github.com/propilot/fbohub/pkg/fbo"
)

// Memory implements Store with mutex-guarded maps. It backs tests and
// ephemeral runs; collections are deep-copied on the way in and out so
// callers can never mutate stored state in place.
type Memory struct {
	mu          sync.RWMutex
	collections map[string][]fbo.Record
	remoteCache map[string][]fbo.Record
	version     int
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		collections: make(map[string][]fbo.Record),
		remoteCache: make(map[string][]fbo.Record),
	}
}

// Records returns the stored collection for a location code.
func (m *Memory) Records(_ context.Context, code string) ([]fbo.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records, ok := m.collections[code]
	if !ok {
		return []fbo.Record{}, nil
	}
	return fbo.CloneAll(records), nil
}

// PutRecords atomically replaces the stored collection for a location.
func (m *Memory) PutRecords(_ context.Context, code string, records []fbo.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.collections[code] = fbo.CloneAll(records)
	return nil
}

// Locations returns all location codes with stored collections.
func (m *Memory) Locations(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	codes := make([]string, 0, len(m.collections))
	for code := range m.collections {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes, nil
}

// DatasetVersion returns the last imported dataset version.
func (m *Memory) DatasetVersion(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.version, nil
}

// SetDatasetVersion records a completed import of the given version.
func (m *Memory) SetDatasetVersion(_ context.Context, version int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.version = version
	return nil
}

// CachedRemote returns the cached remote fetch for a location.
func (m *Memory) CachedRemote(_ context.Context, code string) ([]fbo.Record, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records, ok := m.remoteCache[code]
	if !ok {
		return nil, false, nil
	}
	return fbo.CloneAll(records), true, nil
}

// PutCachedRemote replaces the cached remote fetch for a location.
func (m *Memory) PutCachedRemote(_ context.Context, code string, records []fbo.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.remoteCache[code] = fbo.CloneAll(records)
	return nil
}

// InvalidateRemoteCache drops every cached remote fetch.
func (m *Memory) InvalidateRemoteCache(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.remoteCache = make(map[string][]fbo.Record)
	return nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() error {
	return nil
}
