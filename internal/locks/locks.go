// Package locks provides per-key mutual exclusion for location-scoped
// operations.
package locks

import (
	"sync"
)

// KeyedMutex serializes work per key while letting different keys proceed
// concurrently. Entries are never evicted; the key space is bounded by the
// set of airport codes a process touches.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyedMutex creates an empty keyed mutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key, blocking while another holder has it.
// The returned function releases it.
func (k *KeyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
