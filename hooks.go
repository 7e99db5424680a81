package fbohub

import (
	"reflect"
	"sync"

	"github.com/propilot/fbohub/pkg/fbo"
)

// Hook function types for collection events
type (
	// RecordAddedHook is called when a facility record appears in a
	// stored collection
	RecordAddedHook func(locationCode string, record fbo.Record)

	// RecordUpdatedHook is called when a stored facility record changes
	RecordUpdatedHook func(locationCode string, old, new fbo.Record)

	// RecordRemovedHook is called when a facility record leaves a stored
	// collection
	RecordRemovedHook func(locationCode string, record fbo.Record)

	// SyncCompletedHook is called after each location sync, including
	// background ones
	SyncCompletedHook func(result SyncResult)
)

// hooks manages event callbacks for collection changes
type hooks struct {
	mu              sync.RWMutex
	onRecordAdded   []RecordAddedHook
	onRecordUpdated []RecordUpdatedHook
	onRecordRemoved []RecordRemovedHook
	onSyncCompleted []SyncCompletedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnRecordAdded registers a callback for records appearing in a collection
func (m *manager) OnRecordAdded(fn RecordAddedHook) {
	m.hooks.mu.Lock()
	defer m.hooks.mu.Unlock()
	m.hooks.onRecordAdded = append(m.hooks.onRecordAdded, fn)
}

// OnRecordUpdated registers a callback for stored records changing
func (m *manager) OnRecordUpdated(fn RecordUpdatedHook) {
	m.hooks.mu.Lock()
	defer m.hooks.mu.Unlock()
	m.hooks.onRecordUpdated = append(m.hooks.onRecordUpdated, fn)
}

// OnRecordRemoved registers a callback for records leaving a collection
func (m *manager) OnRecordRemoved(fn RecordRemovedHook) {
	m.hooks.mu.Lock()
	defer m.hooks.mu.Unlock()
	m.hooks.onRecordRemoved = append(m.hooks.onRecordRemoved, fn)
}

// OnSyncCompleted registers a callback invoked after every sync
func (m *manager) OnSyncCompleted(fn SyncCompletedHook) {
	m.hooks.mu.Lock()
	defer m.hooks.mu.Unlock()
	m.hooks.onSyncCompleted = append(m.hooks.onSyncCompleted, fn)
}

// triggerCollectionUpdate diffs a location's collection before and after a
// store write and fires the matching record hooks.
func (h *hooks) triggerCollectionUpdate(locationCode string, before, after []fbo.Record) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.onRecordAdded) == 0 && len(h.onRecordUpdated) == 0 && len(h.onRecordRemoved) == 0 {
		return
	}

	oldByKey := make(map[string]fbo.Record, len(before))
	for _, record := range before {
		oldByKey[record.Key()] = record
	}
	newByKey := make(map[string]fbo.Record, len(after))
	for _, record := range after {
		newByKey[record.Key()] = record
	}

	for _, record := range after {
		old, exists := oldByKey[record.Key()]
		if !exists {
			for _, hook := range h.onRecordAdded {
				hook(locationCode, record)
			}
			continue
		}
		if !reflect.DeepEqual(old, record) {
			for _, hook := range h.onRecordUpdated {
				hook(locationCode, old, record)
			}
		}
	}

	for _, record := range before {
		if _, exists := newByKey[record.Key()]; !exists {
			for _, hook := range h.onRecordRemoved {
				hook(locationCode, record)
			}
		}
	}
}

// triggerSyncCompleted fires the sync-completion hooks.
func (h *hooks) triggerSyncCompleted(result SyncResult) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onSyncCompleted {
		hook(result)
	}
}
