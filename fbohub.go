// Package fbohub reconciles FBO (fixed-base operator) facility records
// arriving from three provenance tiers: a bundled baseline dataset, the
// previously persisted merge result, and a collaborative remote store.
//
// The Manager wraps the pure reconciliation engine (pkg/reconcile) with a
// durable local store, best-effort remote synchronization, and event hooks:
//
//	hub, err := fbohub.New(
//	    fbohub.WithStore(sqliteStore),
//	    fbohub.WithRemote(mongoClient),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer hub.Close()
//
//	// Merge the remote copy of KTEB into the local collection and push
//	// pending local edits upstream.
//	result, err := hub.SyncLocation(ctx, "KTEB")
//
//	// Local reads never touch the network.
//	records, err := hub.Records(ctx, "KTEB")
//
// Remote failures are soft: a sync that cannot reach the remote store still
// persists a deduplicated local collection and reports the failure in
// SyncResult.RemoteErr. Locally entered data is never lost to a transport
// error.
package fbohub

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/propilot/fbohub/internal/locks"
	"github.com/propilot/fbohub/internal/metrics"
	"github.com/propilot/fbohub/internal/remote"
	"github.com/propilot/fbohub/internal/store"
	"github.com/propilot/fbohub/pkg/constants"
	"github.com/propilot/fbohub/pkg/errors"
	"github.com/propilot/fbohub/pkg/fbo"
	"github.com/propilot/fbohub/pkg/reconcile"
)

// Manager is the orchestration surface over the local store, the remote
// store, and the reconciliation engine.
type Manager interface {
	// Records returns the stored collection for a location, deduplicated,
	// without touching the network.
	Records(ctx context.Context, locationCode string) ([]fbo.Record, error)

	// Locations returns every location code the store knows about.
	Locations(ctx context.Context) ([]string, error)

	// SyncLocation merges the remote copy of one location into the local
	// store and pushes pending local changes back upstream.
	SyncLocation(ctx context.Context, locationCode string) (*SyncResult, error)

	// SyncAll runs SyncLocation over every known location.
	SyncAll(ctx context.Context) ([]SyncResult, error)

	// RequestSync spawns SyncLocation in the background and returns
	// immediately. Completion is observable through OnSyncCompleted.
	RequestSync(ctx context.Context, locationCode string)

	// ImportBaseline applies the bundled dataset when its version is newer
	// than what the store has recorded.
	ImportBaseline(ctx context.Context, opts ...ImportOption) (*ImportResult, error)

	// SubmitEdit merges an interactive edit into the stored collection and
	// queues it for push.
	SubmitEdit(ctx context.Context, record fbo.Record) (*fbo.Record, error)

	// Create adds a new facility. Colliding with a verified record or the
	// caller's own entry merges instead; colliding with another
	// contributor's entry fails with a ConflictError.
	Create(ctx context.Context, record fbo.Record) (*fbo.Record, error)

	// Delete removes a non-verified facility locally and best-effort
	// remotely. Verified records are protected.
	Delete(ctx context.Context, locationCode, name string) error

	// AutoSyncOn begins periodic background syncs.
	AutoSyncOn() error

	// AutoSyncOff stops periodic background syncs.
	AutoSyncOff() error

	// OnRecordAdded registers a callback for records appearing in a
	// stored collection.
	OnRecordAdded(RecordAddedHook)

	// OnRecordUpdated registers a callback for stored records changing.
	OnRecordUpdated(RecordUpdatedHook)

	// OnRecordRemoved registers a callback for records leaving a stored
	// collection.
	OnRecordRemoved(RecordRemovedHook)

	// OnSyncCompleted registers a callback invoked after every sync,
	// including background ones.
	OnSyncCompleted(SyncCompletedHook)

	// Close stops background work and releases the store.
	Close() error
}

// manager is the internal implementation of the Manager interface.
type manager struct {
	config  *config
	store   store.Store
	remote  remote.Client
	metrics *metrics.Metrics
	locks   *locks.KeyedMutex
	hooks   *hooks

	syncTicker *time.Ticker
	syncCancel context.CancelFunc
	stopCh     chan struct{}

	// Background syncs in flight; Close waits for them.
	background sync.WaitGroup
}

// Compile-time interface check to ensure proper implementation.
var _ Manager = (*manager)(nil)

// New creates a new Manager with the given options. Without options it runs
// fully offline: an in-memory store, no remote store, and metrics collected
// on a private registry.
func New(opts ...Option) (Manager, error) {
	m := &manager{
		config: defaultConfig(),
		locks:  locks.NewKeyedMutex(),
		hooks:  newHooks(),
		stopCh: make(chan struct{}),
	}

	if err := m.options(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	m.store = m.config.store
	if m.store == nil {
		m.store = store.NewMemory()
	}
	m.remote = m.config.remote
	m.metrics = m.config.metrics
	if m.metrics == nil {
		m.metrics = metrics.New(prometheus.NewRegistry())
	}

	if m.config.autoSyncEnabled {
		if err := m.AutoSyncOn(); err != nil {
			return nil, fmt.Errorf("starting auto-sync: %w", err)
		}
	}

	return m, nil
}

// options applies the given options to the manager's configuration.
func (m *manager) options(opts ...Option) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(m.config); err != nil {
			return err
		}
	}
	return nil
}

// Records returns the stored collection for a location, deduplicated.
func (m *manager) Records(ctx context.Context, locationCode string) ([]fbo.Record, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	code, err := normalizeLocationCode(locationCode)
	if err != nil {
		return nil, err
	}

	records, err := m.store.Records(ctx, code)
	if err != nil {
		return nil, err
	}
	return reconcile.Deduplicate(records), nil
}

// Locations returns every location code the store knows about.
func (m *manager) Locations(ctx context.Context) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return m.store.Locations(ctx)
}

// Close stops background work and releases the store.
func (m *manager) Close() error {
	_ = m.AutoSyncOff()
	m.background.Wait()
	return m.store.Close()
}

// normalizeLocationCode validates and upper-cases an airport code.
func normalizeLocationCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) < constants.MinLocationCodeLength || len(code) > constants.MaxLocationCodeLength {
		return "", errors.NewValidationError("location_code", code,
			fmt.Sprintf("must be %d to %d characters", constants.MinLocationCodeLength, constants.MaxLocationCodeLength))
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return "", errors.NewValidationError("location_code", code, "must contain only letters and digits")
		}
	}
	return code, nil
}

// findByKey returns the record whose normalized name matches key, or nil.
func findByKey(records []fbo.Record, key string) *fbo.Record {
	for i := range records {
		if records[i].Key() == key {
			return &records[i]
		}
	}
	return nil
}
