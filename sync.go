package fbohub

import (
	"context"
	"sync"
	"time"

	"github.com/propilot/fbohub/internal/metrics"
	"github.com/propilot/fbohub/pkg/constants"
	"github.com/propilot/fbohub/pkg/errors"
	"github.com/propilot/fbohub/pkg/fbo"
	"github.com/propilot/fbohub/pkg/logging"
	"github.com/propilot/fbohub/pkg/reconcile"
)

// SyncResult reports what one location sync did.
type SyncResult struct {
	// LocationCode is the synced airport code.
	LocationCode string

	// Records is the collection persisted by this sync.
	Records []fbo.Record

	// Merged counts incoming records folded into an existing local record.
	Merged int

	// Added counts incoming records with no local counterpart.
	Added int

	// Pushed and PushFailed count the best-effort pushes of pending local
	// changes after the merge.
	Pushed     int
	PushFailed int

	// RemoteErr is the remote fetch failure, if any. It is a soft
	// condition: the sync still completed against local data.
	RemoteErr error
}

// SyncLocation merges the remote copy of one location into the local store.
func (m *manager) SyncLocation(ctx context.Context, locationCode string) (*SyncResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	code, err := normalizeLocationCode(locationCode)
	if err != nil {
		return nil, err
	}
	ctx = logging.WithLocation(ctx, code)

	start := time.Now()
	defer func() {
		m.metrics.SyncDuration.Observe(time.Since(start).Seconds())
	}()

	// Steps 1-5 hold the per-location lock. Pushes run after release so a
	// slow remote cannot serialize readers of the same code behind it.
	result, pending, err := m.syncLocked(ctx, code)
	if err != nil {
		m.metrics.SyncsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		return nil, err
	}

	// Step 6: best-effort push of everything still awaiting upstream
	// delivery, then fold adopted remote IDs back into the store.
	result.Pushed, result.PushFailed = m.pushPending(ctx, code, pending)
	if result.Pushed > 0 {
		if refreshed, err := m.store.Records(ctx, code); err == nil {
			result.Records = refreshed
		}
	}

	outcome := metrics.OutcomeOK
	if result.RemoteErr != nil {
		outcome = metrics.OutcomeRemoteFailed
	}
	m.metrics.SyncsTotal.WithLabelValues(outcome).Inc()
	m.hooks.triggerSyncCompleted(*result)

	logging.Ctx(ctx).Debug().
		Int("records", len(result.Records)).
		Int("merged", result.Merged).
		Int("added", result.Added).
		Int("pushed", result.Pushed).
		Bool("remote_ok", result.RemoteErr == nil).
		Msg("Sync completed")
	return result, nil
}

// syncLocked runs the locked portion of a sync: read, fetch, reconcile,
// persist. It returns the records still marked for push.
func (m *manager) syncLocked(ctx context.Context, code string) (*SyncResult, []fbo.Record, error) {
	unlock := m.locks.Lock(code)
	defer unlock()

	// Step 2: current local collection, empty when the location is new.
	local, err := m.store.Records(ctx, code)
	if err != nil {
		return nil, nil, errors.WrapSync(code, err)
	}

	// Step 3: remote fetch, degrading to empty incoming data on failure.
	result := &SyncResult{LocationCode: code}
	incoming := m.fetchRemote(ctx, code, result)

	// Step 4: reconcile into one collection.
	countIncoming(local, incoming, result)
	merged := reconcile.Reconcile(local, incoming)

	// Step 5: persist unconditionally; with empty incoming this still
	// repairs any near-duplicates sitting in the local collection.
	if err := m.store.PutRecords(ctx, code, merged); err != nil {
		return nil, nil, errors.WrapSync(code, err)
	}
	m.hooks.triggerCollectionUpdate(code, local, merged)

	m.metrics.RecordsMerged.Add(float64(result.Merged))
	m.metrics.RecordsAdded.Add(float64(result.Added))

	result.Records = merged
	return result, pendingRecords(merged), nil
}

// fetchRemote pulls the remote collection for a location. Failures are soft:
// they are recorded on the result and an empty batch is returned, leaving
// the previously cached remote copy untouched.
func (m *manager) fetchRemote(ctx context.Context, code string, result *SyncResult) []fbo.Record {
	if m.remote == nil {
		result.RemoteErr = errors.ErrRemoteUnavailable
		return nil
	}

	fctx, cancel := context.WithTimeout(ctx, constants.DefaultRemoteTimeout)
	defer cancel()

	incoming, err := m.remote.Fetch(fctx, code)
	if err != nil {
		result.RemoteErr = errors.WrapRemote("fetch", code, err)
		logging.Ctx(ctx).Warn().Err(err).Msg("Remote fetch failed, continuing with local data")
		return nil
	}

	if err := m.store.PutCachedRemote(ctx, code, incoming); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Could not cache remote fetch")
	}
	return incoming
}

// countIncoming splits an incoming batch into merges and additions against
// the local collection, mirroring how Reconcile will treat each record.
func countIncoming(local, incoming []fbo.Record, result *SyncResult) {
	keys := make(map[string]struct{}, len(local))
	for _, r := range local {
		keys[r.Key()] = struct{}{}
	}
	for _, r := range incoming {
		if _, ok := keys[r.Key()]; ok {
			result.Merged++
			continue
		}
		keys[r.Key()] = struct{}{}
		result.Added++
	}
}

// pendingRecords filters a collection down to records awaiting push.
func pendingRecords(records []fbo.Record) []fbo.Record {
	var pending []fbo.Record
	for _, r := range records {
		if r.PendingPush {
			pending = append(pending, r)
		}
	}
	return pending
}

// pushPending pushes records upstream and folds the results back into the
// stored collection. A failed push is logged and counted; the record keeps
// its PendingPush mark for the next attempt.
func (m *manager) pushPending(ctx context.Context, code string, pending []fbo.Record) (pushed, failed int) {
	if m.remote == nil || len(pending) == 0 {
		return 0, 0
	}

	delivered := make([]fbo.Record, 0, len(pending))
	for _, record := range pending {
		after, err := m.pushRecord(ctx, record)
		if err != nil {
			failed++
			m.metrics.PushesTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
			logging.Ctx(ctx).Warn().Err(err).
				Str("facility", record.Name).
				Msg("Push failed, record stays queued")
			continue
		}
		pushed++
		m.metrics.PushesTotal.WithLabelValues(metrics.OutcomeOK).Inc()
		delivered = append(delivered, after)
	}

	if len(delivered) > 0 {
		if err := m.adoptPushed(ctx, code, delivered); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("Could not record push results")
		}
	}
	return pushed, failed
}

// pushRecord delivers one record: Save when it has no remote identity yet,
// Update otherwise. Save adopts the identifier assigned by the remote.
func (m *manager) pushRecord(ctx context.Context, record fbo.Record) (fbo.Record, error) {
	pctx, cancel := context.WithTimeout(ctx, constants.PushTimeout)
	defer cancel()

	if record.RemoteID == nil {
		id, err := m.remote.Save(pctx, record)
		if err != nil {
			return record, err
		}
		record.RemoteID = &id
		return record, nil
	}
	return record, m.remote.Update(pctx, record)
}

// adoptPushed writes remote identifiers assigned during a push back into
// the stored collection and clears the push mark for records that did not
// change while the push was in flight.
func (m *manager) adoptPushed(ctx context.Context, code string, delivered []fbo.Record) error {
	unlock := m.locks.Lock(code)
	defer unlock()

	current, err := m.store.Records(ctx, code)
	if err != nil {
		return err
	}
	for i := range current {
		for _, d := range delivered {
			if current[i].Key() != d.Key() {
				continue
			}
			if current[i].RemoteID == nil {
				current[i].RemoteID = d.RemoteID
			}
			// An edit that landed while the push was in flight still
			// needs its own push.
			if current[i].LastUpdated.Time.Equal(d.LastUpdated.Time) {
				current[i].PendingPush = false
			}
		}
	}
	return m.store.PutRecords(ctx, code, current)
}

// SyncAll runs SyncLocation over every known location, a bounded number at
// a time. The first hard failure is returned after all locations finish.
func (m *manager) SyncAll(ctx context.Context) ([]SyncResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	codes, err := m.store.Locations(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]SyncResult, len(codes))
	errs := make([]error, len(codes))
	sem := make(chan struct{}, constants.MaxConcurrentSyncs)
	var wg sync.WaitGroup

	for i, code := range codes {
		wg.Add(1)
		go func(i int, code string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			result, err := m.SyncLocation(ctx, code)
			if err != nil {
				errs[i] = err
				results[i] = SyncResult{LocationCode: code}
				return
			}
			results[i] = *result
		}(i, code)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// RequestSync spawns a sync for one location and returns immediately. The
// spawned sync is detached from the caller's cancellation but bounded by
// the sync timeout; Close waits for it.
func (m *manager) RequestSync(ctx context.Context, locationCode string) {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-m.stopCh:
		return
	default:
	}

	m.background.Add(1)
	go func() {
		defer m.background.Done()
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.SyncTimeout)
		defer cancel()
		if _, err := m.SyncLocation(sctx, locationCode); err != nil {
			logging.Error().Err(err).Str("location", locationCode).Msg("Background sync failed")
		}
	}()
}
