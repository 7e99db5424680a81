package fbohub

import (
	"context"
	"strings"

	"github.com/agentstation/utc"

	"github.com/propilot/fbohub/pkg/constants"
	"github.com/propilot/fbohub/pkg/errors"
	"github.com/propilot/fbohub/pkg/fbo"
	"github.com/propilot/fbohub/pkg/logging"
	"github.com/propilot/fbohub/pkg/reconcile"
)

// SubmitEdit merges an interactive edit into the stored collection for its
// location and queues it for push. When the edit carries no provenance
// label, the Manager's device label is stamped on.
func (m *manager) SubmitEdit(ctx context.Context, record fbo.Record) (*fbo.Record, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := validateInteractive(&record); err != nil {
		return nil, err
	}
	m.stamp(&record)
	return m.apply(ctx, record, false)
}

// Create adds a new facility. A normalized-name collision with a verified
// record or with the caller's own earlier entry folds into it; a collision
// with another contributor's unverified entry fails with a ConflictError so
// the caller edits the existing entry instead.
func (m *manager) Create(ctx context.Context, record fbo.Record) (*fbo.Record, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := validateInteractive(&record); err != nil {
		return nil, err
	}
	m.stamp(&record)
	return m.apply(ctx, record, true)
}

// apply runs the shared write path of SubmitEdit and Create: merge under
// the location lock, persist, then best-effort push outside the lock.
func (m *manager) apply(ctx context.Context, record fbo.Record, creating bool) (*fbo.Record, error) {
	code := record.LocationCode
	ctx = logging.WithLocation(logging.WithFacility(ctx, record.Name), code)

	unlock := m.locks.Lock(code)
	local, err := m.store.Records(ctx, code)
	if err != nil {
		unlock()
		return nil, err
	}

	if creating {
		if existing := findByKey(local, record.Key()); existing != nil {
			// A duplicate of a verified entry or of the caller's own
			// earlier entry folds in; someone else's draft blocks.
			if !existing.IsVerified && existing.UpdatedBy != record.UpdatedBy {
				unlock()
				m.metrics.ConflictsTotal.Inc()
				return nil, errors.NewConflictError(code, existing.Name, existing.UpdatedBy)
			}
		}
	}

	merged := reconcile.Reconcile(local, []fbo.Record{record})
	if err := m.store.PutRecords(ctx, code, merged); err != nil {
		unlock()
		return nil, err
	}
	m.hooks.triggerCollectionUpdate(code, local, merged)
	unlock()

	stored := findByKey(merged, record.Key())
	if stored == nil {
		return nil, errors.NewNotFoundError("facility", record.Name)
	}

	if stored.PendingPush {
		m.pushPending(ctx, code, []fbo.Record{*stored})
		if refreshed, err := m.store.Records(ctx, code); err == nil {
			if current := findByKey(refreshed, record.Key()); current != nil {
				stored = current
			}
		}
	}

	out := stored.Clone()
	return &out, nil
}

// Delete removes a facility from a location's collection. Verified records
// are protected; so is any record sharing a normalized name with a verified
// one, since deleting the displayed survivor would only resurface the
// protected duplicate underneath it.
func (m *manager) Delete(ctx context.Context, locationCode, name string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	code, err := normalizeLocationCode(locationCode)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.NewValidationError("name", name, "must not be empty")
	}
	key := fbo.Normalize(name)

	unlock := m.locks.Lock(code)
	local, err := m.store.Records(ctx, code)
	if err != nil {
		unlock()
		return err
	}

	kept := make([]fbo.Record, 0, len(local))
	var removed []fbo.Record
	for _, r := range local {
		if r.Key() == key {
			removed = append(removed, r)
			continue
		}
		kept = append(kept, r)
	}
	if len(removed) == 0 {
		unlock()
		return errors.NewNotFoundError("facility", name)
	}
	for _, r := range removed {
		if r.IsVerified {
			unlock()
			return errors.NewProtectedError(code, r.Name)
		}
	}

	if err := m.store.PutRecords(ctx, code, kept); err != nil {
		unlock()
		return err
	}
	m.hooks.triggerCollectionUpdate(code, local, kept)
	unlock()

	// Best-effort upstream cleanup for records that had a remote identity.
	if m.remote != nil {
		for _, r := range removed {
			if r.RemoteID == nil {
				continue
			}
			dctx, cancel := context.WithTimeout(ctx, constants.PushTimeout)
			if err := m.remote.Delete(dctx, *r.RemoteID); err != nil {
				logging.Ctx(ctx).Warn().Err(err).
					Str("facility", r.Name).
					Msg("Remote delete failed")
			}
			cancel()
		}
	}
	return nil
}

// validateInteractive checks an interactive record's identity fields and
// authorship, normalizing the location code and name in place.
func validateInteractive(record *fbo.Record) error {
	code, err := normalizeLocationCode(record.LocationCode)
	if err != nil {
		return err
	}
	record.LocationCode = code

	record.Name = strings.TrimSpace(record.Name)
	if record.Name == "" {
		return errors.NewValidationError("name", record.Name, "must not be empty")
	}
	if len(record.Name) > constants.MaxFacilityNameLength {
		return errors.NewValidationError("name", record.Name, "name is too long")
	}
	if fbo.Normalize(record.Name) == "" {
		return errors.NewValidationError("name", record.Name, "name is entirely generic")
	}
	if record.UpdatedBy == fbo.ImportLabel {
		return errors.NewValidationError("updated_by", record.UpdatedBy, "label is reserved for bulk imports")
	}
	return nil
}

// stamp finalizes an interactive record's provenance before merging:
// authorship, freshness, the push mark, and the fields only the backend or
// the importer may set.
func (m *manager) stamp(record *fbo.Record) {
	if record.UpdatedBy == "" {
		record.UpdatedBy = m.config.deviceLabel
	}
	record.LastUpdated = utc.Now()
	record.PendingPush = true

	// Verification and ratings are never self-asserted; merging into a
	// verified record keeps its verified status.
	record.IsVerified = false
	record.AvgRating = nil
	record.RatingCount = nil

	if record.HasFuelPrice() && record.FuelPriceDate == nil {
		record.SetFuelPrice(record.JetAPrice, record.AvgasPrice, record.LastUpdated, record.UpdatedBy)
	}
	if record.RampFee == nil {
		record.RampFeeWaived = nil
	}
}
