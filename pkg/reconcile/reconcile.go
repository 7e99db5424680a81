// Package reconcile merges facility record collections from different
// provenance tiers into one authoritative collection per airport. It is
// deliberately pure: every function takes and returns plain record slices,
// leaving persistence and networking to the caller.
package reconcile

import (
	"github.com/propilot/fbohub/pkg/fbo"
)

// Reconcile folds an incoming batch of records into the local collection for
// a single location. Incoming records that match a local record by normalized
// name are merged field by field; unmatched incoming records are inserted as
// facilities only the remote side knows about. The combined set then passes
// through Deduplicate as a safety net against near-duplicate names inside the
// incoming batch itself.
//
// Reconcile(local, nil) is equivalent to Deduplicate(local), which is what
// makes a sync with an unreachable remote a harmless no-op.
func Reconcile(local, incoming []fbo.Record) []fbo.Record {
	// Lookup of local records by normalized name, keeping first-encountered
	// order so the final dedupe stays deterministic.
	order := make([]string, 0, len(local)+len(incoming))
	byKey := make(map[string]fbo.Record, len(local)+len(incoming))
	for _, r := range local {
		key := r.Key()
		if _, seen := byKey[key]; !seen {
			order = append(order, key)
			byKey[key] = r
			continue
		}
		// Same-tier collision already in the local set; let Deduplicate's
		// selection rules decide rather than silently dropping one side.
		byKey[key] = survivor([]fbo.Record{byKey[key], r})
	}

	for _, r := range incoming {
		key := r.Key()
		if existing, ok := byKey[key]; ok {
			byKey[key] = Merge(existing, r)
			continue
		}
		order = append(order, key)
		byKey[key] = r
	}

	combined := make([]fbo.Record, 0, len(order))
	for _, key := range order {
		combined = append(combined, byKey[key])
	}

	return Deduplicate(combined)
}
