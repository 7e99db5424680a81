package reconcile

import (
	"sort"

	"github.com/propilot/fbohub/pkg/fbo"
)

// Deduplicate collapses records whose names normalize to the same key into a
// single survivor per key. It selects, it never merges: by the time it runs
// the caller has already applied field-level merging where provenance was
// known, so this is the safety net for same-tier collisions such as two
// cached copies of the same bulk import.
//
// Survivor selection within a group: verified beats unverified; otherwise the
// strictly newer LastUpdated wins; otherwise the first-encountered record is
// kept so repeated runs stay deterministic. The result is sorted by Name
// ascending.
func Deduplicate(records []fbo.Record) []fbo.Record {
	if len(records) == 0 {
		return []fbo.Record{}
	}

	// Group by normalized name, preserving first-encountered order per key.
	order := make([]string, 0, len(records))
	groups := make(map[string][]fbo.Record, len(records))
	for _, r := range records {
		key := r.Key()
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], r)
	}

	out := make([]fbo.Record, 0, len(order))
	for _, key := range order {
		out = append(out, survivor(groups[key]))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// survivor picks the winning record of a duplicate group.
func survivor(group []fbo.Record) fbo.Record {
	winner := group[0]
	for _, candidate := range group[1:] {
		if beats(candidate, winner) {
			winner = candidate
		}
	}
	return winner
}

// beats reports whether candidate should replace the current winner.
// Equal standing keeps the winner, which preserves first-encountered order.
func beats(candidate, winner fbo.Record) bool {
	if candidate.IsVerified != winner.IsVerified {
		return candidate.IsVerified
	}
	return candidate.LastUpdated.Time.After(winner.LastUpdated.Time)
}
