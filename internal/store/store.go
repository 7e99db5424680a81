// Package store provides the durable local store backing the reconciliation
// engine: one atomically replaced record collection per location code, a
// small metadata table for the bundled dataset version, and a cache of
// unmerged remote fetches that a dataset version bump invalidates.
package store

import (
	"context"

	"github.com/propilot/fbohub/pkg/fbo"
)

// Store is the local persistence boundary. All mutation is whole-collection
// replacement per location so a reader never observes a partially merged
// record.
type Store interface {
	// Records returns the stored collection for a location code, or an
	// empty slice when the location is unknown.
	Records(ctx context.Context, code string) ([]fbo.Record, error)

	// PutRecords atomically replaces the stored collection for a location.
	PutRecords(ctx context.Context, code string, records []fbo.Record) error

	// Locations returns all location codes with stored collections,
	// sorted ascending.
	Locations(ctx context.Context) ([]string, error)

	// DatasetVersion returns the last imported bundled dataset version,
	// zero when no import has run.
	DatasetVersion(ctx context.Context) (int, error)

	// SetDatasetVersion records a completed import of the given version.
	SetDatasetVersion(ctx context.Context, version int) error

	// CachedRemote returns the last successful unmerged remote fetch for a
	// location. The second return is false when no cache entry exists.
	CachedRemote(ctx context.Context, code string) ([]fbo.Record, bool, error)

	// PutCachedRemote replaces the cached remote fetch for a location.
	PutCachedRemote(ctx context.Context, code string, records []fbo.Record) error

	// InvalidateRemoteCache drops every cached remote fetch. Called after
	// a dataset version bump so fixed duplicates cannot be reintroduced
	// from stale remote snapshots.
	InvalidateRemoteCache(ctx context.Context) error

	// Close releases the underlying resources.
	Close() error
}
