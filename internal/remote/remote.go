// Package remote defines the collaborative backend boundary: a fallible,
// slow record store queried by location. Callers treat every error here as
// soft; the sync orchestrator degrades to local data when a call fails.
package remote

import (
	"context"

	"github.com/propilot/fbohub/pkg/fbo"
)

// Client is the remote record store consumed by the sync orchestrator.
type Client interface {
	// Fetch returns all remote records for a location code. Returned
	// records carry their remote identifiers.
	Fetch(ctx context.Context, code string) ([]fbo.Record, error)

	// Save creates a record remotely and returns the assigned remote
	// identifier.
	Save(ctx context.Context, record fbo.Record) (string, error)

	// Update replaces the remote record identified by record.RemoteID.
	Update(ctx context.Context, record fbo.Record) error

	// Delete removes the remote record with the given identifier.
	Delete(ctx context.Context, id string) error
}
