package remote

import (
	"context"
	"fmt"
	"sync"

	"github.com/propilot/fbohub/pkg/fbo"
)

// Fake is an in-memory Client for tests. Error fields script the next
// failure for each operation; counters record traffic.
type Fake struct {
	mu      sync.Mutex
	records map[string][]fbo.Record
	nextID  int

	FetchErr  error
	SaveErr   error
	UpdateErr error
	DeleteErr error

	FetchCalls  int
	SaveCalls   int
	UpdateCalls int
	DeleteCalls int
}

var _ Client = (*Fake)(nil)

// NewFake creates an empty fake remote store.
func NewFake() *Fake {
	return &Fake{records: make(map[string][]fbo.Record)}
}

// Seed places records for a location without counting as traffic. Seeded
// records without a RemoteID get one assigned.
func (f *Fake) Seed(code string, records ...fbo.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, r := range records {
		if r.RemoteID == nil {
			id := f.assignID()
			r.RemoteID = &id
		}
		f.records[code] = append(f.records[code], r.Clone())
	}
}

// Records returns the current remote contents for a location.
func (f *Fake) Records(code string) []fbo.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fbo.CloneAll(f.records[code])
}

// Fetch returns all records for a location code.
func (f *Fake) Fetch(_ context.Context, code string) ([]fbo.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.FetchCalls++
	if f.FetchErr != nil {
		return nil, f.FetchErr
	}
	return fbo.CloneAll(f.records[code]), nil
}

// Save stores a record and returns a generated identifier.
func (f *Fake) Save(_ context.Context, record fbo.Record) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.SaveCalls++
	if f.SaveErr != nil {
		return "", f.SaveErr
	}

	id := f.assignID()
	stored := record.Clone()
	stored.RemoteID = &id
	stored.PendingPush = false
	f.records[record.LocationCode] = append(f.records[record.LocationCode], stored)
	return id, nil
}

// Update replaces the stored record with a matching RemoteID.
func (f *Fake) Update(_ context.Context, record fbo.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.UpdateCalls++
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	if record.RemoteID == nil {
		return fmt.Errorf("update without remote id")
	}

	for code, records := range f.records {
		for i := range records {
			if records[i].RemoteID != nil && *records[i].RemoteID == *record.RemoteID {
				stored := record.Clone()
				stored.PendingPush = false
				f.records[code][i] = stored
				return nil
			}
		}
	}
	return fmt.Errorf("remote record %s not found", *record.RemoteID)
}

// Delete removes the stored record with the given identifier.
func (f *Fake) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.DeleteCalls++
	if f.DeleteErr != nil {
		return f.DeleteErr
	}

	for code, records := range f.records {
		for i := range records {
			if records[i].RemoteID != nil && *records[i].RemoteID == id {
				f.records[code] = append(records[:i], records[i+1:]...)
				return nil
			}
		}
	}
	return fmt.Errorf("remote record %s not found", id)
}

func (f *Fake) assignID() string {
	f.nextID++
	return fmt.Sprintf("remote-%d", f.nextID)
}
