package fbohub

import (
	"context"
	"sort"

	"github.com/agentstation/utc"

	"github.com/propilot/fbohub/internal/dataset"
	"github.com/propilot/fbohub/internal/metrics"
	"github.com/propilot/fbohub/pkg/fbo"
	"github.com/propilot/fbohub/pkg/logging"
	"github.com/propilot/fbohub/pkg/reconcile"
)

// ImportResult reports what a baseline import did.
type ImportResult struct {
	// Version is the dataset version now recorded in the store.
	Version int `json:"version"`

	// Locations and Imported count the locations and records applied.
	// Both are zero when the import did not run.
	Locations int `json:"locations"`
	Imported  int `json:"imported"`

	// Skipped counts malformed dataset rows.
	Skipped int `json:"skipped"`

	// Ran reports whether the dataset was applied. False means the store
	// already carried this version or a newer one.
	Ran bool `json:"ran"`
}

// ImportOption adjusts a single ImportBaseline run.
type ImportOption func(*importOptions)

type importOptions struct {
	force     bool
	bundleDir string
}

// WithImportForce applies the dataset even when its version is not newer
// than the stored one.
func WithImportForce() ImportOption {
	return func(o *importOptions) {
		o.force = true
	}
}

// WithImportDir loads the dataset from an external bundle directory
// (manifest.yaml next to fbos.csv) instead of the embedded one.
func WithImportDir(dir string) ImportOption {
	return func(o *importOptions) {
		o.bundleDir = dir
	}
}

// ImportBaseline applies the bundled dataset to the local store. Unless
// forced, it is a no-op when the store already recorded the dataset's
// version or a newer one. Applied rows are reconciled against current store
// contents, so locally entered data always survives a re-import.
func (m *manager) ImportBaseline(ctx context.Context, opts ...ImportOption) (*ImportResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var options importOptions
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&options)
	}

	// Step 1: parse the bundle, stamping rows with the run time.
	now := utc.Now()
	var (
		ds  *dataset.Dataset
		err error
	)
	if options.bundleDir != "" {
		ds, err = dataset.LoadDir(options.bundleDir, now)
	} else {
		ds, err = dataset.Load(now)
	}
	if err != nil {
		return nil, err
	}
	for _, w := range ds.Warnings {
		logging.Warn().Int("row", w.Row).Str("reason", w.Message).Msg("Skipped dataset row")
	}
	m.metrics.ImportRows.WithLabelValues(metrics.OutcomeSkipped).Add(float64(ds.Skipped))

	// Step 2: version gate.
	stored, err := m.store.DatasetVersion(ctx)
	if err != nil {
		return nil, err
	}
	result := &ImportResult{Version: stored, Skipped: ds.Skipped}
	if ds.Version <= stored && !options.force {
		logging.Debug().
			Int("bundled", ds.Version).
			Int("stored", stored).
			Msg("Dataset already applied, skipping import")
		return result, nil
	}

	// Step 3: reconcile per location against current store contents.
	byLocation := ds.ByLocation()
	codes := make([]string, 0, len(byLocation))
	for code := range byLocation {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		rows := byLocation[code]
		if err := m.importLocation(ctx, code, rows); err != nil {
			return nil, err
		}
		result.Imported += len(rows)
	}

	// Step 4: record the version and drop cached remote data; a new
	// baseline can change which record wins a deduplication group.
	if err := m.store.SetDatasetVersion(ctx, ds.Version); err != nil {
		return nil, err
	}
	if err := m.store.InvalidateRemoteCache(ctx); err != nil {
		return nil, err
	}

	m.metrics.ImportRows.WithLabelValues(metrics.OutcomeImported).Add(float64(result.Imported))
	result.Version = ds.Version
	result.Locations = len(codes)
	result.Ran = true

	logging.Info().
		Int("version", ds.Version).
		Int("locations", result.Locations).
		Int("records", result.Imported).
		Int("skipped", result.Skipped).
		Msg("Baseline import applied")
	return result, nil
}

// importLocation merges one location's dataset rows into its stored
// collection under the location lock.
func (m *manager) importLocation(ctx context.Context, code string, rows []fbo.Record) error {
	unlock := m.locks.Lock(code)
	defer unlock()

	local, err := m.store.Records(ctx, code)
	if err != nil {
		return err
	}
	merged := reconcile.Reconcile(local, rows)
	if err := m.store.PutRecords(ctx, code, merged); err != nil {
		return err
	}
	m.hooks.triggerCollectionUpdate(code, local, merged)
	return nil
}
