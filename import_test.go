package fbohub

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propilot/fbohub/pkg/fbo"
)

func TestImportBaselineAppliesEmbeddedDataset(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	res, err := m.ImportBaseline(ctx)
	require.NoError(t, err)

	assert.True(t, res.Ran)
	assert.Equal(t, 3, res.Version)
	assert.GreaterOrEqual(t, res.Locations, 10)
	assert.GreaterOrEqual(t, res.Imported, 20)
	assert.Zero(t, res.Skipped)

	locations, err := m.Locations(ctx)
	require.NoError(t, err)
	assert.Len(t, locations, res.Locations)
	assert.Contains(t, locations, "KSFO")

	teb, err := m.Records(ctx, "KTEB")
	require.NoError(t, err)
	require.Len(t, teb, 3)
	for _, r := range teb {
		assert.True(t, r.IsVerified)
		assert.Equal(t, fbo.ImportLabel, r.UpdatedBy)
	}
}

func TestImportBaselineVersionGate(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	res, err := m.ImportBaseline(ctx)
	require.NoError(t, err)
	require.True(t, res.Ran)

	// Same bundled version, so nothing to do.
	res, err = m.ImportBaseline(ctx)
	require.NoError(t, err)
	assert.False(t, res.Ran)
	assert.Equal(t, 3, res.Version)
	assert.Zero(t, res.Imported)

	// Unless forced.
	res, err = m.ImportBaseline(ctx, WithImportForce())
	require.NoError(t, err)
	assert.True(t, res.Ran)
}

func TestImportBaselinePreservesLocalEdits(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	_, err := m.ImportBaseline(ctx)
	require.NoError(t, err)

	edit := editRecord("KTEB", "Meridian Teterboro", "pilot-1")
	edit.Phone = ptr("+1 201 555 0150")
	_, err = m.SubmitEdit(ctx, edit)
	require.NoError(t, err)

	_, err = m.ImportBaseline(ctx, WithImportForce())
	require.NoError(t, err)

	teb, err := m.Records(ctx, "KTEB")
	require.NoError(t, err)
	require.Len(t, teb, 3)

	meridian := findByKey(teb, fbo.Normalize("Meridian Teterboro"))
	require.NotNil(t, meridian)
	require.NotNil(t, meridian.Phone, "local edit survives a forced re-import")
	assert.Equal(t, "+1 201 555 0150", *meridian.Phone)
	assert.True(t, meridian.PendingPush, "the edit still waits for a push")
}

func TestImportBaselineInvalidatesRemoteCache(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.store.PutCachedRemote(ctx, "KSFO", []fbo.Record{
		editRecord("KSFO", "Atlantic Jet Center", "pilot-2"),
	}))

	_, err := m.ImportBaseline(ctx)
	require.NoError(t, err)

	_, ok, err := m.store.CachedRemote(ctx, "KSFO")
	require.NoError(t, err)
	assert.False(t, ok, "a new baseline drops stale remote copies")
}

func TestImportBaselineFromDirectory(t *testing.T) {
	dir := t.TempDir()
	manifest := "version: 99\nname: test-bundle\n"
	records := "airport_code,name,phone,unicom,website,jet_a_price,avgas_price," +
		"crew_cars,crew_lounge,catering,maintenance,hangars,deice,oxygen,gpu,lav," +
		"handling_fee,overnight_fee,ramp_fee,ramp_fee_waived\n" +
		"KRHV,NICE AIR,+1 408 555 0100,,,7.10,6.40,1,1,,,,,,,,,,,\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.yaml"), []byte(manifest), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fbos.csv"), []byte(records), 0o644))

	m := newTestManager(t)
	ctx := context.Background()

	res, err := m.ImportBaseline(ctx, WithImportDir(dir))
	require.NoError(t, err)
	assert.True(t, res.Ran)
	assert.Equal(t, 99, res.Version)
	assert.Equal(t, 1, res.Locations)
	assert.Equal(t, 1, res.Imported)

	stored, err := m.Records(ctx, "KRHV")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Nice Air", stored[0].Name)
	assert.True(t, stored[0].IsVerified)
	require.NotNil(t, stored[0].JetAPrice)
	assert.Equal(t, 7.10, *stored[0].JetAPrice)
}
