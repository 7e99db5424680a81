package reconcile

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/propilot/fbohub/pkg/fbo"
)

// TestReconcileEmptyIncoming verifies the idempotence property: reconciling
// against nothing is the same as deduplicating the local set.
func TestReconcileEmptyIncoming(t *testing.T) {
	local := []fbo.Record{
		createRecord("Million Air", false, day(2)),
		createRecord("Signature", false, day(9)),
		createRecord("Signature Aviation", true, day(1)),
	}

	got := Reconcile(local, nil)
	want := Deduplicate(local)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Reconcile(X, nil) != Deduplicate(X) (-want +got):\n%s", diff)
	}
}

func TestReconcileMergeAndInsert(t *testing.T) {
	local := []fbo.Record{
		createBaseline("Signature Aviation", day(1)),
	}
	incoming := []fbo.Record{
		createEdit("Signature", "pilot1", day(5)),
		createEdit("Million Air", "pilot2", day(3)),
	}

	got := Reconcile(local, incoming)

	if len(got) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(got))
	}
	// Sorted by name: Million Air before Signature Aviation.
	if got[0].Name != "Million Air" {
		t.Errorf("Expected Million Air first, got %q", got[0].Name)
	}
	if got[1].Name != "Signature Aviation" {
		t.Errorf("Expected merged record to keep the stored name, got %q", got[1].Name)
	}
	if !got[1].IsVerified {
		t.Error("Expected merged record to stay verified")
	}
}

// TestReconcileBaselineThenCloudUpdate walks the primary end-to-end scenario:
// a bulk-imported verified row later enriched by a pilot's edit from the
// collaborative backend.
func TestReconcileBaselineThenCloudUpdate(t *testing.T) {
	baseline := createBaseline("Signature Aviation", day(1))
	baseline.SetFuelPrice(ptr(6.50), nil, day(1), fbo.ImportLabel)

	update := createEdit("Signature", "pilot1", day(10))
	update.Phone = ptr("555-0142")
	update.SetFuelPrice(ptr(7.25), nil, day(10), "pilot1")

	got := Reconcile([]fbo.Record{baseline}, []fbo.Record{update})

	if len(got) != 1 {
		t.Fatalf("Expected a single merged record, got %d", len(got))
	}
	merged := got[0]
	if merged.Name != "Signature Aviation" {
		t.Errorf("Expected stored name to win, got %q", merged.Name)
	}
	if merged.JetAPrice == nil || *merged.JetAPrice != 7.25 {
		t.Errorf("Expected the newer fuel price 7.25, got %v", merged.JetAPrice)
	}
	if merged.Phone == nil || *merged.Phone != "555-0142" {
		t.Errorf("Expected the pilot's phone edit, got %v", merged.Phone)
	}
	if !merged.IsVerified {
		t.Error("Expected verification to survive the merge")
	}
}

// TestReconcileNearDuplicateIncoming feeds an incoming batch whose own rows
// collide after normalization; the trailing dedup pass must collapse them.
func TestReconcileNearDuplicateIncoming(t *testing.T) {
	incoming := []fbo.Record{
		createRecord("Signature Aviation", true, day(1)),
		createRecord("Signature FBO", false, day(5)),
	}

	got := Reconcile(nil, incoming)

	if len(got) != 1 {
		t.Fatalf("Expected near-duplicates to collapse to 1 record, got %d", len(got))
	}
	if !got[0].IsVerified {
		t.Errorf("Expected the verified copy to survive, got %q", got[0].Name)
	}
}

func TestReconcileLocalOnlyRecordsSurvive(t *testing.T) {
	local := []fbo.Record{
		createEdit("Ross Aviation", "pilot3", day(2)),
	}

	got := Reconcile(local, []fbo.Record{createEdit("Atlantic", "pilot1", day(4))})

	if len(got) != 2 {
		t.Fatalf("Expected both records, got %d", len(got))
	}
	names := []string{got[0].Name, got[1].Name}
	if names[0] != "Atlantic" || names[1] != "Ross Aviation" {
		t.Errorf("Expected [Atlantic, Ross Aviation], got %v", names)
	}
}
