package reconcile

import (
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/google/go-cmp/cmp"

	"github.com/propilot/fbohub/pkg/fbo"
)

// Test helper functions
func createRecord(name string, verified bool, updated utc.Time) fbo.Record {
	return fbo.Record{
		LocationCode: "KSFO",
		Name:         name,
		IsVerified:   verified,
		LastUpdated:  updated,
	}
}

func day(d int) utc.Time {
	return utc.New(time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC))
}

func ptr[T any](v T) *T {
	return &v
}

func TestDeduplicate(t *testing.T) {
	tests := []struct {
		name     string
		records  []fbo.Record
		expected []fbo.Record
	}{
		{
			name:     "empty input",
			records:  []fbo.Record{},
			expected: []fbo.Record{},
		},
		{
			name: "distinct names pass through sorted",
			records: []fbo.Record{
				createRecord("Million Air", false, day(1)),
				createRecord("Atlantic", false, day(1)),
			},
			expected: []fbo.Record{
				createRecord("Atlantic", false, day(1)),
				createRecord("Million Air", false, day(1)),
			},
		},
		{
			name: "verified beats newer unverified",
			records: []fbo.Record{
				createRecord("Signature", false, day(10)),
				createRecord("Signature Aviation", true, day(1)),
			},
			expected: []fbo.Record{
				createRecord("Signature Aviation", true, day(1)),
			},
		},
		{
			name: "newer wins when neither is verified",
			records: []fbo.Record{
				createRecord("Signature", false, day(1)),
				createRecord("Signature FBO", false, day(5)),
			},
			expected: []fbo.Record{
				createRecord("Signature FBO", false, day(5)),
			},
		},
		{
			name: "full tie keeps first encountered",
			records: []fbo.Record{
				createRecord("Signature", false, day(3)),
				createRecord("Signature Aviation", false, day(3)),
			},
			expected: []fbo.Record{
				createRecord("Signature", false, day(3)),
			},
		},
		{
			name: "both verified falls back to newer",
			records: []fbo.Record{
				createRecord("Signature", true, day(2)),
				createRecord("Signature Aviation", true, day(7)),
			},
			expected: []fbo.Record{
				createRecord("Signature Aviation", true, day(7)),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Deduplicate(tt.records)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Deduplicate mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestDeduplicateDeterminism verifies that the verified copy of a duplicate
// pair wins regardless of input order.
func TestDeduplicateDeterminism(t *testing.T) {
	verified := createRecord("Signature Aviation", true, day(1))
	unverified := createRecord("Signature", false, day(9))

	forward := Deduplicate([]fbo.Record{verified, unverified})
	reversed := Deduplicate([]fbo.Record{unverified, verified})

	if diff := cmp.Diff(forward, reversed); diff != "" {
		t.Errorf("Order-dependent dedup result (-forward +reversed):\n%s", diff)
	}
	if len(forward) != 1 {
		t.Fatalf("Expected 1 survivor, got %d", len(forward))
	}
	if forward[0].Name != "Signature Aviation" {
		t.Errorf("Expected verified record to survive, got %q", forward[0].Name)
	}
}

func TestDeduplicateDoesNotMergeFields(t *testing.T) {
	loser := createRecord("Signature", false, day(2))
	loser.Phone = ptr("555-0100")

	winner := createRecord("Signature Aviation", true, day(1))

	got := Deduplicate([]fbo.Record{loser, winner})
	if len(got) != 1 {
		t.Fatalf("Expected 1 survivor, got %d", len(got))
	}
	if got[0].Phone != nil {
		t.Errorf("Dedup must select, not merge: survivor picked up phone %q", *got[0].Phone)
	}
}
