package reconcile

import (
	"testing"
	"time"
)

func ids(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func equalIDs(got []Record, want ...string) bool {
	g := ids(got)
	if len(g) != len(want) {
		return false
	}
	for i := range g {
		if g[i] != want[i] {
			return false
		}
	}
	return true
}

func TestMerge(t *testing.T) {
	const now = int64(1_000_000)
	window := 10 * time.Second

	tests := []struct {
		name     string
		snapshot []Record
		local    []Record
		want     []string
	}{
		{
			name:     "authoritative order first",
			snapshot: []Record{{ID: "b", CreatedAt: 2000}, {ID: "a", CreatedAt: 1000}},
			local:    []Record{{ID: "a", CreatedAt: 1000}},
			want:     []string{"b", "a"},
		},
		{
			name:  "young pending kept",
			local: []Record{{ID: "p", CreatedAt: now - 9_999}},
			want:  []string{"p"},
		},
		{
			name:  "window bound inclusive",
			local: []Record{{ID: "p", CreatedAt: now - 10_000}},
			want:  []string{"p"},
		},
		{
			name:  "old pending dropped",
			local: []Record{{ID: "p", CreatedAt: now - 10_001}},
			want:  []string{},
		},
		{
			name:  "missing creation time is not pending",
			local: []Record{{ID: "p"}},
			want:  []string{},
		},
		{
			name:     "pending appended after snapshot",
			snapshot: []Record{{ID: "a", CreatedAt: 1000}},
			local:    []Record{{ID: "p", CreatedAt: now}, {ID: "a", CreatedAt: 1000}},
			want:     []string{"a", "p"},
		},
		{
			name:     "duplicates keep first occurrence",
			snapshot: []Record{{ID: "a", CreatedAt: 1}, {ID: "a", CreatedAt: 2}},
			want:     []string{"a"},
		},
		{
			name:     "empty ids dropped",
			snapshot: []Record{{ID: ""}, {ID: "a", CreatedAt: 1}},
			local:    []Record{{ID: "", CreatedAt: now}},
			want:     []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.snapshot, tt.local, now, window)
			if !equalIDs(got, tt.want...) {
				t.Errorf("Merge = %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestMerge_AuthoritativeFieldsWin(t *testing.T) {
	snapshot := []Record{{ID: "a", CreatedAt: 1000, Fields: map[string]any{"rating": 4}}}
	local := []Record{{ID: "a", CreatedAt: 1000, Fields: map[string]any{"rating": 5}}}

	got := Merge(snapshot, local, 2000, time.Minute)
	if len(got) != 1 || got[0].Fields["rating"] != 4 {
		t.Errorf("Merge = %+v, want authoritative rating 4", got)
	}
}

func TestMerge_DoesNotAliasInputs(t *testing.T) {
	snapshot := []Record{{ID: "a", CreatedAt: 1, Fields: map[string]any{"status": "pending"}}}
	got := Merge(snapshot, nil, 2, time.Second)
	got[0].Fields["status"] = "approved"
	if snapshot[0].Fields["status"] != "pending" {
		t.Error("Merge result shares field maps with the snapshot")
	}
}

func TestFingerprint(t *testing.T) {
	x := []Record{{ID: "b", CreatedAt: 2}, {ID: "a", CreatedAt: 1}}
	y := []Record{{ID: "a", CreatedAt: 1}, {ID: "b", CreatedAt: 2}}
	if !FingerprintOf(x).Equal(FingerprintOf(y)) {
		t.Error("fingerprint should not depend on order")
	}

	z := []Record{{ID: "a", CreatedAt: 1}, {ID: "b", CreatedAt: 3}}
	if FingerprintOf(x).Equal(FingerprintOf(z)) {
		t.Error("different timestamps must change the fingerprint")
	}

	s1 := []Record{{ID: "a", CreatedAt: 1, Fields: map[string]any{"status": "pending"}}}
	s2 := []Record{{ID: "a", CreatedAt: 1, Fields: map[string]any{"status": "approved"}}}
	if FingerprintOf(s1).Equal(FingerprintOf(s2)) {
		t.Error("a status change must change the fingerprint")
	}

	n1 := []Record{{ID: "a", CreatedAt: 1, Fields: map[string]any{"guests": 2}}}
	n2 := []Record{{ID: "a", CreatedAt: 1, Fields: map[string]any{"guests": float64(2)}}}
	if !FingerprintOf(n1).Equal(FingerprintOf(n2)) {
		t.Error("numbers decoded from JSON should fingerprint like their originals")
	}

	if !FingerprintOf(nil).Equal(FingerprintOf([]Record{})) {
		t.Error("nil and empty collections should be equal")
	}
}

func TestDedupe(t *testing.T) {
	got := dedupe([]Record{{ID: "a", CreatedAt: 1}, {ID: ""}, {ID: "a", CreatedAt: 2}, {ID: "b"}})
	if !equalIDs(got, "a", "b") || got[0].CreatedAt != 1 {
		t.Errorf("dedupe = %+v", got)
	}
}
