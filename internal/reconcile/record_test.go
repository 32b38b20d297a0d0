package reconcile

import (
	"encoding/json"
	"testing"
)

func TestRecordJSON_Flattens(t *testing.T) {
	r := Record{ID: "a", CreatedAt: 1000, Fields: map[string]any{"rating": 5, "text": "good"}}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if m["id"] != "a" || m["createdAt"] != float64(1000) || m["text"] != "good" {
		t.Errorf("flattened = %v", m)
	}
	if _, ok := m["updatedAt"]; ok {
		t.Error("updatedAt should be omitted when zero")
	}
}

func TestRecordJSON_TimestampFallback(t *testing.T) {
	var r Record
	if err := json.Unmarshal([]byte(`{"id":"a","timestamp":1000,"status":"pending"}`), &r); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if r.ID != "a" || r.CreatedAt != 1000 {
		t.Errorf("record = %+v", r)
	}
	if _, ok := r.Fields["timestamp"]; ok {
		t.Error("timestamp should not remain in Fields")
	}
	if r.String("status") != "pending" {
		t.Errorf("status = %q", r.String("status"))
	}

	if err := json.Unmarshal([]byte(`{"id":"b","createdAt":2000,"timestamp":1}`), &r); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if r.CreatedAt != 2000 {
		t.Errorf("CreatedAt = %d, want createdAt to win over timestamp", r.CreatedAt)
	}
}

func TestRecordJSON_RejectsNonObject(t *testing.T) {
	var r Record
	if err := json.Unmarshal([]byte(`null`), &r); err == nil {
		t.Error("expected error for null record")
	}
}

func TestNewRecordAndDecode(t *testing.T) {
	type review struct {
		ID     string `json:"id"`
		ItemID string `json:"item_id"`
		Rating int    `json:"rating"`
	}

	r, err := NewRecord("r1", 42, review{ID: "ignored", ItemID: "m1", Rating: 4})
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	if _, ok := r.Fields["id"]; ok {
		t.Error("id should not be duplicated into Fields")
	}

	var got review
	if err := r.Decode(&got); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.ItemID != "m1" || got.Rating != 4 {
		t.Errorf("decoded = %+v", got)
	}
}

func TestClone_IsIndependent(t *testing.T) {
	r := Record{ID: "a", Fields: map[string]any{"status": "pending"}}
	c := r.Clone()
	c.Fields["status"] = "approved"
	if r.Fields["status"] != "pending" {
		t.Error("Clone shares its field map with the original")
	}
}
