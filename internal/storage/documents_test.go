package storage

import (
	"bytes"
	"testing"
	"time"
)

func TestPutAndGetDocument(t *testing.T) {
	s := openTestStore(t)

	created := time.Unix(1700000000, 0).UTC()
	if err := s.PutDocument("reviews", Document{ID: "r1", Body: []byte(`{"rating":5}`), CreatedAt: created}); err != nil {
		t.Fatalf("PutDocument: %v", err)
	}

	got, err := s.GetDocument("reviews", "r1")
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if string(got.Body) != `{"rating":5}` {
		t.Errorf("Body = %s", got.Body)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}
	if !got.UpdatedAt.Equal(created) {
		t.Errorf("UpdatedAt = %v, want CreatedAt when unset", got.UpdatedAt)
	}
}

func TestGetDocument_NotFound(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.GetDocument("reviews", "nope"); err != ErrNotFound {
		t.Errorf("GetDocument = %v, want ErrNotFound", err)
	}
}

func TestPutDocument_CollectionsAreIsolated(t *testing.T) {
	s := openTestStore(t)

	if err := s.PutDocument("reviews", Document{ID: "x", Body: []byte(`{}`)}); err != nil {
		t.Fatalf("PutDocument: %v", err)
	}
	if _, err := s.GetDocument("reservations", "x"); err != ErrNotFound {
		t.Errorf("GetDocument(reservations, x) = %v, want ErrNotFound", err)
	}
}

func TestPutDocument_UpsertKeepsPositionAndCreatedAt(t *testing.T) {
	s := openTestStore(t)

	first := time.Unix(1700000000, 0).UTC()
	for _, id := range []string{"a", "b", "c"} {
		if err := s.PutDocument("reviews", Document{ID: id, Body: []byte(`{"v":1}`), CreatedAt: first}); err != nil {
			t.Fatalf("PutDocument(%s): %v", id, err)
		}
	}

	later := first.Add(time.Hour)
	if err := s.PutDocument("reviews", Document{ID: "a", Body: []byte(`{"v":2}`), CreatedAt: later}); err != nil {
		t.Fatalf("PutDocument(a again): %v", err)
	}

	docs, err := s.ListDocuments("reviews")
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("len = %d, want 3", len(docs))
	}
	if docs[0].ID != "a" || docs[1].ID != "b" || docs[2].ID != "c" {
		t.Errorf("order = %s,%s,%s; want a,b,c", docs[0].ID, docs[1].ID, docs[2].ID)
	}
	if string(docs[0].Body) != `{"v":2}` {
		t.Errorf("body not replaced: %s", docs[0].Body)
	}
	if !docs[0].CreatedAt.Equal(first) {
		t.Errorf("CreatedAt = %v, want original %v", docs[0].CreatedAt, first)
	}
	if !docs[0].UpdatedAt.Equal(later) {
		t.Errorf("UpdatedAt = %v, want %v", docs[0].UpdatedAt, later)
	}
}

func TestPutDocuments_Batch(t *testing.T) {
	s := openTestStore(t)

	docs := []Document{
		{ID: "m1", Body: []byte(`{"name":"Escargot"}`)},
		{ID: "m2", Body: []byte(`{"name":"Crêpes"}`)},
	}
	if err := s.PutDocuments("menu", docs); err != nil {
		t.Fatalf("PutDocuments: %v", err)
	}

	n, err := s.CountDocuments("menu")
	if err != nil {
		t.Fatalf("CountDocuments: %v", err)
	}
	if n != 2 {
		t.Errorf("CountDocuments = %d, want 2", n)
	}
}

func TestReplaceDocument(t *testing.T) {
	s := openTestStore(t)

	old := time.Unix(1600000000, 0).UTC()
	if err := s.PutDocument("reservations", Document{ID: "r1", Body: []byte(`{"status":"pending"}`), CreatedAt: old}); err != nil {
		t.Fatalf("PutDocument: %v", err)
	}

	updated, err := s.ReplaceDocument("reservations", "r1", []byte(`{"status":"approved"}`))
	if err != nil {
		t.Fatalf("ReplaceDocument: %v", err)
	}
	if !updated.After(old) {
		t.Errorf("updated_at %v should be after %v", updated, old)
	}

	got, err := s.GetDocument("reservations", "r1")
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if string(got.Body) != `{"status":"approved"}` {
		t.Errorf("Body = %s", got.Body)
	}
	if !got.CreatedAt.Equal(old) {
		t.Errorf("CreatedAt changed to %v", got.CreatedAt)
	}
	if !got.UpdatedAt.Equal(updated) {
		t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, updated)
	}

	if _, err := s.ReplaceDocument("reservations", "missing", []byte(`{}`)); err != ErrNotFound {
		t.Errorf("ReplaceDocument(missing) = %v, want ErrNotFound", err)
	}
}

func TestDeleteDocument(t *testing.T) {
	s := openTestStore(t)

	if err := s.PutDocument("reviews", Document{ID: "r1", Body: []byte(`{}`)}); err != nil {
		t.Fatalf("PutDocument: %v", err)
	}
	if err := s.DeleteDocument("reviews", "r1"); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
	if err := s.DeleteDocument("reviews", "r1"); err != ErrNotFound {
		t.Errorf("second DeleteDocument = %v, want ErrNotFound", err)
	}
}

func TestClearCollection(t *testing.T) {
	s := openTestStore(t)

	for _, id := range []string{"a", "b"} {
		if err := s.PutDocument("sales", Document{ID: id, Body: []byte(`{}`)}); err != nil {
			t.Fatalf("PutDocument: %v", err)
		}
	}
	if err := s.PutDocument("orders", Document{ID: "o", Body: []byte(`{}`)}); err != nil {
		t.Fatalf("PutDocument: %v", err)
	}

	n, err := s.ClearCollection("sales")
	if err != nil {
		t.Fatalf("ClearCollection: %v", err)
	}
	if n != 2 {
		t.Errorf("removed = %d, want 2", n)
	}
	if c, _ := s.CountDocuments("orders"); c != 1 {
		t.Errorf("orders count = %d, want 1", c)
	}
}

func TestBlobRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if _, ok, err := s.GetBlob("restora_reviews"); err != nil || ok {
		t.Fatalf("GetBlob on empty store = ok %v, err %v", ok, err)
	}

	if err := s.PutBlob("restora_reviews", []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("PutBlob: %v", err)
	}
	if err := s.PutBlob("restora_reviews", []byte(`[]`)); err != nil {
		t.Fatalf("PutBlob overwrite: %v", err)
	}

	val, ok, err := s.GetBlob("restora_reviews")
	if err != nil || !ok {
		t.Fatalf("GetBlob = ok %v, err %v", ok, err)
	}
	if !bytes.Equal(val, []byte(`[]`)) {
		t.Errorf("value = %s, want []", val)
	}

	if err := s.DeleteBlob("restora_reviews"); err != nil {
		t.Fatalf("DeleteBlob: %v", err)
	}
	if _, ok, _ := s.GetBlob("restora_reviews"); ok {
		t.Error("blob still present after DeleteBlob")
	}
}
