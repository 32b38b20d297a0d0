package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kalambet/restora/internal/reconcile"
	"github.com/kalambet/restora/internal/restaurant"
)

func TestList_ConvertsTimestamps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/reviews" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`[{"id":"a","created_at":1700000000,"updated_at":1700000005,"rating":5},{"id":"b","created_at":1700000010}]`))
	}))
	defer srv.Close()

	records, err := New(srv.URL, "").List(context.Background(), reconcile.Reviews)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}
	a := records[0]
	if a.ID != "a" || a.CreatedAt != 1700000000000 || a.UpdatedAt != 1700000005000 {
		t.Errorf("record = %+v", a)
	}
	if _, ok := a.Fields["created_at"]; ok {
		t.Error("created_at should not remain in Fields")
	}
	if a.Fields["rating"] != float64(5) {
		t.Errorf("rating = %v", a.Fields["rating"])
	}
	if records[1].ID != "b" {
		t.Errorf("order not preserved: %s", records[1].ID)
	}
}

func TestCreate_SendsIDAndFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding body: %v", err)
			return
		}
		if body["id"] != "local-1" || body["name"] != "Ana" {
			t.Errorf("body = %v", body)
		}
		if _, ok := body["createdAt"]; ok {
			t.Error("client timestamps should not be sent")
		}
		body["created_at"] = 1700000000
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	rec := reconcile.Record{ID: "local-1", CreatedAt: 123, Fields: map[string]any{"name": "Ana"}}
	echo, err := New(srv.URL, "").Create(context.Background(), reconcile.Reservations, rec)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if echo.ID != "local-1" || echo.CreatedAt != 1700000000000 {
		t.Errorf("echo = %+v", echo)
	}
}

func TestUpdate_UsesQueryIDAndToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %s, want PATCH", r.Method)
		}
		if got := r.URL.Query().Get("id"); got != "r 1" {
			t.Errorf("id = %q, want %q", got, "r 1")
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(`{"id":"r 1","status":"approved","created_at":1,"updated_at":2}`))
	}))
	defer srv.Close()

	rec, err := New(srv.URL+"/", "secret").Update(context.Background(), reconcile.Reservations, "r 1", map[string]any{"status": "approved"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.String("status") != "approved" || rec.UpdatedAt != 2000 {
		t.Errorf("record = %+v", rec)
	}
}

func TestDelete_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"message":"review not found","type":"not_found_error"}}`))
	}))
	defer srv.Close()

	err := New(srv.URL, "t").Delete(context.Background(), reconcile.Reviews, "x")
	if !IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
	apiErr := err.(*APIError)
	if apiErr.Message != "review not found" || apiErr.Type != "not_found_error" {
		t.Errorf("APIError = %+v", apiErr)
	}
}

func TestDelete_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := New(srv.URL, "t").Delete(context.Background(), reconcile.Reviews, "x"); err != nil {
		t.Errorf("Delete: %v", err)
	}
}

func TestPlainTextError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "").List(context.Background(), reconcile.Reviews)
	if err == nil || err.Error() != "server returned 502: boom" {
		t.Errorf("err = %v", err)
	}
}

func TestUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	if _, err := New(url, "").List(context.Background(), reconcile.Reviews); err == nil {
		t.Error("expected error for closed server")
	}
}

func TestListMenu_Query(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("category") != "Dessert" || r.URL.Query().Get("search") != "crê" {
			t.Errorf("query = %s", r.URL.RawQuery)
		}
		w.Write([]byte(`[{"id":"m5","name":"Crêpes","price":450,"category":"Dessert","available":true}]`))
	}))
	defer srv.Close()

	items, err := New(srv.URL, "").ListMenu(context.Background(), restaurant.MenuFilter{Category: "Dessert", Search: "crê"})
	if err != nil {
		t.Fatalf("ListMenu: %v", err)
	}
	if len(items) != 1 || items[0].Price != 450 {
		t.Errorf("items = %+v", items)
	}
}

func TestSales_GroupBy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("groupBy") != "day" {
			t.Errorf("groupBy = %q", r.URL.Query().Get("groupBy"))
		}
		w.Write([]byte(`[{"date":"2026-01-01","total_quantity":3,"total_revenue":900,"order_count":2}]`))
	}))
	defer srv.Close()

	var days []restaurant.DaySummary
	if err := New(srv.URL, "").Sales(context.Background(), SalesQuery{GroupBy: "day"}, &days); err != nil {
		t.Fatalf("Sales: %v", err)
	}
	if len(days) != 1 || days[0].TotalRevenue != 900 {
		t.Errorf("days = %+v", days)
	}
}
