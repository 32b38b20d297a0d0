package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/kalambet/restora/internal/restaurant"
	"github.com/kalambet/restora/internal/storage"
)

func validReservation() restaurant.Reservation {
	return restaurant.Reservation{
		Name:   "Amélie",
		Phone:  "555-0101",
		Date:   "2026-03-14",
		Time:   "19:30",
		Guests: 4,
	}
}

func TestReservations_CreateForcesPending(t *testing.T) {
	env := newTestEnv(t)
	in := validReservation()
	in.Status = restaurant.StatusApproved

	rec := env.do(t, http.MethodPost, "/api/reservations", in, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	res := decodeResponse[restaurant.Reservation](t, rec)
	if res.Status != restaurant.StatusPending {
		t.Errorf("status = %q, want pending", res.Status)
	}
	if n := pendingJobs(t, env.store); n != 0 {
		t.Errorf("queued %d emails without an address", n)
	}
}

func TestReservations_CreateQueuesConfirmation(t *testing.T) {
	env := newTestEnv(t)
	in := validReservation()
	in.Email = "amelie@example.com"

	rec := env.do(t, http.MethodPost, "/api/reservations", in, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}

	job, err := env.store.ClaimNextJob([]string{"notify_email"})
	if err != nil || job == nil {
		t.Fatalf("ClaimNextJob = %v, %v", job, err)
	}
	var n restaurant.Notification
	if err := json.Unmarshal([]byte(job.PayloadJSON), &n); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if n.Type != restaurant.NotifyReservationConfirmation || n.To != "amelie@example.com" {
		t.Errorf("notification = %+v", n)
	}
	if n.Data["date"] != "2026-03-14" {
		t.Errorf("data = %v", n.Data)
	}
}

func TestReservations_Validation(t *testing.T) {
	env := newTestEnv(t)

	missingPhone := validReservation()
	missingPhone.Phone = ""
	noGuests := validReservation()
	noGuests.Guests = 0

	for _, in := range []restaurant.Reservation{missingPhone, noGuests, {}} {
		rec := env.do(t, http.MethodPost, "/api/reservations", in, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%+v: status = %d, want 400", in, rec.Code)
		}
	}
}

func TestReservations_UpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	in := validReservation()
	in.Email = "amelie@example.com"
	res, err := env.repo.CreateReservation(in)
	if err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}

	rec := env.do(t, http.MethodPatch, "/api/reservations?id="+res.ID, map[string]string{"status": "seated"}, testToken)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad status: code = %d, want 400", rec.Code)
	}

	rec = env.do(t, http.MethodPatch, "/api/reservations?id="+res.ID, map[string]string{"status": "approved"}, testToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if got := decodeResponse[restaurant.Reservation](t, rec); got.Status != restaurant.StatusApproved {
		t.Errorf("status = %q, want approved", got.Status)
	}
	if n := pendingJobs(t, env.store); n != 1 {
		t.Errorf("pending jobs = %d, want 1 status update", n)
	}

	rec = env.do(t, http.MethodPatch, "/api/reservations?id=ghost", map[string]string{"status": "approved"}, testToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing: code = %d, want 404", rec.Code)
	}
}

func TestReservations_ListFilters(t *testing.T) {
	env := newTestEnv(t)
	a := validReservation()
	b := validReservation()
	b.Date = "2026-03-15"
	first, _ := env.repo.CreateReservation(a)
	if _, err := env.repo.CreateReservation(b); err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}
	if _, err := env.repo.UpdateReservationStatus(first.ID, restaurant.StatusRejected); err != nil {
		t.Fatalf("UpdateReservationStatus: %v", err)
	}

	rec := env.do(t, http.MethodGet, "/api/reservations?status=rejected", nil, "")
	if got := decodeResponse[[]restaurant.Reservation](t, rec); len(got) != 1 || got[0].ID != first.ID {
		t.Errorf("status filter = %+v", got)
	}
	rec = env.do(t, http.MethodGet, "/api/reservations?date=2026-03-15", nil, "")
	if got := decodeResponse[[]restaurant.Reservation](t, rec); len(got) != 1 || got[0].Date != "2026-03-15" {
		t.Errorf("date filter = %+v", got)
	}
}

func TestReservations_DeleteOneAndClear(t *testing.T) {
	env := newTestEnv(t)
	var ids []string
	for i := 0; i < 3; i++ {
		res, err := env.repo.CreateReservation(validReservation())
		if err != nil {
			t.Fatalf("CreateReservation: %v", err)
		}
		ids = append(ids, res.ID)
	}

	rec := env.do(t, http.MethodDelete, "/api/reservations?id="+ids[0], nil, testToken)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete one: %d", rec.Code)
	}
	rec = env.do(t, http.MethodDelete, "/api/reservations?id="+ids[0], nil, testToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("delete again: %d, want 404", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, "/api/reservations", nil, testToken)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("clear: %d", rec.Code)
	}
	n, err := env.store.CountDocuments(restaurant.CollectionReservations)
	if err != nil {
		t.Fatalf("CountDocuments: %v", err)
	}
	if n != 0 {
		t.Errorf("reservations left = %d, want 0", n)
	}
	if _, err := env.repo.GetReservation(ids[1]); err != storage.ErrNotFound {
		t.Errorf("GetReservation after clear = %v, want ErrNotFound", err)
	}
}
