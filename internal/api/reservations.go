package api

import (
	"net/http"

	"github.com/kalambet/restora/internal/notify"
	"github.com/kalambet/restora/internal/restaurant"
)

func handleListReservations(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		reservations, err := deps.Repo.ListReservations(restaurant.ReservationFilter{
			Status: q.Get("status"),
			Date:   q.Get("date"),
		})
		if err != nil {
			writeError(w, err, "reservations")
			return
		}
		if reservations == nil {
			reservations = []restaurant.Reservation{}
		}
		writeJSON(w, http.StatusOK, reservations)
	}
}

func handleCreateReservation(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var v restaurant.Reservation
		if !decodeBody(w, r, &v) {
			return
		}
		res, err := deps.Repo.CreateReservation(v)
		if err != nil {
			writeError(w, err, "reservation")
			return
		}
		if res.Email != "" {
			enqueue(deps, restaurant.NotifyReservationConfirmation, res.Email, reservationData(res))
		}
		writeJSON(w, http.StatusCreated, res)
	}
}

func handleUpdateReservation(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireID(w, r)
		if !ok {
			return
		}
		var body struct {
			Status string `json:"status"`
		}
		if !decodeBody(w, r, &body) {
			return
		}
		res, err := deps.Repo.UpdateReservationStatus(id, body.Status)
		if err != nil {
			writeError(w, err, "reservation")
			return
		}
		if res.Email != "" {
			enqueue(deps, restaurant.NotifyReservationStatusUpdate, res.Email, reservationData(res))
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// handleDeleteReservations deletes one reservation by id, or all of them
// when no id is given.
func handleDeleteReservations(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			n, err := deps.Repo.ClearReservations()
			if err != nil {
				writeError(w, err, "reservations")
				return
			}
			deps.Logger.Info("reservations cleared", "count", n)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err := deps.Repo.DeleteReservation(id); err != nil {
			writeError(w, err, "reservation")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func reservationData(res restaurant.Reservation) map[string]any {
	return map[string]any{
		"name":   res.Name,
		"date":   res.Date,
		"time":   res.Time,
		"guests": res.Guests,
		"phone":  res.Phone,
		"status": res.Status,
	}
}

// enqueue queues an email. Failures are logged; the request that caused the
// email has already succeeded.
func enqueue(deps Deps, typ, to string, data map[string]any) {
	if deps.Queue == nil {
		return
	}
	id, err := notify.Enqueue(deps.Queue, restaurant.Notification{Type: typ, To: to, Data: data})
	if err != nil {
		deps.Logger.Warn("failed to enqueue notification", "type", typ, "error", err)
		return
	}
	deps.Logger.Debug("notification queued", "type", typ, "job_id", id)
}
