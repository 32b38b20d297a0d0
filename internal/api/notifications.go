package api

import (
	"net/http"

	"github.com/kalambet/restora/internal/notify"
	"github.com/kalambet/restora/internal/restaurant"
)

func handleNotify(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var n restaurant.Notification
		if !decodeBody(w, r, &n) {
			return
		}
		if deps.Queue == nil {
			httpError(w, http.StatusServiceUnavailable, "api_error", "notifications are disabled")
			return
		}
		id, err := notify.Enqueue(deps.Queue, n)
		if err != nil {
			writeError(w, err, "notification")
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]string{"id": id, "status": "queued"})
	}
}
