// Package api serves the restora HTTP API and its MCP surface.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kalambet/restora/internal/notify"
	"github.com/kalambet/restora/internal/restaurant"
	"github.com/kalambet/restora/internal/storage"
)

const maxRequestBodySize = 1 << 20 // 1MB

// Deps holds everything the HTTP handlers need.
type Deps struct {
	Repo    *restaurant.Repository
	Queue   notify.Queue // where notification emails are enqueued
	Token   string       // admin bearer token
	Started time.Time
	Logger  *slog.Logger
}

// NewRouter returns the full /api handler tree.
func NewRouter(deps Deps) http.Handler {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Started.IsZero() {
		deps.Started = time.Now()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(deps.Logger))
	r.Use(middleware.Recoverer)
	r.Use(cors)

	admin := requireAdmin(deps.Token, deps.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handleHealth(deps))

		r.Get("/menu", handleListMenu(deps))
		r.With(admin).Post("/menu", handleCreateMenuItem(deps))
		r.With(admin).Patch("/menu", handleUpdateMenuItem(deps))
		r.With(admin).Delete("/menu", handleDeleteMenuItem(deps))

		r.Get("/reviews", handleListReviews(deps))
		r.Post("/reviews", handleCreateReview(deps))
		r.With(admin).Delete("/reviews", handleDeleteReview(deps))

		r.Get("/reservations", handleListReservations(deps))
		r.Post("/reservations", handleCreateReservation(deps))
		r.With(admin).Patch("/reservations", handleUpdateReservation(deps))
		r.With(admin).Delete("/reservations", handleDeleteReservations(deps))

		r.Get("/orders", handleListOrders(deps))
		r.Post("/orders", handleCreateOrder(deps))
		r.With(admin).Patch("/orders", handleUpdateOrder(deps))

		r.Get("/sales", handleSales(deps))

		r.Post("/notifications", handleNotify(deps))
	})

	return r
}

func handleHealth(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":             true,
			"uptime_seconds": int64(time.Since(deps.Started).Seconds()),
		})
	}
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// cors allows browser clients on any origin.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
		return false
	}
	return true
}

func requireID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "id query parameter is required")
		return "", false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// writeError maps repository errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error, what string) {
	switch {
	case errors.Is(err, restaurant.ErrInvalid):
		httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
	case errors.Is(err, storage.ErrNotFound):
		httpError(w, http.StatusNotFound, "not_found", "%s not found", what)
	default:
		httpError(w, http.StatusInternalServerError, "api_error", "%s: %v", what, err)
	}
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
