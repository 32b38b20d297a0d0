package api

import (
	"net/http"

	"github.com/kalambet/restora/internal/restaurant"
)

func handleListReviews(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reviews, err := deps.Repo.ListReviews(r.URL.Query().Get("itemId"))
		if err != nil {
			writeError(w, err, "reviews")
			return
		}
		if reviews == nil {
			reviews = []restaurant.Review{}
		}
		writeJSON(w, http.StatusOK, reviews)
	}
}

func handleCreateReview(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var v restaurant.Review
		if !decodeBody(w, r, &v) {
			return
		}
		review, err := deps.Repo.CreateReview(v)
		if err != nil {
			writeError(w, err, "review")
			return
		}
		writeJSON(w, http.StatusCreated, review)
	}
}

func handleDeleteReview(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireID(w, r)
		if !ok {
			return
		}
		if err := deps.Repo.DeleteReview(id); err != nil {
			writeError(w, err, "review")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
