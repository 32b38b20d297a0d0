package api

import (
	"net/http"
	"time"

	"github.com/kalambet/restora/internal/restaurant"
)

func handleSales(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var f restaurant.SalesFilter
		if s := q.Get("startDate"); s != "" {
			start, err := restaurant.ParseDate(s)
			if err != nil {
				writeError(w, err, "startDate")
				return
			}
			f.Start = start
		}
		if s := q.Get("endDate"); s != "" {
			end, err := restaurant.ParseDate(s)
			if err != nil {
				writeError(w, err, "endDate")
				return
			}
			// A bare date covers the whole day.
			if len(s) == len(time.DateOnly) {
				end += 24*60*60 - 1
			}
			f.End = end
		}

		groupBy := q.Get("groupBy")
		if groupBy != "" && groupBy != "item" && groupBy != "day" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "groupBy must be item or day")
			return
		}

		sales, err := deps.Repo.ListSales(f)
		if err != nil {
			writeError(w, err, "sales")
			return
		}

		switch groupBy {
		case "item":
			writeJSON(w, http.StatusOK, nonNil(restaurant.SummarizeByItem(sales)))
		case "day":
			writeJSON(w, http.StatusOK, nonNil(restaurant.SummarizeByDay(sales)))
		default:
			writeJSON(w, http.StatusOK, nonNil(sales))
		}
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
