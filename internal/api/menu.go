package api

import (
	"net/http"

	"github.com/kalambet/restora/internal/restaurant"
)

func handleListMenu(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := deps.Repo.ListMenu(restaurant.MenuFilter{
			Category: q.Get("category"),
			Search:   q.Get("search"),
		})
		if err != nil {
			writeError(w, err, "menu")
			return
		}
		if items == nil {
			items = []restaurant.MenuItem{}
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func handleCreateMenuItem(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f restaurant.MenuItemFields
		if !decodeBody(w, r, &f) {
			return
		}
		item, err := deps.Repo.CreateMenuItem(f)
		if err != nil {
			writeError(w, err, "menu item")
			return
		}
		writeJSON(w, http.StatusCreated, item)
	}
}

func handleUpdateMenuItem(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireID(w, r)
		if !ok {
			return
		}
		var f restaurant.MenuItemFields
		if !decodeBody(w, r, &f) {
			return
		}
		item, err := deps.Repo.UpdateMenuItem(id, f)
		if err != nil {
			writeError(w, err, "menu item")
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

func handleDeleteMenuItem(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireID(w, r)
		if !ok {
			return
		}
		if err := deps.Repo.DeleteMenuItem(id); err != nil {
			writeError(w, err, "menu item")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
