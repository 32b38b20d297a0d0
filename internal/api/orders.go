package api

import (
	"net/http"

	"github.com/kalambet/restora/internal/restaurant"
)

type createOrderRequest struct {
	restaurant.Order
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

func handleListOrders(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		orders, err := deps.Repo.ListOrders(restaurant.OrderFilter{
			UserID: q.Get("userId"),
			Status: q.Get("status"),
		})
		if err != nil {
			writeError(w, err, "orders")
			return
		}
		if orders == nil {
			orders = []restaurant.Order{}
		}
		writeJSON(w, http.StatusOK, orders)
	}
}

func handleCreateOrder(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createOrderRequest
		if !decodeBody(w, r, &req) {
			return
		}
		order, sales, err := deps.Repo.CreateOrder(req.Order)
		if err != nil {
			writeError(w, err, "order")
			return
		}
		deps.Logger.Info("order placed", "id", order.ID, "sales", len(sales), "total", order.Total)

		if req.Email != "" {
			items := make([]map[string]any, 0, len(order.Items))
			for _, it := range order.Items {
				items = append(items, map[string]any{"name": it.Name, "qty": it.Qty, "price": it.Price})
			}
			enqueue(deps, restaurant.NotifyOrderConfirmation, req.Email, map[string]any{
				"name":    req.Name,
				"orderId": order.ID,
				"total":   order.Total,
				"items":   items,
			})
		}
		writeJSON(w, http.StatusCreated, order)
	}
}

func handleUpdateOrder(deps Deps) http.HandlerFunc {
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
		order, err := deps.Repo.UpdateOrderStatus(id, body.Status)
		if err != nil {
			writeError(w, err, "order")
			return
		}
		writeJSON(w, http.StatusOK, order)
	}
}
