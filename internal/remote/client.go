// Package remote talks to the restora HTTP API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kalambet/restora/internal/reconcile"
	"github.com/kalambet/restora/internal/restaurant"
)

// APIError is a non-success response from the server.
type APIError struct {
	Status  int
	Type    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New returns a client for the server at baseURL. token is sent as a bearer
// token and may be empty for read-only use.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshalling request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("server not reachable (%w)", err)
	}
	return resp, nil
}

// call performs a request and decodes a JSON response into v when v is non-nil.
func (c *Client) call(ctx context.Context, method, path string, body, v any) error {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	return decodeJSON(resp, v)
}

func decodeJSON(resp *http.Response, v any) error {
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", err)}
		}
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope struct {
			Error struct {
				Message string `json:"message"`
				Type    string `json:"type"`
			} `json:"error"`
		}
		if json.Unmarshal(data, &envelope) == nil && envelope.Error.Message != "" {
			apiErr.Message = envelope.Error.Message
			apiErr.Type = envelope.Error.Type
		} else {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return apiErr
	}
	if v == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func withID(path, id string) string {
	return path + "?id=" + url.QueryEscape(id)
}

func withQuery(path string, q url.Values) string {
	if enc := q.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}

// Health reports the server's uptime.
func (c *Client) Health(ctx context.Context) (time.Duration, error) {
	var out struct {
		OK            bool  `json:"ok"`
		UptimeSeconds int64 `json:"uptime_seconds"`
	}
	if err := c.call(ctx, http.MethodGet, "/api/health", nil, &out); err != nil {
		return 0, err
	}
	return time.Duration(out.UptimeSeconds) * time.Second, nil
}

func (c *Client) ListMenu(ctx context.Context, f restaurant.MenuFilter) ([]restaurant.MenuItem, error) {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	var items []restaurant.MenuItem
	err := c.call(ctx, http.MethodGet, withQuery("/api/menu", q), nil, &items)
	return items, err
}

func (c *Client) CreateMenuItem(ctx context.Context, f restaurant.MenuItemFields) (restaurant.MenuItem, error) {
	var item restaurant.MenuItem
	err := c.call(ctx, http.MethodPost, "/api/menu", f, &item)
	return item, err
}

func (c *Client) UpdateMenuItem(ctx context.Context, id string, f restaurant.MenuItemFields) (restaurant.MenuItem, error) {
	var item restaurant.MenuItem
	err := c.call(ctx, http.MethodPatch, withID("/api/menu", id), f, &item)
	return item, err
}

func (c *Client) DeleteMenuItem(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, withID("/api/menu", id), nil, nil)
}

func (c *Client) ListOrders(ctx context.Context, f restaurant.OrderFilter) ([]restaurant.Order, error) {
	q := url.Values{}
	if f.UserID != "" {
		q.Set("userId", f.UserID)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	var orders []restaurant.Order
	err := c.call(ctx, http.MethodGet, withQuery("/api/orders", q), nil, &orders)
	return orders, err
}

func (c *Client) CreateOrder(ctx context.Context, o restaurant.Order) (restaurant.Order, error) {
	var out restaurant.Order
	err := c.call(ctx, http.MethodPost, "/api/orders", o, &out)
	return out, err
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) (restaurant.Order, error) {
	var out restaurant.Order
	err := c.call(ctx, http.MethodPatch, withID("/api/orders", id), map[string]string{"status": status}, &out)
	return out, err
}

// SalesQuery selects raw sales or one of the grouped summaries.
type SalesQuery struct {
	StartDate string
	EndDate   string
	GroupBy   string // "", "item" or "day"
}

func (q SalesQuery) values() url.Values {
	v := url.Values{}
	if q.StartDate != "" {
		v.Set("startDate", q.StartDate)
	}
	if q.EndDate != "" {
		v.Set("endDate", q.EndDate)
	}
	if q.GroupBy != "" {
		v.Set("groupBy", q.GroupBy)
	}
	return v
}

// Sales decodes the sales report into v, which should match q.GroupBy:
// []restaurant.Sale, []restaurant.ItemSummary or []restaurant.DaySummary.
func (c *Client) Sales(ctx context.Context, q SalesQuery, v any) error {
	return c.call(ctx, http.MethodGet, withQuery("/api/sales", q.values()), nil, v)
}

// ClearReservations deletes every reservation on the server.
func (c *Client) ClearReservations(ctx context.Context) error {
	return c.call(ctx, http.MethodDelete, "/api/reservations", nil, nil)
}

// Notify queues an email notification and returns its job id.
func (c *Client) Notify(ctx context.Context, n restaurant.Notification) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	err := c.call(ctx, http.MethodPost, "/api/notifications", n, &out)
	return out.ID, err
}

var _ reconcile.Store = (*Client)(nil)
