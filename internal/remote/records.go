package remote

import (
	"context"
	"net/http"

	"github.com/kalambet/restora/internal/reconcile"
)

// The server stores timestamps as Unix seconds; records carry milliseconds.

func collectionPath(c reconcile.Collection) string {
	return "/api/" + string(c)
}

func toRecord(m map[string]any) reconcile.Record {
	r := reconcile.Record{Fields: make(map[string]any, len(m))}
	for k, v := range m {
		switch k {
		case "id":
			r.ID, _ = v.(string)
		case "created_at":
			r.CreatedAt = seconds(v) * 1000
		case "updated_at":
			r.UpdatedAt = seconds(v) * 1000
		default:
			r.Fields[k] = v
		}
	}
	return r
}

func seconds(v any) int64 {
	if f, ok := v.(float64); ok {
		return int64(f)
	}
	return 0
}

func fromRecord(r reconcile.Record) map[string]any {
	body := make(map[string]any, len(r.Fields)+1)
	for k, v := range r.Fields {
		body[k] = v
	}
	body["id"] = r.ID
	return body
}

// List fetches the collection in the server's order.
func (c *Client) List(ctx context.Context, col reconcile.Collection) ([]reconcile.Record, error) {
	var raw []map[string]any
	if err := c.call(ctx, http.MethodGet, collectionPath(col), nil, &raw); err != nil {
		return nil, err
	}
	out := make([]reconcile.Record, 0, len(raw))
	for _, m := range raw {
		out = append(out, toRecord(m))
	}
	return out, nil
}

// Create posts r under its own id and returns the stored record.
func (c *Client) Create(ctx context.Context, col reconcile.Collection, r reconcile.Record) (reconcile.Record, error) {
	var raw map[string]any
	if err := c.call(ctx, http.MethodPost, collectionPath(col), fromRecord(r), &raw); err != nil {
		return reconcile.Record{}, err
	}
	return toRecord(raw), nil
}

func (c *Client) Update(ctx context.Context, col reconcile.Collection, id string, fields map[string]any) (reconcile.Record, error) {
	var raw map[string]any
	if err := c.call(ctx, http.MethodPatch, withID(collectionPath(col), id), fields, &raw); err != nil {
		return reconcile.Record{}, err
	}
	return toRecord(raw), nil
}

func (c *Client) Delete(ctx context.Context, col reconcile.Collection, id string) error {
	return c.call(ctx, http.MethodDelete, withID(collectionPath(col), id), nil, nil)
}
