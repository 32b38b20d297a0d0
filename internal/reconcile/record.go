package reconcile

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Collection names a reconciled resource.
type Collection string

const (
	Reviews      Collection = "reviews"
	Reservations Collection = "reservations"
)

// Record is one review or reservation as the reconciler sees it. Times are
// epoch milliseconds.
type Record struct {
	ID        string
	CreatedAt int64
	UpdatedAt int64
	Fields    map[string]any
}

// NewRecord builds a record from the JSON form of v, which is usually one of
// the restaurant domain types.
func NewRecord(id string, createdAt int64, v any) (Record, error) {
	fields, err := FieldsOf(v)
	if err != nil {
		return Record{}, err
	}
	delete(fields, "id")
	delete(fields, "created_at")
	delete(fields, "updated_at")
	return Record{ID: id, CreatedAt: createdAt, Fields: fields}, nil
}

// FieldsOf converts v to a generic field map through its JSON encoding.
func FieldsOf(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding fields: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decoding fields: %w", err)
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Decode fills v from the record's fields.
func (r Record) Decode(v any) error {
	data, err := json.Marshal(r.Fields)
	if err != nil {
		return fmt.Errorf("encoding record %s: %w", r.ID, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding record %s: %w", r.ID, err)
	}
	return nil
}

// String returns the field value for key, or "" when absent or not a string.
func (r Record) String(key string) string {
	s, _ := r.Fields[key].(string)
	return s
}

func (r Record) Clone() Record {
	out := r
	if r.Fields != nil {
		out.Fields = make(map[string]any, len(r.Fields))
		for k, v := range r.Fields {
			out.Fields[k] = v
		}
	}
	return out
}

func cloneRecords(in []Record) []Record {
	if in == nil {
		return nil
	}
	out := make([]Record, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}

// MarshalJSON flattens the record into one object: fields at the top level
// next to id, createdAt and updatedAt.
func (r Record) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(r.Fields)+3)
	for k, v := range r.Fields {
		m[k] = v
	}
	m["id"] = r.ID
	m["createdAt"] = r.CreatedAt
	if r.UpdatedAt != 0 {
		m["updatedAt"] = r.UpdatedAt
	} else {
		delete(m, "updatedAt")
	}
	return json.Marshal(m)
}

// UnmarshalJSON accepts the flattened form. "timestamp" is read as the
// creation time when "createdAt" is missing.
func (r *Record) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("record is not an object")
	}

	id, _ := m["id"].(string)
	created, ok := millis(m["createdAt"])
	if !ok {
		created, _ = millis(m["timestamp"])
	}
	updated, _ := millis(m["updatedAt"])

	for _, k := range []string{"id", "createdAt", "updatedAt", "timestamp"} {
		delete(m, k)
	}
	*r = Record{ID: id, CreatedAt: created, UpdatedAt: updated, Fields: m}
	return nil
}

func millis(v any) (int64, bool) {
	switch t := v.(type) {
	case float64:
		return int64(t), true
	case json.Number:
		n, err := t.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		return n, err == nil
	}
	return 0, false
}
