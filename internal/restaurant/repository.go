package restaurant

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kalambet/restora/internal/storage"
)

// Repository maps the restaurant's typed records onto the document store.
// Each method is one read-modify-write against the store.
type Repository struct {
	store  *storage.Store
	logger *slog.Logger
}

func NewRepository(store *storage.Store) *Repository {
	return &Repository{store: store, logger: slog.Default()}
}

// Store returns the underlying document store.
func (r *Repository) Store() *storage.Store {
	return r.store
}

// document is implemented by pointers to the record types kept in collections.
type document[T any] interface {
	*T
	key() string
	created() int64
	stamp(created, updated int64)
}

func (m *MenuItem) key() string { return m.ID }
func (m *MenuItem) created() int64 { return m.CreatedAt }
func (m *MenuItem) stamp(c, u int64) { m.CreatedAt, m.UpdatedAt = c, u }

func (v *Review) key() string { return v.ID }
func (v *Review) created() int64 { return v.CreatedAt }
func (v *Review) stamp(c, u int64) { v.CreatedAt, v.UpdatedAt = c, u }

func (v *Reservation) key() string { return v.ID }
func (v *Reservation) created() int64 { return v.CreatedAt }
func (v *Reservation) stamp(c, u int64) { v.CreatedAt, v.UpdatedAt = c, u }

func (o *Order) key() string { return o.ID }
func (o *Order) created() int64 { return o.CreatedAt }
func (o *Order) stamp(c, u int64) { o.CreatedAt, o.UpdatedAt = c, u }

func (s *Sale) key() string { return s.ID }
func (s *Sale) created() int64 { return s.CreatedAt }
func (s *Sale) stamp(c, u int64) { s.CreatedAt, s.UpdatedAt = c, u }

func decode[T any, PT document[T]](d storage.Document) (T, error) {
	var v T
	if err := json.Unmarshal(d.Body, &v); err != nil {
		return v, fmt.Errorf("decoding document %s: %w", d.ID, err)
	}
	PT(&v).stamp(d.CreatedAt.Unix(), d.UpdatedAt.Unix())
	return v, nil
}

func listAll[T any, PT document[T]](s *storage.Store, collection string) ([]T, error) {
	docs, err := s.ListDocuments(collection)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", collection, err)
	}
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		v, err := decode[T, PT](d)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func getOne[T any, PT document[T]](s *storage.Store, collection, id string) (T, error) {
	d, err := s.GetDocument(collection, id)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode[T, PT](d)
}

// put writes v and returns it as stored, with store-assigned timestamps.
func put[T any, PT document[T]](s *storage.Store, collection string, v T) (T, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return v, fmt.Errorf("encoding %s record: %w", collection, err)
	}
	id := PT(&v).key()
	if err := s.PutDocument(collection, storage.Document{ID: id, Body: body}); err != nil {
		return v, fmt.Errorf("writing %s/%s: %w", collection, id, err)
	}
	return getOne[T, PT](s, collection, id)
}

// replace overwrites an existing record and bumps its updated_at.
func replace[T any, PT document[T]](s *storage.Store, collection string, v T) (T, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return v, fmt.Errorf("encoding %s record: %w", collection, err)
	}
	updated, err := s.ReplaceDocument(collection, PT(&v).key(), body)
	if err != nil {
		return v, err
	}
	PT(&v).stamp(PT(&v).created(), updated.Unix())
	return v, nil
}

// newestFirst orders records by creation time descending. Records created in
// the same second keep reverse insertion order.
func newestFirst[T any, PT document[T]](items []T) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	sort.SliceStable(items, func(i, j int) bool {
		return PT(&items[i]).created() > PT(&items[j]).created()
	})
}

func newID(id string) string {
	if strings.TrimSpace(id) != "" {
		return id
	}
	return uuid.NewString()
}

// ListMenu returns menu items in insertion order, filtered by exact category
// and a case-insensitive match on name or description.
func (r *Repository) ListMenu(f MenuFilter) ([]MenuItem, error) {
	items, err := listAll[MenuItem](r.store, CollectionMenu)
	if err != nil {
		return nil, err
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := items[:0]
	for _, it := range items {
		if f.Category != "" && it.Category != f.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(it.Name), search) &&
			!strings.Contains(strings.ToLower(it.Description), search) {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (r *Repository) GetMenuItem(id string) (MenuItem, error) {
	return getOne[MenuItem](r.store, CollectionMenu, id)
}

func (r *Repository) CreateMenuItem(f MenuItemFields) (MenuItem, error) {
	if err := ValidateMenuItem(f); err != nil {
		return MenuItem{}, err
	}
	item := MenuItem{
		ID:        newID(f.ID),
		Image:     DefaultMenuImage,
		Category:  DefaultCategory,
		Available: true,
	}
	applyMenuFields(&item, f)
	return put[MenuItem](r.store, CollectionMenu, item)
}

func (r *Repository) UpdateMenuItem(id string, f MenuItemFields) (MenuItem, error) {
	item, err := r.GetMenuItem(id)
	if err != nil {
		return MenuItem{}, err
	}
	applyMenuFields(&item, f)
	if item.Name == "" {
		return MenuItem{}, invalid("name must not be empty")
	}
	if item.Price < 0 {
		return MenuItem{}, invalid("price must not be negative")
	}
	return replace[MenuItem](r.store, CollectionMenu, item)
}

func applyMenuFields(item *MenuItem, f MenuItemFields) {
	if f.Name != nil {
		item.Name = strings.TrimSpace(*f.Name)
	}
	if f.Price != nil {
		item.Price = *f.Price
	}
	if f.Image != nil && *f.Image != "" {
		item.Image = *f.Image
	}
	if f.Category != nil && *f.Category != "" {
		item.Category = *f.Category
	}
	if f.Description != nil {
		item.Description = *f.Description
	}
	if f.Available != nil {
		item.Available = *f.Available
	}
}

func (r *Repository) DeleteMenuItem(id string) error {
	return r.store.DeleteDocument(CollectionMenu, id)
}

// ListReviews returns reviews newest first, optionally for one menu item.
func (r *Repository) ListReviews(itemID string) ([]Review, error) {
	reviews, err := listAll[Review](r.store, CollectionReviews)
	if err != nil {
		return nil, err
	}
	if itemID != "" {
		out := reviews[:0]
		for _, v := range reviews {
			if v.ItemID == itemID {
				out = append(out, v)
			}
		}
		reviews = out
	}
	newestFirst(reviews)
	return reviews, nil
}

// CreateReview stores a review under the caller's id when one is given, so a
// retried local-first create lands on the same record.
func (r *Repository) CreateReview(v Review) (Review, error) {
	if err := ValidateReview(v); err != nil {
		return Review{}, err
	}
	v.ID = newID(v.ID)
	if v.ItemName == "" {
		v.ItemName = unknownItemName
		item, err := r.GetMenuItem(v.ItemID)
		switch {
		case err == nil:
			v.ItemName = item.Name
		case !errors.Is(err, storage.ErrNotFound):
			return Review{}, fmt.Errorf("looking up menu item %s: %w", v.ItemID, err)
		}
	}
	if strings.TrimSpace(v.ReviewerName) == "" {
		v.ReviewerName = DefaultReviewerName
	}
	return put[Review](r.store, CollectionReviews, v)
}

func (r *Repository) DeleteReview(id string) error {
	return r.store.DeleteDocument(CollectionReviews, id)
}

// ListReservations returns reservations newest first, filtered by status and date.
func (r *Repository) ListReservations(f ReservationFilter) ([]Reservation, error) {
	all, err := listAll[Reservation](r.store, CollectionReservations)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, v := range all {
		if f.Status != "" && v.Status != f.Status {
			continue
		}
		if f.Date != "" && v.Date != f.Date {
			continue
		}
		out = append(out, v)
	}
	newestFirst(out)
	return out, nil
}

func (r *Repository) GetReservation(id string) (Reservation, error) {
	return getOne[Reservation](r.store, CollectionReservations, id)
}

// CreateReservation stores a new request. The status is always pending.
func (r *Repository) CreateReservation(v Reservation) (Reservation, error) {
	if err := ValidateReservation(v); err != nil {
		return Reservation{}, err
	}
	v.ID = newID(v.ID)
	v.Status = StatusPending
	return put[Reservation](r.store, CollectionReservations, v)
}

func (r *Repository) UpdateReservationStatus(id, status string) (Reservation, error) {
	if err := ValidateStatus(status); err != nil {
		return Reservation{}, err
	}
	v, err := r.GetReservation(id)
	if err != nil {
		return Reservation{}, err
	}
	v.Status = status
	return replace[Reservation](r.store, CollectionReservations, v)
}

func (r *Repository) DeleteReservation(id string) error {
	return r.store.DeleteDocument(CollectionReservations, id)
}

// ClearReservations removes every reservation and reports how many there were.
func (r *Repository) ClearReservations() (int64, error) {
	return r.store.ClearCollection(CollectionReservations)
}

func (r *Repository) ListOrders(f OrderFilter) ([]Order, error) {
	all, err := listAll[Order](r.store, CollectionOrders)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, o := range all {
		if f.UserID != "" && o.UserID != f.UserID {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		out = append(out, o)
	}
	newestFirst(out)
	return out, nil
}

func (r *Repository) GetOrder(id string) (Order, error) {
	return getOne[Order](r.store, CollectionOrders, id)
}

// CreateOrder stores the order with status "ordered" and records one sale
// per line item.
func (r *Repository) CreateOrder(o Order) (Order, []Sale, error) {
	if err := ValidateOrder(o); err != nil {
		return Order{}, nil, err
	}
	o.ID = newID("")
	o.Status = OrderStatusOrdered
	for i := range o.Items {
		if o.Items[i].Qty == 0 {
			o.Items[i].Qty = 1
		}
		if o.Items[i].Name == "" {
			o.Items[i].Name = unknownItemName
		}
	}

	stored, err := put[Order](r.store, CollectionOrders, o)
	if err != nil {
		return Order{}, nil, err
	}

	created := time.Unix(stored.CreatedAt, 0).UTC()
	sales := make([]Sale, 0, len(o.Items))
	docs := make([]storage.Document, 0, len(o.Items))
	for _, it := range o.Items {
		s := Sale{
			ID:        uuid.NewString(),
			OrderID:   stored.ID,
			ItemID:    it.ID,
			ItemName:  it.Name,
			Quantity:  it.Qty,
			Price:     it.Price,
			Total:     it.Price * float64(it.Qty),
			CreatedAt: stored.CreatedAt,
			UpdatedAt: stored.CreatedAt,
		}
		body, err := json.Marshal(s)
		if err != nil {
			return Order{}, nil, fmt.Errorf("encoding sale: %w", err)
		}
		sales = append(sales, s)
		docs = append(docs, storage.Document{ID: s.ID, Body: body, CreatedAt: created})
	}
	if err := r.store.PutDocuments(CollectionSales, docs); err != nil {
		return Order{}, nil, fmt.Errorf("recording sales for order %s: %w", stored.ID, err)
	}

	r.logger.Debug("order created", "id", stored.ID, "items", len(o.Items), "total", o.Total)
	return stored, sales, nil
}

func (r *Repository) UpdateOrderStatus(id, status string) (Order, error) {
	if strings.TrimSpace(status) == "" {
		return Order{}, invalid("status is required")
	}
	o, err := r.GetOrder(id)
	if err != nil {
		return Order{}, err
	}
	o.Status = status
	return replace[Order](r.store, CollectionOrders, o)
}

// ListSales returns sales newest first within the filter's bounds.
func (r *Repository) ListSales(f SalesFilter) ([]Sale, error) {
	all, err := listAll[Sale](r.store, CollectionSales)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, s := range all {
		if f.Start != 0 && s.CreatedAt < f.Start {
			continue
		}
		if f.End != 0 && s.CreatedAt > f.End {
			continue
		}
		out = append(out, s)
	}
	newestFirst(out)
	return out, nil
}
