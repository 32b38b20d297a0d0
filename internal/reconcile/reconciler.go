// Package reconcile keeps a client-durable cache of reviews and reservations
// coherent with the authoritative store. Local mutations are applied and
// shown immediately, forwarded to the store in the background, and folded
// back in by periodic merges against fresh snapshots.
package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

var (
	// ErrInvalidMutation is returned by Apply for a create without an id or an
	// unknown mutation kind.
	ErrInvalidMutation = errors.New("invalid mutation")

	// ErrBusy is returned by Reconcile while a render of the collection is in
	// progress. A retry is scheduled automatically.
	ErrBusy = errors.New("collection is rendering")
)

// Store is the authoritative collection store.
type Store interface {
	List(ctx context.Context, c Collection) ([]Record, error)
	Create(ctx context.Context, c Collection, r Record) (Record, error)
	Update(ctx context.Context, c Collection, id string, fields map[string]any) (Record, error)
	Delete(ctx context.Context, c Collection, id string) error
}

// Durable holds one opaque blob per key and survives restarts.
type Durable interface {
	GetBlob(key string) ([]byte, bool, error)
	PutBlob(key string, data []byte) error
}

// Listener receives the new contents of a collection whenever they change.
// It is called without the reconciler lock held.
type Listener func(c Collection, records []Record)

type Phase int

const (
	Idle Phase = iota
	Reconciling
	Rendering
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Reconciling:
		return "reconciling"
	case Rendering:
		return "rendering"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

type MutationKind int

const (
	Create MutationKind = iota + 1
	UpdateStatus
	Delete
)

func (k MutationKind) String() string {
	switch k {
	case Create:
		return "create"
	case UpdateStatus:
		return "update_status"
	case Delete:
		return "delete"
	}
	return fmt.Sprintf("MutationKind(%d)", int(k))
}

// Mutation is a local change. Create uses Record; UpdateStatus uses ID and
// Status; Delete uses ID.
type Mutation struct {
	Kind   MutationKind
	Record Record
	ID     string
	Status string
}

type collectionState struct {
	loaded bool
	// records is replaced wholesale on every change and never mutated in
	// place, so a copy handed out earlier stays consistent.
	records     []Record
	snapshot    []Record
	phase       Phase
	active      bool
	timer       *time.Timer
	renderRetry *time.Timer
}

type Reconciler struct {
	store   Store
	durable Durable
	opts    Options
	logger  *slog.Logger

	flight   singleflight.Group
	forwards sync.WaitGroup

	mu        sync.Mutex
	states    map[Collection]*collectionState
	listeners []Listener
	closed    bool
}

func New(store Store, durable Durable, opts Options) *Reconciler {
	opts = opts.withDefaults()
	return &Reconciler{
		store:   store,
		durable: durable,
		opts:    opts,
		logger:  opts.Logger,
		states:  make(map[Collection]*collectionState),
	}
}

// OnChange registers fn to be called after every visible change.
func (r *Reconciler) OnChange(fn Listener) {
	r.mu.Lock()
	r.listeners = append(r.listeners, fn)
	r.mu.Unlock()
}

func (r *Reconciler) nowMillis() int64 {
	return r.opts.Clock.Now().UnixMilli()
}

func (r *Reconciler) key(c Collection) string {
	return r.opts.KeyPrefix + string(c)
}

// stateLocked returns the state of c, loading the durable cache on first use.
// Callers hold r.mu.
func (r *Reconciler) stateLocked(c Collection) *collectionState {
	st, ok := r.states[c]
	if !ok {
		st = &collectionState{}
		r.states[c] = st
	}
	if !st.loaded {
		st.records = r.load(c)
		st.loaded = true
	}
	return st
}

// load reads the durable cache of c. Missing or corrupt data yields an empty
// collection.
func (r *Reconciler) load(c Collection) []Record {
	data, ok, err := r.durable.GetBlob(r.key(c))
	if err != nil {
		r.logger.Warn("reading local cache failed", "collection", c, "error", err)
		return nil
	}
	if !ok || len(data) == 0 {
		return nil
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		r.logger.Warn("discarding corrupt local cache", "collection", c, "error", err)
		return nil
	}
	return dedupe(records)
}

func (r *Reconciler) persistLocked(c Collection, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding %s cache: %w", c, err)
	}
	if err := r.durable.PutBlob(r.key(c), data); err != nil {
		return fmt.Errorf("persisting %s cache: %w", c, err)
	}
	return nil
}

func (r *Reconciler) notify(c Collection, records []Record) {
	r.mu.Lock()
	listeners := append([]Listener(nil), r.listeners...)
	r.mu.Unlock()
	for _, fn := range listeners {
		fn(c, cloneRecords(records))
	}
}

func indexOf(records []Record, id string) int {
	for i, r := range records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// Apply performs a local mutation. The change is persisted before Apply
// returns and listeners are notified; the store receives it asynchronously.
// UpdateStatus and Delete of an id missing from the cache do nothing.
func (r *Reconciler) Apply(c Collection, m Mutation) error {
	switch m.Kind {
	case Create:
		if m.Record.ID == "" {
			return fmt.Errorf("%w: create requires an id", ErrInvalidMutation)
		}
	case UpdateStatus, Delete:
		if m.ID == "" {
			return fmt.Errorf("%w: %s requires an id", ErrInvalidMutation, m.Kind)
		}
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidMutation, int(m.Kind))
	}

	r.mu.Lock()
	st := r.stateLocked(c)
	now := r.nowMillis()

	var next []Record
	switch m.Kind {
	case Create:
		rec := m.Record.Clone()
		if rec.CreatedAt == 0 {
			rec.CreatedAt = now
		}
		if rec.Fields == nil {
			rec.Fields = map[string]any{}
		}
		m.Record = rec
		next = append([]Record(nil), st.records...)
		if i := indexOf(next, rec.ID); i >= 0 {
			next[i] = rec
		} else {
			next = append(next, rec)
		}
	case UpdateStatus:
		i := indexOf(st.records, m.ID)
		if i < 0 {
			r.mu.Unlock()
			return nil
		}
		next = append([]Record(nil), st.records...)
		rec := next[i].Clone()
		if rec.Fields == nil {
			rec.Fields = map[string]any{}
		}
		rec.Fields["status"] = m.Status
		rec.UpdatedAt = now
		next[i] = rec
	case Delete:
		i := indexOf(st.records, m.ID)
		if i < 0 {
			r.mu.Unlock()
			return nil
		}
		next = make([]Record, 0, len(st.records)-1)
		next = append(next, st.records[:i]...)
		next = append(next, st.records[i+1:]...)
	}

	st.records = next
	persistErr := r.persistLocked(c, next)
	r.mu.Unlock()

	if persistErr != nil {
		r.logger.Warn("persisting local mutation failed", "collection", c, "kind", m.Kind, "error", persistErr)
	}
	r.notify(c, next)
	r.forward(c, m)
	return persistErr
}

// forward sends m to the store in the background. Failures are logged; on
// success a reconcile is scheduled so the store's view is folded back in.
func (r *Reconciler) forward(c Collection, m Mutation) {
	r.forwards.Add(1)
	go func() {
		defer r.forwards.Done()

		ctx, cancel := context.WithTimeout(context.Background(), r.opts.WriteTimeout)
		defer cancel()

		var err error
		id := m.ID
		switch m.Kind {
		case Create:
			id = m.Record.ID
			var echo Record
			echo, err = r.store.Create(ctx, c, m.Record)
			if err == nil && echo.ID != "" && echo.ID != m.Record.ID {
				r.rekey(c, m.Record.ID, echo)
			}
		case UpdateStatus:
			_, err = r.store.Update(ctx, c, m.ID, map[string]any{"status": m.Status})
		case Delete:
			err = r.store.Delete(ctx, c, m.ID)
		}
		if err != nil {
			r.logger.Warn("forwarding mutation failed", "collection", c, "kind", m.Kind, "id", id, "error", err)
			return
		}
		r.logger.Debug("forwarded mutation", "collection", c, "kind", m.Kind, "id", id)
		r.ScheduleReconcile(c, r.opts.PostWriteDelay)
	}()
}

// rekey replaces the local entry oldID with the store's echo when the store
// assigned a different id.
func (r *Reconciler) rekey(c Collection, oldID string, echo Record) {
	r.mu.Lock()
	st := r.stateLocked(c)
	i := indexOf(st.records, oldID)
	if i < 0 {
		r.mu.Unlock()
		return
	}
	rec := echo.Clone()
	if rec.CreatedAt == 0 {
		rec.CreatedAt = st.records[i].CreatedAt
	}
	next := append([]Record(nil), st.records...)
	if indexOf(next, rec.ID) >= 0 {
		next = append(next[:i], next[i+1:]...)
	} else {
		next[i] = rec
	}
	st.records = next
	err := r.persistLocked(c, next)
	r.mu.Unlock()

	if err != nil {
		r.logger.Warn("persisting re-keyed record failed", "collection", c, "id", rec.ID, "error", err)
	}
	r.logger.Debug("re-keyed local record", "collection", c, "from", oldID, "to", rec.ID)
	r.notify(c, next)
}

// Reconcile fetches the authoritative snapshot of c and merges it into the
// local cache. Concurrent calls for one collection share a single run. It
// reports whether the visible data changed. A failed fetch leaves the cache
// untouched.
func (r *Reconciler) Reconcile(ctx context.Context, c Collection) (bool, error) {
	v, err, _ := r.flight.Do(string(c), func() (any, error) {
		return r.reconcile(ctx, c)
	})
	changed, _ := v.(bool)
	return changed, err
}

func (r *Reconciler) reconcile(ctx context.Context, c Collection) (bool, error) {
	r.mu.Lock()
	st := r.stateLocked(c)
	if st.phase == Rendering {
		r.mu.Unlock()
		r.ScheduleReconcile(c, r.opts.RenderRetryDelay)
		return false, ErrBusy
	}
	st.phase = Reconciling
	r.mu.Unlock()

	fetchCtx, cancel := context.WithTimeout(ctx, r.opts.FetchTimeout)
	snapshot, err := r.store.List(fetchCtx, c)
	cancel()

	r.mu.Lock()
	st.phase = Idle
	if err != nil {
		r.mu.Unlock()
		return false, fmt.Errorf("fetching %s: %w", c, err)
	}

	st.snapshot = cloneRecords(snapshot)
	merged := Merge(snapshot, st.records, r.nowMillis(), r.opts.window(c))
	if FingerprintOf(merged).Equal(FingerprintOf(st.records)) {
		r.mu.Unlock()
		return false, nil
	}
	st.records = merged
	persistErr := r.persistLocked(c, merged)
	r.mu.Unlock()

	r.logger.Debug("local cache reconciled", "collection", c, "records", len(merged))
	r.notify(c, merged)
	return true, persistErr
}

// Render calls fn with the current cache of c when no merge or other render
// is in progress. Otherwise it arms a single retry and returns false.
func (r *Reconciler) Render(c Collection, fn func([]Record)) bool {
	r.mu.Lock()
	st := r.stateLocked(c)
	if st.phase != Idle {
		if st.renderRetry == nil && !r.closed {
			st.renderRetry = time.AfterFunc(r.opts.RenderRetryDelay, func() {
				r.mu.Lock()
				st.renderRetry = nil
				r.mu.Unlock()
				r.Render(c, fn)
			})
		}
		r.mu.Unlock()
		return false
	}
	st.phase = Rendering
	view := cloneRecords(st.records)
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		st.phase = Idle
		r.mu.Unlock()
	}()
	fn(view)
	return true
}

// Phase reports the current phase of c.
func (r *Reconciler) Phase(c Collection) Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.states[c]; ok {
		return st.phase
	}
	return Idle
}

// LocalCache returns a copy of the local view of c.
func (r *Reconciler) LocalCache(c Collection) []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneRecords(r.stateLocked(c).records)
}

// LastSnapshot returns a copy of the most recent authoritative snapshot of c,
// or nil when none has been fetched.
func (r *Reconciler) LastSnapshot(c Collection) []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.states[c]; ok {
		return cloneRecords(st.snapshot)
	}
	return nil
}

// Flush waits for in-flight forwarding calls to finish.
func (r *Reconciler) Flush() {
	r.forwards.Wait()
}

// Close stops every timer and waits for forwarding to finish. Scheduling
// after Close is a no-op.
func (r *Reconciler) Close() {
	r.mu.Lock()
	r.closed = true
	for _, st := range r.states {
		if st.timer != nil {
			st.timer.Stop()
			st.timer = nil
		}
		if st.renderRetry != nil {
			st.renderRetry.Stop()
			st.renderRetry = nil
		}
	}
	r.mu.Unlock()
	r.forwards.Wait()
}
