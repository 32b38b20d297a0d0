package reconcile

import (
	"context"
	"errors"
	"sync"
	"time"
)

type fakeStore struct {
	mu      sync.Mutex
	records map[Collection][]Record

	listErr   error
	createErr error
	// echoID, when set, replaces the id of created records.
	echoID string
	// gate, when set, blocks List until it is closed.
	gate        chan struct{}
	listStarted chan struct{}

	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int
	lastUpdate  map[string]any
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records:     make(map[Collection][]Record),
		listStarted: make(chan struct{}, 16),
	}
}

func (f *fakeStore) set(c Collection, records ...Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[c] = records
}

func (f *fakeStore) List(ctx context.Context, c Collection) ([]Record, error) {
	f.mu.Lock()
	f.listCalls++
	gate, err := f.gate, f.listErr
	out := cloneRecords(f.records[c])
	f.mu.Unlock()

	select {
	case f.listStarted <- struct{}{}:
	default:
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (f *fakeStore) Create(ctx context.Context, c Collection, r Record) (Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return Record{}, f.createErr
	}
	echo := r.Clone()
	if f.echoID != "" {
		echo.ID = f.echoID
	}
	f.records[c] = append(f.records[c], echo)
	return echo, nil
}

func (f *fakeStore) Update(ctx context.Context, c Collection, id string, fields map[string]any) (Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	f.lastUpdate = fields
	for i, r := range f.records[c] {
		if r.ID == id {
			if r.Fields == nil {
				r.Fields = map[string]any{}
			}
			for k, v := range fields {
				r.Fields[k] = v
			}
			f.records[c][i] = r
			return r.Clone(), nil
		}
	}
	return Record{}, errors.New("not found")
}

func (f *fakeStore) Delete(ctx context.Context, c Collection, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	return nil
}

func (f *fakeStore) calls() (list, create, update, del int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.createCalls, f.updateCalls, f.deleteCalls
}

type memDurable struct {
	mu     sync.Mutex
	blobs  map[string][]byte
	writes int
}

func newMemDurable() *memDurable {
	return &memDurable{blobs: make(map[string][]byte)}
}

func (m *memDurable) GetBlob(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.blobs[key]
	return v, ok, nil
}

func (m *memDurable) PutBlob(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = append([]byte(nil), data...)
	m.writes++
	return nil
}

func (m *memDurable) writeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type signalSpy struct {
	mu    sync.Mutex
	count int
	last  []Record
}

func (s *signalSpy) listener(c Collection, records []Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count++
	s.last = records
}

func (s *signalSpy) n() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(cond func() bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}
