package main

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/kalambet/restora/internal/config"
	"github.com/kalambet/restora/internal/reconcile"
	"github.com/kalambet/restora/internal/remote"
	"github.com/kalambet/restora/internal/restaurant"
	"github.com/kalambet/restora/internal/storage"
)

var newAPIClient = func() (*remote.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return remote.New(cfg.Client.BaseURL, cfg.AdminToken), nil
}

// localClient is the local-first side of the CLI: mutations land in the
// on-disk cache first and reach the server through the reconciler.
type localClient struct {
	api   *remote.Client
	cache *storage.Store
	rec   *reconcile.Reconciler
}

var newLocalClient = func() (*localClient, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	setupLogging(cfg.Log.Level)

	cache, err := storage.Open(cfg.Client.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("opening local cache: %w", err)
	}
	api := remote.New(cfg.Client.BaseURL, cfg.AdminToken)
	return &localClient{
		api:   api,
		cache: cache,
		rec:   reconcile.New(api, cache, syncOptions(cfg)),
	}, nil
}

func syncOptions(cfg config.Config) reconcile.Options {
	opts := reconcile.DefaultOptions()
	opts.Windows = map[reconcile.Collection]time.Duration{
		reconcile.Reviews:      cfg.Sync.ReviewWindow,
		reconcile.Reservations: cfg.Sync.ReservationWindow,
	}
	opts.FetchTimeout = cfg.Client.FetchTimeout
	opts.WriteTimeout = cfg.Client.WriteTimeout
	opts.PostWriteDelay = cfg.Sync.PostWriteDelay
	opts.Interval = cfg.Sync.Interval
	opts.WakeDebounce = cfg.Sync.WakeDebounce
	return opts
}

// Close waits for queued writes and releases the cache.
func (lc *localClient) Close() {
	lc.rec.Close()
	if err := lc.cache.Close(); err != nil {
		printWarning("closing local cache: %v", err)
	}
}

// refresh reconciles c and returns the merged view. When the server is
// unreachable the cached view is returned with a warning.
func (lc *localClient) refresh(ctx context.Context, c reconcile.Collection) []reconcile.Record {
	if _, err := lc.rec.Reconcile(ctx, c); err != nil {
		printWarning("could not reach the server, showing cached %s: %v", c, err)
	}
	var out []reconcile.Record
	if !lc.rec.Render(c, func(records []reconcile.Record) { out = records }) {
		out = lc.rec.LocalCache(c)
	}
	return out
}

// apply performs m locally and waits for it to be forwarded. It reports
// whether the server's view now agrees with the change.
func (lc *localClient) apply(ctx context.Context, c reconcile.Collection, m reconcile.Mutation) (bool, error) {
	if err := lc.rec.Apply(c, m); err != nil {
		return false, err
	}
	lc.rec.Flush()

	if _, err := lc.rec.Reconcile(ctx, c); err != nil {
		return false, nil
	}
	id := m.ID
	if m.Kind == reconcile.Create {
		id = m.Record.ID
	}
	snapshot := lc.rec.LastSnapshot(c)
	i := slices.IndexFunc(snapshot, func(r reconcile.Record) bool { return r.ID == id })
	switch m.Kind {
	case reconcile.Delete:
		return i < 0, nil
	case reconcile.UpdateStatus:
		return i >= 0 && snapshot[i].String("status") == m.Status, nil
	default:
		return i >= 0, nil
	}
}

// find loads c and returns the record with the given id, or one whose id
// starts with it.
func (lc *localClient) find(ctx context.Context, c reconcile.Collection, id string) (reconcile.Record, error) {
	records := lc.refresh(ctx, c)
	var match []reconcile.Record
	for _, r := range records {
		if r.ID == id {
			return r, nil
		}
		if strings.HasPrefix(r.ID, id) {
			match = append(match, r)
		}
	}
	switch len(match) {
	case 0:
		return reconcile.Record{}, fmt.Errorf("%s %q not found", strings.TrimSuffix(string(c), "s"), id)
	case 1:
		return match[0], nil
	default:
		return reconcile.Record{}, fmt.Errorf("id %q is ambiguous (%d matches)", id, len(match))
	}
}

func toReviews(records []reconcile.Record) []restaurant.Review {
	out := make([]restaurant.Review, 0, len(records))
	for _, r := range records {
		var v restaurant.Review
		if err := r.Decode(&v); err != nil {
			printWarning("skipping review %s: %v", r.ID, err)
			continue
		}
		v.ID, v.CreatedAt, v.UpdatedAt = r.ID, r.CreatedAt/1000, r.UpdatedAt/1000
		out = append(out, v)
	}
	return out
}

func toReservations(records []reconcile.Record) []restaurant.Reservation {
	out := make([]restaurant.Reservation, 0, len(records))
	for _, r := range records {
		var v restaurant.Reservation
		if err := r.Decode(&v); err != nil {
			printWarning("skipping reservation %s: %v", r.ID, err)
			continue
		}
		v.ID, v.CreatedAt, v.UpdatedAt = r.ID, r.CreatedAt/1000, r.UpdatedAt/1000
		out = append(out, v)
	}
	return out
}
