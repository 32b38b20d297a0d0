package reconcile

import (
	"context"
	"errors"
	"sort"
	"time"
)

// ScheduleReconcile arms a reconcile of c after delay, replacing any reconcile
// already scheduled for c.
func (r *Reconciler) ScheduleReconcile(c Collection, delay time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	st, ok := r.states[c]
	if !ok {
		st = &collectionState{}
		r.states[c] = st
	}
	if st.timer != nil {
		st.timer.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		r.mu.Lock()
		if st.timer != t {
			r.mu.Unlock()
			return
		}
		st.timer = nil
		r.mu.Unlock()
		r.runScheduled(context.Background(), c)
	})
	st.timer = t
}

// Scheduled reports whether a reconcile of c is armed.
func (r *Reconciler) Scheduled(c Collection) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.states[c]
	return ok && st.timer != nil
}

// runScheduled reconciles c on behalf of a trigger. Errors are logged only.
func (r *Reconciler) runScheduled(ctx context.Context, c Collection) {
	if _, err := r.Reconcile(ctx, c); err != nil {
		if errors.Is(err, ErrBusy) {
			r.logger.Debug("reconcile deferred", "collection", c)
			return
		}
		r.logger.Warn("background reconcile failed", "collection", c, "error", err)
	}
}

// SetActive marks whether c is being viewed. Only active collections are
// reconciled by Run and Wake.
func (r *Reconciler) SetActive(c Collection, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.states[c]
	if !ok {
		st = &collectionState{}
		r.states[c] = st
	}
	st.active = active
	if !active && st.timer != nil {
		st.timer.Stop()
		st.timer = nil
	}
}

func (r *Reconciler) activeCollections() []Collection {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Collection
	for c, st := range r.states {
		if st.active {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Wake is the focus trigger: every active collection is reconciled once
// WakeDebounce has passed without another wake.
func (r *Reconciler) Wake() {
	for _, c := range r.activeCollections() {
		r.ScheduleReconcile(c, r.opts.WakeDebounce)
	}
}

// Run reconciles the active collections immediately and then every Interval
// until ctx is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	tick := func() {
		for _, c := range r.activeCollections() {
			if ctx.Err() != nil {
				return
			}
			r.runScheduled(ctx, c)
		}
	}

	tick()
	ticker := time.NewTicker(r.opts.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tick()
		}
	}
}
