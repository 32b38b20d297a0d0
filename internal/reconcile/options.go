package reconcile

import (
	"log/slog"
	"time"
)

// Clock supplies the current time. Tests substitute a fixed clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

const (
	minInterval       = 10 * time.Second
	minWakeDebounce   = 500 * time.Millisecond
	minPostWriteDelay = 300 * time.Millisecond
	maxPostWriteDelay = 1500 * time.Millisecond
)

type Options struct {
	// Windows holds the pending window per collection.
	Windows map[Collection]time.Duration

	FetchTimeout     time.Duration
	WriteTimeout     time.Duration
	PostWriteDelay   time.Duration
	Interval         time.Duration
	WakeDebounce     time.Duration
	RenderRetryDelay time.Duration

	// KeyPrefix namespaces the durable key of each collection.
	KeyPrefix string

	Clock  Clock
	Logger *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		Windows: map[Collection]time.Duration{
			Reviews:      10 * time.Second,
			Reservations: 5 * time.Minute,
		},
		FetchTimeout:     500 * time.Millisecond,
		WriteTimeout:     700 * time.Millisecond,
		PostWriteDelay:   500 * time.Millisecond,
		Interval:         10 * time.Second,
		WakeDebounce:     500 * time.Millisecond,
		RenderRetryDelay: 100 * time.Millisecond,
		KeyPrefix:        "restora_",
	}
}

// withDefaults fills zero values from DefaultOptions and clamps the trigger
// delays to their allowed ranges.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Windows == nil {
		o.Windows = d.Windows
	} else {
		w := make(map[Collection]time.Duration, len(o.Windows))
		for c, v := range d.Windows {
			w[c] = v
		}
		for c, v := range o.Windows {
			if v > 0 {
				w[c] = v
			}
		}
		o.Windows = w
	}
	if o.FetchTimeout <= 0 {
		o.FetchTimeout = d.FetchTimeout
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = d.WriteTimeout
	}
	if o.PostWriteDelay <= 0 {
		o.PostWriteDelay = d.PostWriteDelay
	}
	o.PostWriteDelay = min(max(o.PostWriteDelay, minPostWriteDelay), maxPostWriteDelay)
	o.Interval = max(o.Interval, minInterval)
	o.WakeDebounce = max(o.WakeDebounce, minWakeDebounce)
	if o.RenderRetryDelay <= 0 {
		o.RenderRetryDelay = d.RenderRetryDelay
	}
	if o.KeyPrefix == "" {
		o.KeyPrefix = d.KeyPrefix
	}
	if o.Clock == nil {
		o.Clock = systemClock{}
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

func (o Options) window(c Collection) time.Duration {
	return o.Windows[c]
}
