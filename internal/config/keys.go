package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type keyType int

const (
	kString keyType = iota
	kInt
	kDuration
)

type keySpec struct {
	key     string
	typ     keyType
	env     string
	secret  bool
	apply   func(cfg *Config, v any)
	extract func(cfg Config) any
}

var specs = []keySpec{
	{
		key: "server.port", typ: kInt, env: "RESTORA_SERVER_PORT",
		apply:   func(cfg *Config, v any) { cfg.Server.Port = v.(int) },
		extract: func(cfg Config) any { return cfg.Server.Port },
	},
	{
		key: "server.max_conns", typ: kInt, env: "RESTORA_SERVER_MAX_CONNS",
		apply:   func(cfg *Config, v any) { cfg.Server.MaxConns = v.(int) },
		extract: func(cfg Config) any { return cfg.Server.MaxConns },
	},
	{
		key: "storage.data_dir", typ: kString, env: "RESTORA_STORAGE_DATA_DIR",
		apply:   func(cfg *Config, v any) { cfg.Storage.DataDir = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.DataDir },
	},
	{
		key: "log.level", typ: kString, env: "RESTORA_LOG_LEVEL",
		apply:   func(cfg *Config, v any) { cfg.Log.Level = v.(string) },
		extract: func(cfg Config) any { return cfg.Log.Level },
	},
	{
		key: "client.base_url", typ: kString, env: "RESTORA_CLIENT_BASE_URL",
		apply:   func(cfg *Config, v any) { cfg.Client.BaseURL = v.(string) },
		extract: func(cfg Config) any { return cfg.Client.BaseURL },
	},
	{
		key: "client.cache_dir", typ: kString, env: "RESTORA_CLIENT_CACHE_DIR",
		apply:   func(cfg *Config, v any) { cfg.Client.CacheDir = v.(string) },
		extract: func(cfg Config) any { return cfg.Client.CacheDir },
	},
	{
		key: "client.fetch_timeout", typ: kDuration, env: "RESTORA_CLIENT_FETCH_TIMEOUT",
		apply:   func(cfg *Config, v any) { cfg.Client.FetchTimeout = v.(time.Duration) },
		extract: func(cfg Config) any { return cfg.Client.FetchTimeout },
	},
	{
		key: "client.write_timeout", typ: kDuration, env: "RESTORA_CLIENT_WRITE_TIMEOUT",
		apply:   func(cfg *Config, v any) { cfg.Client.WriteTimeout = v.(time.Duration) },
		extract: func(cfg Config) any { return cfg.Client.WriteTimeout },
	},
	{
		key: "sync.interval", typ: kDuration, env: "RESTORA_SYNC_INTERVAL",
		apply:   func(cfg *Config, v any) { cfg.Sync.Interval = v.(time.Duration) },
		extract: func(cfg Config) any { return cfg.Sync.Interval },
	},
	{
		key: "sync.wake_debounce", typ: kDuration, env: "RESTORA_SYNC_WAKE_DEBOUNCE",
		apply:   func(cfg *Config, v any) { cfg.Sync.WakeDebounce = v.(time.Duration) },
		extract: func(cfg Config) any { return cfg.Sync.WakeDebounce },
	},
	{
		key: "sync.post_write_delay", typ: kDuration, env: "RESTORA_SYNC_POST_WRITE_DELAY",
		apply:   func(cfg *Config, v any) { cfg.Sync.PostWriteDelay = v.(time.Duration) },
		extract: func(cfg Config) any { return cfg.Sync.PostWriteDelay },
	},
	{
		key: "sync.review_window", typ: kDuration, env: "RESTORA_SYNC_REVIEW_WINDOW",
		apply:   func(cfg *Config, v any) { cfg.Sync.ReviewWindow = v.(time.Duration) },
		extract: func(cfg Config) any { return cfg.Sync.ReviewWindow },
	},
	{
		key: "sync.reservation_window", typ: kDuration, env: "RESTORA_SYNC_RESERVATION_WINDOW",
		apply:   func(cfg *Config, v any) { cfg.Sync.ReservationWindow = v.(time.Duration) },
		extract: func(cfg Config) any { return cfg.Sync.ReservationWindow },
	},
	{
		key: "notify.poll_interval", typ: kDuration, env: "RESTORA_NOTIFY_POLL_INTERVAL",
		apply:   func(cfg *Config, v any) { cfg.Notify.PollInterval = v.(time.Duration) },
		extract: func(cfg Config) any { return cfg.Notify.PollInterval },
	},
	{
		key: "admin.token", typ: kString, env: "RESTORA_ADMIN_TOKEN",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.AdminToken = v.(string) },
		extract: func(cfg Config) any { return cfg.AdminToken },
	},
}

func (t keyType) parse(raw string) (any, error) {
	switch t {
	case kInt:
		return strconv.Atoi(strings.TrimSpace(raw))
	case kDuration:
		d, err := time.ParseDuration(strings.TrimSpace(raw))
		if err == nil && d <= 0 {
			err = fmt.Errorf("duration must be positive")
		}
		return d, err
	default:
		return raw, nil
	}
}

func (t keyType) String() string {
	switch t {
	case kInt:
		return "integer"
	case kDuration:
		return "duration"
	default:
		return "string"
	}
}

// applyBackend copies stored settings into cfg. A value that does not parse
// is reported and the default kept; a backend that cannot be read is an error.
func applyBackend(cfg *Config, b Backend) error {
	for _, s := range specs {
		if s.secret {
			continue
		}
		raw, ok, err := b.Get(s.key)
		if err != nil {
			return fmt.Errorf("reading %s: %w", s.key, err)
		}
		if !ok || raw == "" {
			continue
		}
		v, err := s.typ.parse(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] could not parse %s from config key %s=%q: %v. Using default value.\n", s.typ, s.key, raw, err)
			continue
		}
		s.apply(cfg, v)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	for _, s := range specs {
		if s.env == "" {
			continue
		}
		raw := os.Getenv(s.env)
		if raw == "" {
			continue
		}
		v, err := s.typ.parse(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] could not parse %s from env var %s=%q: %v. Using default value.\n", s.typ, s.env, raw, err)
			continue
		}
		s.apply(cfg, v)
	}
}
