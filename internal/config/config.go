package config

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

type Config struct {
	Server     ServerConfig
	Storage    StorageConfig
	Log        LogConfig
	Client     ClientConfig
	Sync       SyncConfig
	Notify     NotifyConfig
	AdminToken string
}

type ServerConfig struct {
	Port     int
	MaxConns int
}

type StorageConfig struct {
	DataDir string
}

type LogConfig struct {
	Level string
}

// ClientConfig is used by the CLI commands that talk to a running server.
type ClientConfig struct {
	BaseURL      string
	CacheDir     string
	FetchTimeout time.Duration
	WriteTimeout time.Duration
}

// SyncConfig tunes the local-first reconciler.
type SyncConfig struct {
	Interval          time.Duration
	WakeDebounce      time.Duration
	PostWriteDelay    time.Duration
	ReviewWindow      time.Duration
	ReservationWindow time.Duration
}

type NotifyConfig struct {
	PollInterval time.Duration
}

const (
	secretService     = "restora"
	adminTokenAccount = "admin_token"
	defaultPort       = 4000
	defaultMaxConns   = 256
)

func defaults() Config {
	dataDir := defaultDataDir()
	return Config{
		Server: ServerConfig{
			Port:     defaultPort,
			MaxConns: defaultMaxConns,
		},
		Storage: StorageConfig{
			DataDir: dataDir,
		},
		Log: LogConfig{
			Level: "info",
		},
		Client: ClientConfig{
			BaseURL:      fmt.Sprintf("http://localhost:%d", defaultPort),
			CacheDir:     defaultCacheDir(),
			FetchTimeout: 500 * time.Millisecond,
			WriteTimeout: 700 * time.Millisecond,
		},
		Sync: SyncConfig{
			Interval:          10 * time.Second,
			WakeDebounce:      500 * time.Millisecond,
			PostWriteDelay:    500 * time.Millisecond,
			ReviewWindow:      10 * time.Second,
			ReservationWindow: 5 * time.Minute,
		},
		Notify: NotifyConfig{
			PollInterval: 500 * time.Millisecond,
		},
	}
}

// Load builds the configuration from defaults, the platform backend, RESTORA_*
// environment variables and, for the admin token, the platform secret store.
//
// On macOS settings live in UserDefaults (domain com.restora.app) and the
// token in the Keychain. Elsewhere settings are read from
// $XDG_CONFIG_HOME/restora/config.json and the token from
// $XDG_DATA_HOME/restora/secrets.json.
func Load() (Config, error) {
	return loadWith(newPlatformBackend(), newSecretStore())
}

func loadWith(b Backend, secrets SecretStore) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	if cfg.AdminToken == "" {
		if tok, err := secrets.Get(adminTokenAccount); err == nil && tok != "" {
			cfg.AdminToken = tok
		}
	}

	// First run: mint a token and remember it so the server and the CLI agree.
	if cfg.AdminToken == "" {
		cfg.AdminToken = uuid.NewString()
		if err := secrets.Set(adminTokenAccount, cfg.AdminToken); err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] could not store admin token: %v. Set RESTORA_ADMIN_TOKEN to share it with the CLI.\n", err)
		}
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return Config{}, fmt.Errorf("invalid server.port %d", cfg.Server.Port)
	}
	if cfg.Server.MaxConns < 0 {
		return Config{}, fmt.Errorf("invalid server.max_conns %d", cfg.Server.MaxConns)
	}

	return cfg, nil
}
