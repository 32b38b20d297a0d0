//go:build !darwin

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

func xdgDir(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

func defaultDataDir() string {
	if dir := xdgDir("XDG_DATA_HOME", ".local", "share"); dir != "" {
		return filepath.Join(dir, "restora")
	}
	return "restora-data"
}

func defaultCacheDir() string {
	if dir := xdgDir("XDG_CACHE_HOME", ".cache"); dir != "" {
		return filepath.Join(dir, "restora")
	}
	return "restora-cache"
}

func configFilePath() string {
	dir := xdgDir("XDG_CONFIG_HOME", ".config")
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, "restora", "config.json")
}

func newPlatformBackend() Backend {
	return newFileBackend(configFilePath())
}

// fileBackend keeps settings as one flat JSON object. Numbers written by hand
// are accepted and read back in their literal form.
type fileBackend struct {
	path string
	data map[string]json.RawMessage
}

func newFileBackend(path string) *fileBackend {
	b := &fileBackend{path: path, data: make(map[string]json.RawMessage)}
	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		fmt.Fprintf(os.Stderr, "[WARN] could not read config file %s: %v. Using default values.\n", path, err)
	default:
		if err := json.Unmarshal(raw, &b.data); err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] could not parse config file %s: %v. Using default values.\n", path, err)
			b.data = make(map[string]json.RawMessage)
		}
	}
	return b
}

func (b *fileBackend) Get(key string) (string, bool, error) {
	raw, ok := b.data[key]
	if !ok {
		return "", false, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true, nil
	}
	return string(bytes.TrimSpace(raw)), true, nil
}

func (b *fileBackend) Set(key, val string) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	b.data[key] = raw
	return b.save()
}

func (b *fileBackend) Unset(key string) error {
	if _, ok := b.data[key]; !ok {
		return nil
	}
	delete(b.data, key)
	return b.save()
}

// save replaces the file through a rename so a crash never leaves it half written.
func (b *fileBackend) save() error {
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	out, err := json.MarshalIndent(b.data, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return fmt.Errorf("creating temp config: %w", err)
	}
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing temp config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), b.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing %s: %w", b.path, err)
	}
	return nil
}
