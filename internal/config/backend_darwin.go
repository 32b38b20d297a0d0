//go:build darwin

package config

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const defaultsDomain = "com.restora.app"

func userDir(fallback string, elem ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return fallback
	}
	return filepath.Join(append([]string{home, "Library"}, elem...)...)
}

func defaultDataDir() string {
	return userDir("restora-data", "Application Support", "restora")
}

func defaultCacheDir() string {
	return userDir("restora-cache", "Caches", "restora")
}

// defaultsBackend stores settings in UserDefaults through the defaults(1) tool.
type defaultsBackend struct {
	domain string
}

func newPlatformBackend() Backend {
	return defaultsBackend{domain: defaultsDomain}
}

func (b defaultsBackend) Get(key string) (string, bool, error) {
	out, err := exec.Command("defaults", "read", b.domain, key).CombinedOutput()
	s := strings.TrimSpace(string(out))
	if err != nil {
		// defaults exits 1 for a missing key or domain.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", false, nil
		}
		return "", false, fmt.Errorf("defaults read %s: %w: %s", key, err, s)
	}
	return s, true, nil
}

func (b defaultsBackend) Set(key, val string) error {
	if out, err := exec.Command("defaults", "write", b.domain, key, "-string", val).CombinedOutput(); err != nil {
		return fmt.Errorf("defaults write %s: %w: %s", key, err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (b defaultsBackend) Unset(key string) error {
	if _, ok, err := b.Get(key); err != nil || !ok {
		return err
	}
	return exec.Command("defaults", "delete", b.domain, key).Run()
}
