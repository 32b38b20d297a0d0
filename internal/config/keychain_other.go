//go:build !darwin

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// secretFile is a 0600 JSON map of account to secret. It stands in for a
// keyring on platforms without one.
type secretFile struct {
	path string
}

func newSecretStore() SecretStore {
	dir := xdgDir("XDG_DATA_HOME", ".local", "share")
	if dir == "" {
		dir = "."
	}
	return secretFile{path: filepath.Join(dir, secretService, "secrets.json")}
}

func (f secretFile) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, err
	}
	var secrets map[string]string
	if err := json.Unmarshal(data, &secrets); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", f.path, err)
	}
	return secrets, nil
}

func (f secretFile) Get(account string) (string, error) {
	secrets, err := f.read()
	if err != nil {
		return "", fmt.Errorf("secret store not available: %w", err)
	}
	val, ok := secrets[account]
	if !ok {
		return "", fmt.Errorf("no secret stored for %q", account)
	}
	return val, nil
}

func (f secretFile) Set(account, value string) error {
	secrets, err := f.read()
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if secrets == nil {
		secrets = make(map[string]string)
	}
	secrets[account] = value

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("creating secrets dir: %w", err)
	}
	out, err := json.MarshalIndent(secrets, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, out, 0o600)
}
