//go:build darwin

package config

import (
	"os/exec"
	"strings"
)

// keychain keeps secrets as generic passwords in the login Keychain.
type keychain struct {
	service string
}

func newSecretStore() SecretStore {
	return keychain{service: secretService}
}

func (k keychain) Get(account string) (string, error) {
	out, err := exec.Command("security", "find-generic-password", "-s", k.service, "-a", account, "-w").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func (k keychain) Set(account, value string) error {
	return exec.Command("security", "add-generic-password", "-U", "-s", k.service, "-a", account, "-w", value).Run()
}
