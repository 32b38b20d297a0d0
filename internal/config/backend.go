package config

// Backend is the persistent store behind `restora config set`. Values are
// kept as strings and parsed by the key table, so a backend never needs to
// know a key's type.
//
// macOS keeps them in UserDefaults; other platforms use a JSON file under
// $XDG_CONFIG_HOME.
type Backend interface {
	Get(key string) (val string, ok bool, err error)
	Set(key, val string) error
	Unset(key string) error
}

// SecretStore holds the admin token, which never goes through Backend.
type SecretStore interface {
	Get(account string) (string, error)
	Set(account, value string) error
}
