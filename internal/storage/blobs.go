package storage

import (
	"database/sql"
	"time"
)

// GetBlob returns the value stored under key. ok is false when the key has
// never been written.
func (s *Store) GetBlob(key string) (val []byte, ok bool, err error) {
	err = s.db.QueryRow("SELECT value FROM blobs WHERE key = ?", key).Scan(&val)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// PutBlob replaces the whole value stored under key.
func (s *Store) PutBlob(key string, data []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, data, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func (s *Store) DeleteBlob(key string) error {
	_, err := s.db.Exec("DELETE FROM blobs WHERE key = ?", key)
	return err
}
