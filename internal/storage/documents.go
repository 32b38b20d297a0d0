package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Timestamps are kept at second resolution, the unit the HTTP API exposes.

// ListDocuments returns every document in collection in insertion order.
func (s *Store) ListDocuments(collection string) ([]Document, error) {
	rows, err := s.db.Query(`
		SELECT id, body, created_at, updated_at
		FROM documents WHERE collection = ? ORDER BY seq ASC`, collection,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Document
	for rows.Next() {
		var d Document
		var body string
		var createdAt, updatedAt int64
		if err := rows.Scan(&d.ID, &body, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		d.Body = []byte(body)
		d.CreatedAt = time.Unix(createdAt, 0).UTC()
		d.UpdatedAt = time.Unix(updatedAt, 0).UTC()
		results = append(results, d)
	}
	return results, rows.Err()
}

func (s *Store) GetDocument(collection, id string) (Document, error) {
	var d Document
	var body string
	var createdAt, updatedAt int64
	err := s.db.QueryRow(`
		SELECT id, body, created_at, updated_at
		FROM documents WHERE collection = ? AND id = ?`, collection, id,
	).Scan(&d.ID, &body, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, err
	}
	d.Body = []byte(body)
	d.CreatedAt = time.Unix(createdAt, 0).UTC()
	d.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return d, nil
}

// PutDocument inserts d at the end of collection. Writing an existing id
// replaces its body and updated_at but keeps its position and created_at, so
// a retried create is idempotent.
func (s *Store) PutDocument(collection string, d Document) error {
	now := time.Now().UTC()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = d.CreatedAt
	}
	_, err := s.db.Exec(`
		INSERT INTO documents (collection, id, seq, body, created_at, updated_at)
		VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM documents WHERE collection = ?), ?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		collection, d.ID, collection, string(d.Body), d.CreatedAt.Unix(), d.UpdatedAt.Unix(),
	)
	return err
}

// PutDocuments writes several documents to one collection in a single transaction.
func (s *Store) PutDocuments(collection string, docs []Document) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning batch transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, d := range docs {
		if d.CreatedAt.IsZero() {
			d.CreatedAt = now
		}
		if d.UpdatedAt.IsZero() {
			d.UpdatedAt = d.CreatedAt
		}
		if _, err := tx.Exec(`
			INSERT INTO documents (collection, id, seq, body, created_at, updated_at)
			VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM documents WHERE collection = ?), ?, ?, ?)
			ON CONFLICT(collection, id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
			collection, d.ID, collection, string(d.Body), d.CreatedAt.Unix(), d.UpdatedAt.Unix(),
		); err != nil {
			return fmt.Errorf("writing document %s: %w", d.ID, err)
		}
	}
	return tx.Commit()
}

// ReplaceDocument overwrites the body of an existing document and bumps updated_at.
func (s *Store) ReplaceDocument(collection, id string, body []byte) (time.Time, error) {
	now := time.Now().UTC()
	res, err := s.db.Exec(`UPDATE documents SET body = ?, updated_at = ? WHERE collection = ? AND id = ?`,
		string(body), now.Unix(), collection, id)
	if err != nil {
		return time.Time{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return time.Time{}, err
	}
	if n == 0 {
		return time.Time{}, ErrNotFound
	}
	return time.Unix(now.Unix(), 0).UTC(), nil
}

func (s *Store) DeleteDocument(collection, id string) error {
	res, err := s.db.Exec(`DELETE FROM documents WHERE collection = ? AND id = ?`, collection, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearCollection deletes every document in collection and reports how many were removed.
func (s *Store) ClearCollection(collection string) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM documents WHERE collection = ?`, collection)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) CountDocuments(collection string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM documents WHERE collection = ?`, collection).Scan(&n)
	return n, err
}
