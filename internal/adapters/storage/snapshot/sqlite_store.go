package snapshot

import (
	"context"
	"database/sql"
	"time"
)

const timeFormat = "2006-01-02T15:04:05.999999999Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new snapshot store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Put stores or replaces the payload for (scope, namespace).
// PRE: scope and namespace are non-empty
// POST: Get returns exactly payload
func (s *SQLiteStore) Put(ctx context.Context, scope, namespace string, payload []byte) error {
	query := `INSERT INTO snapshot (scope, namespace, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(scope, namespace) DO UPDATE SET
			payload=excluded.payload,
			updated_at=excluded.updated_at`
	_, err := s.db.ExecContext(ctx, query, scope, namespace, string(payload), time.Now().Format(timeFormat))
	return err
}

// Get retrieves the payload for (scope, namespace).
// POST: Returns ErrNotFound when nothing is stored
func (s *SQLiteStore) Get(ctx context.Context, scope, namespace string) ([]byte, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM snapshot WHERE scope = ? AND namespace = ?", scope, namespace).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(payload), nil
}

// Delete removes one namespace for a scope. Deleting an absent entry is a no-op.
func (s *SQLiteStore) Delete(ctx context.Context, scope, namespace string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM snapshot WHERE scope = ? AND namespace = ?", scope, namespace)
	return err
}

// DeleteScope removes every namespace for a scope (used on logout).
func (s *SQLiteStore) DeleteScope(ctx context.Context, scope string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM snapshot WHERE scope = ?", scope)
	return err
}
