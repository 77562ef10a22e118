package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"

	"blogify/internal/core/subscribers"
)

const schema = `
CREATE TABLE IF NOT EXISTS subscribers (
    id INTEGER PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    subscribed_at DATETIME NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT 1
);
`

// Open opens (creating if needed) the local subscriber database at path
// and ensures the schema exists.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open subscriber database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize subscriber schema: %w", err)
	}

	return db, nil
}

// SubscriberStore implements subscribers.Store over a local SQLite file,
// the durable stand-in for per-device subscriber storage.
type SubscriberStore struct {
	db *sql.DB
}

// NewSubscriberStore creates a store over an opened database.
func NewSubscriberStore(db *sql.DB) *SubscriberStore {
	return &SubscriberStore{db: db}
}

func (s *SubscriberStore) Add(ctx context.Context, sub subscribers.Subscriber) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subscribers (id, email, subscribed_at, is_active)
		VALUES (?, ?, ?, ?)
	`, sub.ID, sub.Email, sub.SubscribedAt, sub.IsActive)
	if err != nil {
		if sqliteErr, ok := err.(sqlite3.Error); ok &&
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return subscribers.ErrAlreadySubscribed
		}
		return err
	}
	return nil
}

func (s *SubscriberStore) Remove(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM subscribers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return subscribers.ErrNotFound
	}
	return nil
}

func (s *SubscriberStore) GetByEmail(ctx context.Context, email string) (*subscribers.Subscriber, error) {
	var sub subscribers.Subscriber
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, subscribed_at, is_active
		FROM subscribers WHERE email = ?
	`, email).Scan(&sub.ID, &sub.Email, &sub.SubscribedAt, &sub.IsActive)
	if err == sql.ErrNoRows {
		return nil, subscribers.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *SubscriberStore) ListActive(ctx context.Context) ([]subscribers.Subscriber, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, email, subscribed_at, is_active
		FROM subscribers
		WHERE is_active = 1
		ORDER BY subscribed_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []subscribers.Subscriber
	for rows.Next() {
		var sub subscribers.Subscriber
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.SubscribedAt, &sub.IsActive); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (s *SubscriberStore) CountActive(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM subscribers WHERE is_active = 1`).Scan(&count)
	return count, err
}
