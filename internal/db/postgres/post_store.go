package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/lib/pq"

	"blogify/internal/core/posts"
)

type postgresPostStore struct {
	db *sql.DB
}

// NewPostStore creates a PostgreSQL-backed post store
func NewPostStore(db *sql.DB) posts.Store {
	return &postgresPostStore{db: db}
}

const postColumns = `
	id, title, excerpt, content, category, author, read_time, image_url,
	created_at, updated_at`

// SelectAll returns every post ordered newest-first, matching the
// ordering contract the Repository relies on.
func (s *postgresPostStore) SelectAll(ctx context.Context) ([]posts.Record, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM blog_posts
		ORDER BY created_at DESC, id DESC
	`, postColumns)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, posts.NewTransportError("load", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Printf("WARN: failed to close rows: %v", closeErr)
		}
	}()

	var records []posts.Record
	for rows.Next() {
		rec, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, posts.NewTransportError("load", err)
	}

	return records, nil
}

// Insert writes a new post and returns the row with its server-assigned
// id and timestamps.
func (s *postgresPostStore) Insert(ctx context.Context, draft posts.Draft) (*posts.Record, error) {
	query := fmt.Sprintf(`
		INSERT INTO blog_posts (
			title, excerpt, content, category, author, read_time, image_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s
	`, postColumns)

	row := s.db.QueryRowContext(
		ctx, query,
		draft.Title, draft.Excerpt, draft.Content, draft.Category,
		draft.Author, draft.ReadTime, nullableURL(draft.ImageURL),
	)

	rec, err := scanPost(row)
	if err != nil {
		return nil, mapWriteError("create", err)
	}

	return rec, nil
}

// Update rewrites an existing post; updated_at moves to now, created_at
// is immutable.
func (s *postgresPostStore) Update(ctx context.Context, id int64, draft posts.Draft) (*posts.Record, error) {
	query := fmt.Sprintf(`
		UPDATE blog_posts
		SET title = $2, excerpt = $3, content = $4, category = $5,
		    author = $6, read_time = $7, image_url = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, postColumns)

	row := s.db.QueryRowContext(
		ctx, query,
		id, draft.Title, draft.Excerpt, draft.Content, draft.Category,
		draft.Author, draft.ReadTime, nullableURL(draft.ImageURL),
	)

	rec, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, mapWriteError("update", err)
	}

	return rec, nil
}

// Delete removes a post by id.
func (s *postgresPostStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return posts.NewTransportError("delete", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return posts.NewTransportError("delete", err)
	}
	if affected == 0 {
		return posts.ErrNotFound
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row scanner) (*posts.Record, error) {
	var rec posts.Record
	var imageURL sql.NullString

	err := row.Scan(
		&rec.ID, &rec.Title, &rec.Excerpt, &rec.Content, &rec.Category,
		&rec.Author, &rec.ReadTime, &imageURL,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if imageURL.Valid {
		rec.ImageURL = &imageURL.String
	}

	return &rec, nil
}

func nullableURL(url *string) sql.NullString {
	if url == nil || *url == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *url, Valid: true}
}

// mapWriteError converts driver errors into the post error taxonomy.
// Unique-constraint rejections become conflicts so callers can retry
// with different data; everything else is a transport failure.
func mapWriteError(op string, err error) error {
	if err == sql.ErrNoRows {
		return posts.NewTransportError(op, err)
	}

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
		return posts.NewConflictError(pqErr.Constraint, err)
	}

	return posts.NewTransportError(op, err)
}
