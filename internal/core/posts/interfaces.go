package posts

import "context"

// Store defines the remote post store contract consumed by the
// Repository. Implemented by the postgres store; tests substitute fakes.
type Store interface {
	// SelectAll returns every post record ordered by creation time
	// descending (newest first)
	SelectAll(ctx context.Context) ([]Record, error)

	// Insert writes a new post and returns the stored record with the
	// server-assigned id and timestamps
	Insert(ctx context.Context, draft Draft) (*Record, error)

	// Update rewrites the post with the given id and returns the stored
	// record; ErrNotFound if no such row
	Update(ctx context.Context, id int64, draft Draft) (*Record, error)

	// Delete removes the post with the given id; ErrNotFound if no such row
	Delete(ctx context.Context, id int64) error
}
