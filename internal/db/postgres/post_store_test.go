package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogify/internal/core/posts"
)

func TestMapWriteErrorUniqueViolationIsConflict(t *testing.T) {
	pqErr := &pq.Error{Code: "23505", Constraint: "blog_posts_title_key"}

	err := mapWriteError("create", pqErr)

	require.True(t, posts.IsConflict(err))
	var conflict *posts.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "blog_posts_title_key", conflict.Constraint)
	assert.ErrorIs(t, err, pqErr)
}

func TestMapWriteErrorOtherDriverErrorIsTransport(t *testing.T) {
	pqErr := &pq.Error{Code: "57P01"} // admin_shutdown

	err := mapWriteError("update", pqErr)

	assert.False(t, posts.IsConflict(err))
	require.True(t, posts.IsTransportError(err))
	var transport *posts.TransportError
	require.True(t, errors.As(err, &transport))
	assert.Equal(t, "update", transport.Op)
}

func TestMapWriteErrorPlainErrorIsTransport(t *testing.T) {
	err := mapWriteError("create", errors.New("connection reset"))

	assert.False(t, posts.IsConflict(err))
	assert.True(t, posts.IsTransportError(err))
}

func TestMapWriteErrorNoRowsIsTransport(t *testing.T) {
	err := mapWriteError("create", sql.ErrNoRows)

	assert.True(t, posts.IsTransportError(err))
}

func TestNullableURL(t *testing.T) {
	url := "https://cdn.example.com/a.png"
	empty := ""

	assert.Equal(t, sql.NullString{String: url, Valid: true}, nullableURL(&url))
	assert.Equal(t, sql.NullString{}, nullableURL(&empty))
	assert.Equal(t, sql.NullString{}, nullableURL(nil))
}
