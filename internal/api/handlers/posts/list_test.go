package posts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "blogify/internal/core/posts"
)

func TestHandleListServesSnapshot(t *testing.T) {
	now := time.Now().UTC()
	store := &stubStore{records: []core.Record{
		{ID: 2, Title: "Newer", Content: "b", CreatedAt: now},
		{ID: 1, Title: "Older", Content: "a", CreatedAt: now.Add(-time.Hour)},
	}}
	repo := core.NewRepository(store)
	_, err := repo.Load(context.Background())
	require.NoError(t, err)

	handler := NewListHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	rec := httptest.NewRecorder()
	handler.HandleList(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp listResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Posts, 2)
	assert.Equal(t, int64(2), resp.Posts[0].ID)
	assert.Equal(t, int64(1), resp.Posts[1].ID)
	assert.False(t, resp.Loading)
	assert.Nil(t, resp.Error)
}

func TestHandleListEmptyIsJSONArray(t *testing.T) {
	handler := NewListHandler(core.NewRepository(&stubStore{}))

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	rec := httptest.NewRecorder()
	handler.HandleList(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"posts":[]`)
}

func TestHandleListRefreshReloadsFromStore(t *testing.T) {
	store := &stubStore{}
	repo := core.NewRepository(store)
	handler := NewListHandler(repo)

	store.mu.Lock()
	store.records = []core.Record{{ID: 5, Title: "Fresh", Content: "x", CreatedAt: time.Now().UTC()}}
	store.mu.Unlock()

	req := httptest.NewRequest(http.MethodGet, "/api/posts?refresh=1", nil)
	rec := httptest.NewRecorder()
	handler.HandleList(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp listResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Posts, 1)
	assert.Equal(t, int64(5), resp.Posts[0].ID)
}

func TestHandleUpdateRewritesPost(t *testing.T) {
	now := time.Now().UTC()
	store := &updatableStore{record: core.Record{
		ID: 7, Title: "Before", Content: "a", CreatedAt: now, UpdatedAt: now,
	}}
	repo := core.NewRepository(store)
	_, err := repo.Load(context.Background())
	require.NoError(t, err)

	handler := NewUpdateHandler(repo)
	router := chi.NewRouter()
	router.Put("/api/posts/{id}", handler.HandleUpdate)

	body := `{"title": "After", "content": "<p>edited</p>"}`
	req := httptest.NewRequest(http.MethodPut, "/api/posts/7", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var updated core.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, int64(7), updated.ID)
	assert.Equal(t, "After", updated.Title)

	snapshot := repo.Posts()
	require.Len(t, snapshot, 1)
	assert.Equal(t, "After", snapshot[0].Title)
}

func TestHandleUpdateUnknownIDIsNotFound(t *testing.T) {
	handler := NewUpdateHandler(core.NewRepository(&stubStore{}))
	router := chi.NewRouter()
	router.Put("/api/posts/{id}", handler.HandleUpdate)

	body := `{"title": "After", "content": "x"}`
	req := httptest.NewRequest(http.MethodPut, "/api/posts/99", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleDeleteRemovesPost(t *testing.T) {
	now := time.Now().UTC()
	store := &updatableStore{record: core.Record{ID: 7, Title: "Gone", Content: "a", CreatedAt: now}}
	repo := core.NewRepository(store)
	_, err := repo.Load(context.Background())
	require.NoError(t, err)

	handler := NewDeleteHandler(repo)
	router := chi.NewRouter()
	router.Delete("/api/posts/{id}", handler.HandleDelete)

	req := httptest.NewRequest(http.MethodDelete, "/api/posts/7", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, repo.Posts())
}

func TestHandleDeleteBadID(t *testing.T) {
	handler := NewDeleteHandler(core.NewRepository(&stubStore{}))
	router := chi.NewRouter()
	router.Delete("/api/posts/{id}", handler.HandleDelete)

	req := httptest.NewRequest(http.MethodDelete, "/api/posts/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// updatableStore holds one row and supports update and delete on it.
type updatableStore struct {
	record  core.Record
	deleted bool
}

func (s *updatableStore) SelectAll(ctx context.Context) ([]core.Record, error) {
	if s.deleted {
		return nil, nil
	}
	return []core.Record{s.record}, nil
}

func (s *updatableStore) Insert(ctx context.Context, draft core.Draft) (*core.Record, error) {
	return nil, core.NewTransportError("create", nil)
}

func (s *updatableStore) Update(ctx context.Context, id int64, draft core.Draft) (*core.Record, error) {
	if s.deleted || id != s.record.ID {
		return nil, core.ErrNotFound
	}
	s.record.Title = draft.Title
	s.record.Content = draft.Content
	s.record.Excerpt = draft.Excerpt
	s.record.UpdatedAt = time.Now().UTC()
	return &s.record, nil
}

func (s *updatableStore) Delete(ctx context.Context, id int64) error {
	if s.deleted || id != s.record.ID {
		return core.ErrNotFound
	}
	s.deleted = true
	return nil
}
