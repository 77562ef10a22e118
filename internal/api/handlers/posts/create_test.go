package posts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "blogify/internal/core/posts"
)

// stubStore scripts the store behind a Repository for handler tests.
type stubStore struct {
	mu          sync.Mutex
	records     []core.Record
	insertErr   error
	insertCalls int
}

func (s *stubStore) SelectAll(ctx context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Record(nil), s.records...), nil
}

func (s *stubStore) Insert(ctx context.Context, draft core.Draft) (*core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertCalls++
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	return &core.Record{
		ID:        int64(100 + s.insertCalls),
		Title:     draft.Title,
		Excerpt:   draft.Excerpt,
		Content:   draft.Content,
		Category:  draft.Category,
		Author:    draft.Author,
		ReadTime:  draft.ReadTime,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}, nil
}

func (s *stubStore) Update(ctx context.Context, id int64, draft core.Draft) (*core.Record, error) {
	return nil, core.ErrNotFound
}

func (s *stubStore) Delete(ctx context.Context, id int64) error {
	return core.ErrNotFound
}

func (s *stubStore) inserts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertCalls
}

type stubNotifier struct {
	mu    sync.Mutex
	posts []core.Post
}

func (n *stubNotifier) NotifyNewPost(ctx context.Context, post core.Post) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.posts = append(n.posts, post)
	return nil
}

func (n *stubNotifier) notified() []core.Post {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]core.Post(nil), n.posts...)
}

func TestHandleCreateReturnsCreatedPost(t *testing.T) {
	store := &stubStore{}
	repo := core.NewRepository(store)
	notifier := &stubNotifier{}
	handler := NewCreateHandler(repo, notifier)

	body := `{"title": "Hello", "content": "<p>world</p>", "author": "Ann"}`
	req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.HandleCreate(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var created core.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(101), created.ID)
	assert.Equal(t, "Hello", created.Title)
	assert.NotEmpty(t, created.ReadTime)

	// the confirmed post is now first in the snapshot
	snapshot := repo.Posts()
	require.Len(t, snapshot, 1)
	assert.Equal(t, int64(101), snapshot[0].ID)

	// notification fires in the background after the write
	require.Eventually(t, func() bool {
		return len(notifier.notified()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, int64(101), notifier.notified()[0].ID)
}

func TestHandleCreateMissingTitleIsRejectedBeforeStore(t *testing.T) {
	store := &stubStore{}
	handler := NewCreateHandler(core.NewRepository(store), nil)

	body := `{"content": "<p>world</p>"}`
	req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.HandleCreate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "InvalidRequest")
	assert.Equal(t, 0, store.inserts())
}

func TestHandleCreateMalformedBody(t *testing.T) {
	handler := NewCreateHandler(core.NewRepository(&stubStore{}), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(`{"title": `))
	rec := httptest.NewRecorder()

	handler.HandleCreate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCreateStoreFailureIsBadGateway(t *testing.T) {
	store := &stubStore{insertErr: core.NewTransportError("create", context.DeadlineExceeded)}
	repo := core.NewRepository(store)
	handler := NewCreateHandler(repo, nil)

	body := `{"title": "Hello", "content": "<p>world</p>"}`
	req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.HandleCreate(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "StoreUnavailable")
	// failed create leaves no ghost entry behind
	assert.Empty(t, repo.Posts())
}
