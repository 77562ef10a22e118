package posts

import (
	"context"
	"log"
	"sync"
)

// Repository is the single source of truth for the post collection.
// It owns the canonical in-memory list: Load replaces it from the remote
// store, Create prepends confirmed inserts, and Apply folds change-feed
// events into it. Readers always see a complete snapshot because every
// mutation swaps in a freshly built slice instead of editing in place.
type Repository struct {
	store   Store
	lastErr error
	posts   []Post
	mu      sync.RWMutex
	loading bool
}

// NewRepository creates a repository backed by the given store. The list
// starts empty; call Load to populate it.
func NewRepository(store Store) *Repository {
	return &Repository{store: store}
}

// Load fetches the full post collection, newest first, and atomically
// replaces the local list. On failure the previous list is left intact
// and the error is recorded for readers.
func (r *Repository) Load(ctx context.Context) ([]Post, error) {
	r.mu.Lock()
	r.loading = true
	r.lastErr = nil
	r.mu.Unlock()

	records, err := r.store.SelectAll(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = false

	if err != nil {
		if !IsTransportError(err) {
			err = NewTransportError("load", err)
		}
		r.lastErr = err
		return nil, err
	}

	loaded := make([]Post, 0, len(records))
	for _, rec := range records {
		loaded = append(loaded, FromRecord(rec))
	}
	r.posts = loaded

	return snapshot(r.posts), nil
}

// Create inserts the draft into the remote store and, once the store has
// confirmed the write, prepends the returned post to the local list. No
// local entry exists until confirmation, so a failed create leaves no
// ghost behind; the feed's echo of the same insert is deduplicated by id.
func (r *Repository) Create(ctx context.Context, draft Draft) (*Post, error) {
	r.mu.Lock()
	r.loading = true
	r.lastErr = nil
	r.mu.Unlock()

	rec, err := r.store.Insert(ctx, draft)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = false

	if err != nil {
		if !IsConflict(err) && !IsTransportError(err) {
			err = NewTransportError("create", err)
		}
		r.lastErr = err
		return nil, err
	}

	post := FromRecord(*rec)
	// The echo may already have arrived through the feed; prepend only
	// if the id is still unknown.
	r.insertLocked(post)

	return &post, nil
}

// Update rewrites the post remotely and folds the confirmed record into
// the local list, preserving its position.
func (r *Repository) Update(ctx context.Context, id int64, draft Draft) (*Post, error) {
	rec, err := r.store.Update(ctx, id, draft)
	if err != nil {
		if err != ErrNotFound && !IsConflict(err) && !IsTransportError(err) {
			err = NewTransportError("update", err)
		}
		return nil, err
	}

	post := FromRecord(*rec)

	r.mu.Lock()
	r.updateLocked(post)
	r.mu.Unlock()

	return &post, nil
}

// Delete removes the post remotely and then locally. The feed's echo of
// the delete becomes a no-op.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.store.Delete(ctx, id); err != nil {
		if err != ErrNotFound && !IsTransportError(err) {
			err = NewTransportError("delete", err)
		}
		return err
	}

	r.mu.Lock()
	r.deleteLocked(id)
	r.mu.Unlock()

	return nil
}

// Apply folds a single change-feed event into the local list. Events are
// applied in arrival order by the Reconciler's consumer loop; callers
// must pass only events that survived ChangeEvent.Valid.
func (r *Repository) Apply(ev ChangeEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch ev.Action {
	case ActionInsert:
		r.insertLocked(FromRecord(*ev.New))
	case ActionUpdate:
		r.updateLocked(FromRecord(*ev.New))
	case ActionDelete:
		r.deleteLocked(ev.Old.ID)
	default:
		log.Printf("posts: ignoring change event with unknown action %q", ev.Action)
	}
}

// insertLocked prepends the post unless its id is already present
// (idempotent against echoes and replays).
func (r *Repository) insertLocked(post Post) {
	for _, existing := range r.posts {
		if existing.ID == post.ID {
			return
		}
	}

	next := make([]Post, 0, len(r.posts)+1)
	next = append(next, post)
	next = append(next, r.posts...)
	r.posts = next
}

// updateLocked replaces the matching entry in place, keeping its
// position. A miss is benign: the row was never loaded here.
func (r *Repository) updateLocked(post Post) {
	for i, existing := range r.posts {
		if existing.ID == post.ID {
			next := make([]Post, len(r.posts))
			copy(next, r.posts)
			next[i] = post
			r.posts = next
			return
		}
	}
}

// deleteLocked removes the entry with the given id, if present.
func (r *Repository) deleteLocked(id int64) {
	for i, existing := range r.posts {
		if existing.ID == id {
			next := make([]Post, 0, len(r.posts)-1)
			next = append(next, r.posts[:i]...)
			next = append(next, r.posts[i+1:]...)
			r.posts = next
			return
		}
	}
}

// Posts returns a snapshot copy of the current list, newest first.
func (r *Repository) Posts() []Post {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return snapshot(r.posts)
}

// Loading reports whether a Load or Create is in flight.
func (r *Repository) Loading() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loading
}

// Err returns the error recorded by the most recent failed operation,
// or nil after a success.
func (r *Repository) Err() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastErr
}

func snapshot(posts []Post) []Post {
	out := make([]Post, len(posts))
	copy(out, posts)
	return out
}
