package posts

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	core "blogify/internal/core/posts"
)

// NewPostNotifier is invoked out-of-band after a post is durably
// created. Failures must never roll the post back.
type NewPostNotifier interface {
	NotifyNewPost(ctx context.Context, post core.Post) error
}

// CreateHandler handles post creation requests
type CreateHandler struct {
	repo     *core.Repository
	notifier NewPostNotifier
}

// NewCreateHandler creates a new create handler. notifier may be nil.
func NewCreateHandler(repo *core.Repository, notifier NewPostNotifier) *CreateHandler {
	return &CreateHandler{
		repo:     repo,
		notifier: notifier,
	}
}

// HandleCreate handles POST /api/posts
// Validates the draft, inserts it through the repository, then triggers
// subscriber notification in the background.
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	// 1MB allows for long HTML content while preventing abuse
	r.Body = http.MaxBytesReader(w, r.Body, 1*1024*1024)

	var draft core.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		if err.Error() == "http: request body too large" {
			writeError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge",
				"Request body too large (max 1MB)")
			return
		}
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	// Required-field validation happens here, at the caller boundary;
	// the repository does not re-validate.
	if err := draft.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	if draft.ReadTime == "" {
		draft.ReadTime = core.DeriveReadTime(draft.Content)
	}

	post, err := h.repo.Create(r.Context(), draft)
	if err != nil {
		handleRepositoryError(w, err)
		return
	}

	// Fire-and-forget: the post is durable, notification failure is
	// logged inside the notifier and never surfaces here.
	if h.notifier != nil {
		created := *post
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			if err := h.notifier.NotifyNewPost(ctx, created); err != nil {
				log.Printf("posts: notification for post %d: %v", created.ID, err)
			}
		}()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(post); err != nil {
		log.Printf("Failed to encode created post: %v", err)
	}
}
