package posts

import (
	"encoding/json"
	"log"
	"net/http"

	core "blogify/internal/core/posts"
)

// ListHandler serves the repository's current post list
type ListHandler struct {
	repo *core.Repository
}

// NewListHandler creates a new list handler
func NewListHandler(repo *core.Repository) *ListHandler {
	return &ListHandler{repo: repo}
}

type listResponse struct {
	Error   *string     `json:"error"`
	Posts   []core.Post `json:"posts"`
	Loading bool        `json:"loading"`
}

// HandleList handles GET /api/posts
// Serves the in-memory snapshot, which the change feed keeps current.
// ?refresh=1 forces a reload from the store first.
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("refresh") == "1" {
		if _, err := h.repo.Load(r.Context()); err != nil {
			handleRepositoryError(w, err)
			return
		}
	}

	resp := listResponse{
		Posts:   h.repo.Posts(),
		Loading: h.repo.Loading(),
	}
	if err := h.repo.Err(); err != nil {
		msg := err.Error()
		resp.Error = &msg
	}
	if resp.Posts == nil {
		resp.Posts = []core.Post{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Failed to encode posts response: %v", err)
	}
}
