package posts

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	core "blogify/internal/core/posts"
)

// UpdateHandler handles post edits
type UpdateHandler struct {
	repo *core.Repository
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(repo *core.Repository) *UpdateHandler {
	return &UpdateHandler{repo: repo}
}

// HandleUpdate handles PUT /api/posts/{id}
func (h *UpdateHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid post id")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1*1024*1024)

	var draft core.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	if err := draft.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	if draft.ReadTime == "" {
		draft.ReadTime = core.DeriveReadTime(draft.Content)
	}

	post, err := h.repo.Update(r.Context(), id, draft)
	if err != nil {
		handleRepositoryError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(post); err != nil {
		log.Printf("Failed to encode updated post: %v", err)
	}
}

// DeleteHandler handles post removal
type DeleteHandler struct {
	repo *core.Repository
}

// NewDeleteHandler creates a new delete handler
func NewDeleteHandler(repo *core.Repository) *DeleteHandler {
	return &DeleteHandler{repo: repo}
}

// HandleDelete handles DELETE /api/posts/{id}
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid post id")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		handleRepositoryError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
