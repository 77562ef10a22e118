package newsletter

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"blogify/internal/core/subscribers"
)

// Handler handles newsletter subscription requests
type Handler struct {
	service *subscribers.Service
}

// NewHandler creates a newsletter handler
func NewHandler(service *subscribers.Service) *Handler {
	return &Handler{service: service}
}

type subscribeRequest struct {
	Email string `json:"email"`
}

type countResponse struct {
	Count int `json:"count"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HandleSubscribe handles POST /api/newsletter/subscribers
func (h *Handler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 4*1024)

	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	sub, err := h.service.Subscribe(r.Context(), req.Email)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(sub); err != nil {
		log.Printf("Failed to encode subscriber response: %v", err)
	}
}

// HandleUnsubscribe handles DELETE /api/newsletter/subscribers/{id}
func (h *Handler) HandleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid subscriber id")
		return
	}

	if err := h.service.Unsubscribe(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleCount handles GET /api/newsletter/subscribers/count
func (h *Handler) HandleCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.ActiveCount(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(countResponse{Count: count}); err != nil {
		log.Printf("Failed to encode count response: %v", err)
	}
}

func writeError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errorResponse{
		Error:   errorType,
		Message: message,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch err {
	case subscribers.ErrInvalidEmail:
		writeError(w, http.StatusBadRequest, "InvalidEmail", err.Error())

	case subscribers.ErrAlreadySubscribed:
		writeError(w, http.StatusConflict, "AlreadySubscribed", err.Error())

	case subscribers.ErrNotFound:
		writeError(w, http.StatusNotFound, "NotFound", err.Error())

	default:
		log.Printf("Unexpected error in newsletter handler: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
	}
}
