package posts

import (
	"encoding/json"
	"log"
	"net/http"

	core "blogify/internal/core/posts"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeError writes a JSON error response
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

// handleRepositoryError maps repository errors to HTTP responses
func handleRepositoryError(w http.ResponseWriter, err error) {
	switch {
	case core.IsValidationError(err):
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())

	case err == core.ErrNotFound:
		writeError(w, http.StatusNotFound, "NotFound", "Post not found")

	case core.IsConflict(err):
		writeError(w, http.StatusConflict, "Conflict",
			"The store rejected the write due to a constraint; retry with different data")

	case core.IsTransportError(err):
		writeError(w, http.StatusBadGateway, "StoreUnavailable",
			"The post store is unreachable or rejected the request")

	default:
		// Don't leak internal error details to clients
		log.Printf("Unexpected error in posts handler: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
	}
}
