package images

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"blogify/internal/core/images"
)

// UploadHandler handles featured-image uploads
type UploadHandler struct {
	service *images.Service
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(service *images.Service) *UploadHandler {
	return &UploadHandler{service: service}
}

type uploadResponse struct {
	URL string `json:"url"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HandleUpload handles POST /api/images
// Expects a multipart form with an "image" part. Returns the public URL
// of the stored object.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	// Cap the body slightly above the validation limit so an oversized
	// file reaches the service and fails with the typed error
	r.Body = http.MaxBytesReader(w, r.Body, images.MaxFileSize+2*1024*1024)

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest",
			`Multipart form must include an "image" part`)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Failed to read uploaded file")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	url, err := h.service.Upload(r.Context(), images.File{
		Name:        header.Filename,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		handleUploadError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(uploadResponse{URL: url}); err != nil {
		log.Printf("Failed to encode upload response: %v", err)
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

func handleUploadError(w http.ResponseWriter, err error) {
	switch {
	case err == images.ErrInvalidFileType:
		writeError(w, http.StatusBadRequest, "InvalidFileType", err.Error())

	case err == images.ErrFileTooLarge:
		writeError(w, http.StatusRequestEntityTooLarge, "FileTooLarge", err.Error())

	case images.IsStoreError(err):
		log.Printf("Image upload store failure: %v", err)
		writeError(w, http.StatusBadGateway, "StoreUnavailable",
			"The asset store rejected the upload")

	default:
		log.Printf("Unexpected error in image upload handler: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
	}
}
