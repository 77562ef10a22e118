package routes

import (
	"github.com/go-chi/chi/v5"

	handlers "blogify/internal/api/handlers/images"
	"blogify/internal/core/images"
)

// RegisterImageRoutes registers the image upload endpoint
func RegisterImageRoutes(r chi.Router, service *images.Service) {
	uploadHandler := handlers.NewUploadHandler(service)

	r.Post("/api/images", uploadHandler.HandleUpload)
}
