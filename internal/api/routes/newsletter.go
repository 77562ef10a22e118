package routes

import (
	"github.com/go-chi/chi/v5"

	"blogify/internal/api/handlers/newsletter"
	"blogify/internal/core/subscribers"
)

// RegisterNewsletterRoutes registers the subscriber endpoints
func RegisterNewsletterRoutes(r chi.Router, service *subscribers.Service) {
	h := newsletter.NewHandler(service)

	r.Post("/api/newsletter/subscribers", h.HandleSubscribe)
	r.Delete("/api/newsletter/subscribers/{id}", h.HandleUnsubscribe)
	r.Get("/api/newsletter/subscribers/count", h.HandleCount)
}
