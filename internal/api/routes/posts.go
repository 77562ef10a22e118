package routes

import (
	"github.com/go-chi/chi/v5"

	handlers "blogify/internal/api/handlers/posts"
	"blogify/internal/core/posts"
)

// RegisterPostRoutes registers the post endpoints on the router.
// There is no authentication layer: any caller may publish.
func RegisterPostRoutes(r chi.Router, repo *posts.Repository, notifier handlers.NewPostNotifier) {
	listHandler := handlers.NewListHandler(repo)
	createHandler := handlers.NewCreateHandler(repo, notifier)
	updateHandler := handlers.NewUpdateHandler(repo)
	deleteHandler := handlers.NewDeleteHandler(repo)

	r.Get("/api/posts", listHandler.HandleList)
	r.Post("/api/posts", createHandler.HandleCreate)
	r.Put("/api/posts/{id}", updateHandler.HandleUpdate)
	r.Delete("/api/posts/{id}", deleteHandler.HandleDelete)
}
