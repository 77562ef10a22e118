package routes

import (
	"github.com/go-chi/chi/v5"

	"blogify/internal/api/handlers/feed"
	"blogify/internal/core/posts"
)

// RegisterFeedRoutes registers the RSS feed endpoint
func RegisterFeedRoutes(r chi.Router, repo *posts.Repository, blogName, blogURL string) {
	h := feed.NewHandler(repo, blogName, blogURL)

	r.Get("/feed.xml", h.HandleFeed)
}
