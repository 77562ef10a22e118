package feed

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/feeds"

	core "blogify/internal/core/posts"
)

// Handler serves the blog's RSS feed from the repository snapshot.
type Handler struct {
	repo     *core.Repository
	blogName string
	blogURL  string
}

// NewHandler creates a feed handler
func NewHandler(repo *core.Repository, blogName, blogURL string) *Handler {
	return &Handler{
		repo:     repo,
		blogName: blogName,
		blogURL:  blogURL,
	}
}

// HandleFeed handles GET /feed.xml
func (h *Handler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	posts := h.repo.Posts()

	feed := &feeds.Feed{
		Title:   h.blogName,
		Link:    &feeds.Link{Href: h.blogURL},
		Id:      h.blogURL,
		Updated: time.Now().UTC(),
	}
	if len(posts) > 0 {
		feed.Updated = posts[0].CreatedAt
	}

	for _, post := range posts {
		item := &feeds.Item{
			Title:       post.Title,
			Link:        &feeds.Link{Href: postURL(h.blogURL, post.ID)},
			Id:          postURL(h.blogURL, post.ID),
			Author:      &feeds.Author{Name: post.Author},
			Description: post.Excerpt,
			Content:     post.Content,
			Created:     post.CreatedAt,
			Updated:     post.UpdatedAt,
		}
		feed.Items = append(feed.Items, item)
	}

	rss, err := feed.ToRss()
	if err != nil {
		log.Printf("Failed to render RSS feed: %v", err)
		http.Error(w, "Failed to render feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		log.Printf("Failed to write RSS feed: %v", err)
	}
}

func postURL(base string, id int64) string {
	return base + "/post/" + strconv.FormatInt(id, 10)
}
