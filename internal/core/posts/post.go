package posts

import (
	"time"
)

// Post is a blog post as exposed to consumers. Posts are owned by the
// Repository; everything else gets copies.
type Post struct {
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	ImageURL  *string   `json:"image_url,omitempty" db:"image_url"`
	Title     string    `json:"title" db:"title"`
	Excerpt   string    `json:"excerpt" db:"excerpt"`
	Content   string    `json:"content" db:"content"`
	Category  string    `json:"category" db:"category"`
	Author    string    `json:"author" db:"author"`
	ReadTime  string    `json:"read_time" db:"read_time"`
	ID        int64     `json:"id" db:"id"`
}

// Record is the wire shape of a post row as the remote store returns it
// and as the change feed carries it. The id and both timestamps are
// server-assigned.
type Record struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ImageURL  *string   `json:"image_url,omitempty"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Author    string    `json:"author"`
	ReadTime  string    `json:"read_time"`
	ID        int64     `json:"id"`
}

// Draft represents input for creating or updating a post. Title and
// content are required; everything else is optional.
type Draft struct {
	ImageURL *string `json:"image_url,omitempty"`
	Title    string  `json:"title"`
	Excerpt  string  `json:"excerpt"`
	Content  string  `json:"content"`
	Category string  `json:"category"`
	Author   string  `json:"author"`
	ReadTime string  `json:"read_time"`
}

// Validate checks the draft's required fields. The Repository trusts its
// callers and does not re-run this; HTTP handlers call it before touching
// the store.
func (d Draft) Validate() error {
	if d.Title == "" {
		return NewValidationError("title", "title is required")
	}
	if d.Content == "" {
		return NewValidationError("content", "content is required")
	}
	return nil
}

// FromRecord converts a raw store record to a Post, filling derived and
// defaulted fields. Kept a pure function so the mapping is testable on
// its own.
func FromRecord(rec Record) Post {
	p := Post{
		ID:        rec.ID,
		Title:     rec.Title,
		Excerpt:   rec.Excerpt,
		Content:   rec.Content,
		Category:  rec.Category,
		Author:    rec.Author,
		ReadTime:  rec.ReadTime,
		ImageURL:  rec.ImageURL,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	if p.Category == "" {
		p.Category = "Uncategorized"
	}
	if p.ReadTime == "" {
		p.ReadTime = DeriveReadTime(p.Content)
	}
	return p
}

// EventAction identifies a change-feed event type.
type EventAction string

const (
	ActionInsert EventAction = "INSERT"
	ActionUpdate EventAction = "UPDATE"
	ActionDelete EventAction = "DELETE"
)

// ChangeEvent is a single row-level change delivered by the store's
// change feed. Insert and update events carry the new row; delete events
// carry (at least the id of) the old one.
type ChangeEvent struct {
	New    *Record
	Old    *Record
	Action EventAction
}

// Valid reports whether the event is well-formed enough to apply. The
// Reconciler drops anything that fails this rather than letting one bad
// event take the subscription down.
func (ev ChangeEvent) Valid() error {
	switch ev.Action {
	case ActionInsert, ActionUpdate:
		if ev.New == nil || ev.New.ID == 0 {
			return NewValidationError("record", "event is missing the new row or its id")
		}
	case ActionDelete:
		if ev.Old == nil || ev.Old.ID == 0 {
			return NewValidationError("old_record", "delete event is missing the old row id")
		}
	default:
		return NewValidationError("action", "unknown event action: "+string(ev.Action))
	}
	return nil
}
