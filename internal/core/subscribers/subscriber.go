package subscribers

import "time"

// Subscriber is a newsletter subscriber kept in the durable local store.
// The id is assigned locally (timestamp based); the email is the unique
// key.
type Subscriber struct {
	SubscribedAt time.Time `json:"subscribedAt" db:"subscribed_at"`
	Email        string    `json:"email" db:"email"`
	ID           int64     `json:"id" db:"id"`
	IsActive     bool      `json:"isActive" db:"is_active"`
}
