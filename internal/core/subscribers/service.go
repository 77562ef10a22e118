package subscribers

import (
	"context"
	"log"
	"net/mail"
	"strings"
	"time"
)

// Store defines the durable local store for the subscriber list.
type Store interface {
	// Add inserts a subscriber; ErrAlreadySubscribed if the email exists
	Add(ctx context.Context, sub Subscriber) error

	// Remove deletes a subscriber by id; ErrNotFound if absent
	Remove(ctx context.Context, id int64) error

	// GetByEmail looks a subscriber up by email; ErrNotFound if absent
	GetByEmail(ctx context.Context, email string) (*Subscriber, error)

	// ListActive returns all active subscribers
	ListActive(ctx context.Context) ([]Subscriber, error)

	// CountActive returns the number of active subscribers
	CountActive(ctx context.Context) (int, error)
}

// WelcomeMailer sends the one-off welcome message to a new subscriber.
// Implemented by the notifier; failures never block a subscription.
type WelcomeMailer interface {
	SendWelcome(ctx context.Context, email string) error
}

// Service manages the subscriber list. The uniqueness check lives in the
// store's insert (unique email constraint), so concurrent subscribes
// serialize there instead of racing a read-check-write window.
type Service struct {
	store  Store
	mailer WelcomeMailer
}

// NewService creates a subscriber service. mailer may be nil, in which
// case no welcome mail is sent.
func NewService(store Store, mailer WelcomeMailer) *Service {
	return &Service{
		store:  store,
		mailer: mailer,
	}
}

// Subscribe adds an email to the list and fires the welcome mail. The
// subscriber is kept even when the welcome mail fails.
func (s *Service) Subscribe(ctx context.Context, email string) (*Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}

	sub := Subscriber{
		ID:           time.Now().UnixMilli(),
		Email:        email,
		SubscribedAt: time.Now().UTC(),
		IsActive:     true,
	}

	if err := s.store.Add(ctx, sub); err != nil {
		return nil, err
	}

	if s.mailer != nil {
		if err := s.mailer.SendWelcome(ctx, email); err != nil {
			log.Printf("subscribers: welcome mail to %s failed: %v", email, err)
		}
	}

	return &sub, nil
}

// Unsubscribe removes a subscriber by id.
func (s *Service) Unsubscribe(ctx context.Context, id int64) error {
	return s.store.Remove(ctx, id)
}

// IsSubscribed reports whether the email is already on the list.
func (s *Service) IsSubscribed(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	_, err := s.store.GetByEmail(ctx, email)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListActive returns all active subscribers.
func (s *Service) ListActive(ctx context.Context) ([]Subscriber, error) {
	return s.store.ListActive(ctx)
}

// ActiveCount returns the number of active subscribers.
func (s *Service) ActiveCount(ctx context.Context) (int, error) {
	return s.store.CountActive(ctx)
}
