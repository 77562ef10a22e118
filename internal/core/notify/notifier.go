package notify

import (
	"context"
	"fmt"
	"log"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"blogify/internal/core/posts"
	"blogify/internal/core/subscribers"
)

// Sender dispatches a single templated message through the outbound
// email provider.
type Sender interface {
	Send(ctx context.Context, templateID string, params map[string]string) error
}

// SubscriberSource is the slice of the subscriber service the notifier
// needs.
type SubscriberSource interface {
	ListActive(ctx context.Context) ([]subscribers.Subscriber, error)
}

// Config carries the notifier's template ids and branding fields.
type Config struct {
	NewPostTemplate string
	WelcomeTemplate string
	BlogName        string
	FromName        string
	BlogURL         string
}

// Notifier fans a new-post announcement out to every active subscriber.
// Dispatch is at-least-effort: each failure is logged and the post
// creation that triggered it is never rolled back. A bounded cache of
// recently announced post ids guards against double dispatch when the
// trigger fires twice for the same post.
type Notifier struct {
	subs     SubscriberSource
	sender   Sender
	notified *lru.Cache[int64, struct{}]
	limiter  *rate.Limiter
	cfg      Config
}

// NewNotifier creates a notifier. The outbound rate is capped at 10
// messages per second to stay under provider quotas.
func NewNotifier(subs SubscriberSource, sender Sender, cfg Config) *Notifier {
	cache, err := lru.New[int64, struct{}](1000)
	if err != nil {
		// Only possible with a non-positive size
		cache, _ = lru.New[int64, struct{}](1)
	}

	return &Notifier{
		subs:     subs,
		sender:   sender,
		cfg:      cfg,
		notified: cache,
		limiter:  rate.NewLimiter(rate.Limit(10), 10),
	}
}

// NotifyNewPost announces the post to all active subscribers. Returns a
// NotificationError when any sends fail; the caller treats that as
// fire-and-forget information, not as a reason to roll anything back.
func (n *Notifier) NotifyNewPost(ctx context.Context, post posts.Post) error {
	if _, seen := n.notified.Get(post.ID); seen {
		log.Printf("notify: post %d already announced, skipping", post.ID)
		return nil
	}
	n.notified.Add(post.ID, struct{}{})

	subs, err := n.subs.ListActive(ctx)
	if err != nil {
		log.Printf("notify: failed to list subscribers for post %d: %v", post.ID, err)
		return &NotificationError{Failed: 1}
	}

	if len(subs) == 0 {
		log.Printf("notify: no active subscribers for post %d", post.ID)
		return nil
	}

	log.Printf("notify: announcing post %d to %d subscribers", post.ID, len(subs))

	excerpt := post.Excerpt
	if excerpt == "" {
		excerpt = "Check out our latest blog post!"
	}

	var sent, failed int
	for _, sub := range subs {
		if err := n.limiter.Wait(ctx); err != nil {
			failed += len(subs) - sent - failed
			break
		}

		params := map[string]string{
			"to_email":     sub.Email,
			"to_name":      nameFromEmail(sub.Email),
			"post_title":   post.Title,
			"post_excerpt": excerpt,
			"post_url":     fmt.Sprintf("%s/post/%d", n.cfg.BlogURL, post.ID),
			"blog_name":    n.cfg.BlogName,
			"from_name":    n.cfg.FromName,
		}

		if err := n.sender.Send(ctx, n.cfg.NewPostTemplate, params); err != nil {
			log.Printf("notify: send to %s failed: %v", sub.Email, err)
			failed++
			continue
		}
		sent++
	}

	if failed > 0 {
		return &NotificationError{Sent: sent, Failed: failed}
	}
	return nil
}

// SendWelcome sends the one-off welcome message to a new subscriber.
// Satisfies subscribers.WelcomeMailer.
func (n *Notifier) SendWelcome(ctx context.Context, email string) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return err
	}

	params := map[string]string{
		"to_email":  email,
		"to_name":   nameFromEmail(email),
		"blog_name": n.cfg.BlogName,
		"from_name": n.cfg.FromName,
		"blog_url":  n.cfg.BlogURL,
	}
	return n.sender.Send(ctx, n.cfg.WelcomeTemplate, params)
}

func nameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
