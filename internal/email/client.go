package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// DefaultEndpoint is the transactional email provider's send API.
const DefaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// Client sends templated messages through an EmailJS-style REST API.
// Implements notify.Sender.
type Client struct {
	http      *http.Client
	endpoint  string
	serviceID string
	publicKey string
}

// NewClient creates an email client. endpoint falls back to
// DefaultEndpoint when empty.
func NewClient(endpoint, serviceID, publicKey string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint:  endpoint,
		serviceID: serviceID,
		publicKey: publicKey,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

type sendRequest struct {
	TemplateParams map[string]string `json:"template_params"`
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
}

// Send dispatches one message rendered from the given template.
func (c *Client) Send(ctx context.Context, templateID string, params map[string]string) error {
	payload, err := json.Marshal(sendRequest{
		ServiceID:      c.serviceID,
		TemplateID:     templateID,
		UserID:         c.publicKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("failed to encode email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("email request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Printf("Warning: failed to close email response body: %v", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return fmt.Errorf("email provider returned %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
