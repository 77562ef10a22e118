package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"blogify/internal/core/images"
)

// Client talks to an HTTP object store (Supabase-storage style API):
// objects are uploaded by name into a bucket and served back from a
// public URL. Implements images.Store.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

// NewClient creates an object store client for the given base URL.
// apiKey may be empty for stores that allow anonymous writes.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		// 30s to handle slow links and near-cap image payloads
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload persists the object under bucket/name. With opts.Overwrite
// false the store is told to reject an existing name, so a collision
// surfaces as an error instead of silently replacing the older object.
func (c *Client) Upload(ctx context.Context, bucket, name string, data []byte, contentType string, opts images.UploadOptions) error {
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s",
		c.baseURL, url.PathEscape(bucket), url.PathEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create upload request: %w", err)
	}

	req.Header.Set("Content-Type", contentType)
	if opts.CacheControl != "" {
		req.Header.Set("Cache-Control", "max-age="+opts.CacheControl)
	}
	if opts.Overwrite {
		req.Header.Set("x-upsert", "true")
	} else {
		req.Header.Set("x-upsert", "false")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("object store request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Printf("Warning: failed to close object store response body: %v", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		if resp.StatusCode == http.StatusConflict {
			return fmt.Errorf("object %q already exists in bucket %q", name, bucket)
		}
		return fmt.Errorf("object store returned %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// PublicURL returns the durable public retrieval URL for an object.
func (c *Client) PublicURL(bucket, name string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		c.baseURL, url.PathEscape(bucket), url.PathEscape(name))
}
