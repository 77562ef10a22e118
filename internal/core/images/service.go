package images

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxFileSize is the upload size cap (10 MiB).
const MaxFileSize = 10 * 1024 * 1024

// filePrefix starts every generated object name.
const filePrefix = "blog"

// File is a single uploadable asset as received from the caller.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// UploadOptions control how the asset store persists an object.
type UploadOptions struct {
	CacheControl string
	Overwrite    bool
}

// Store defines the asset store contract: persist named binary objects
// and resolve their public retrieval URLs.
type Store interface {
	// Upload persists the object; with Overwrite false a name collision
	// is an error, never a silent replace
	Upload(ctx context.Context, bucket, name string, data []byte, contentType string, opts UploadOptions) error

	// PublicURL returns the durable public retrieval URL for an object
	PublicURL(bucket, name string) string
}

// Service validates and uploads featured-image assets. One attempt per
// call; a retry generates a fresh object name, so it never races an
// earlier partial upload.
type Service struct {
	store  Store
	bucket string
}

// NewService creates an image upload service writing into bucket.
func NewService(store Store, bucket string) *Service {
	return &Service{
		store:  store,
		bucket: bucket,
	}
}

// Upload validates the file and persists it, returning the public URL.
// Validation order is fixed: MIME type first, then size, both before any
// store call.
func (s *Service) Upload(ctx context.Context, file File) (string, error) {
	if !strings.HasPrefix(file.ContentType, "image/") {
		return "", ErrInvalidFileType
	}

	if len(file.Data) > MaxFileSize {
		return "", ErrFileTooLarge
	}

	name := generateFileName(file.Name)

	opts := UploadOptions{
		CacheControl: "3600",
		Overwrite:    false,
	}
	if err := s.store.Upload(ctx, s.bucket, name, file.Data, file.ContentType, opts); err != nil {
		return "", &StoreError{Err: err}
	}

	return s.store.PublicURL(s.bucket, name), nil
}

// generateFileName builds a collision-resistant object name from a fixed
// prefix, the current timestamp, and a short random token, keeping the
// original extension lower-cased. No directory listing needed to avoid
// clashes.
func generateFileName(original string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:7]
	name := fmt.Sprintf("%s-%d-%s", filePrefix, time.Now().UnixMilli(), token)

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(original), "."))
	if ext != "" {
		name += "." + ext
	}

	return name
}
