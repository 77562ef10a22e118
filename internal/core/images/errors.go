package images

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFileType is returned when the file's MIME type does not
	// indicate an image. Checked before size and before any network call.
	ErrInvalidFileType = errors.New("file must be an image")

	// ErrFileTooLarge is returned when the file exceeds MaxFileSize
	ErrFileTooLarge = errors.New("file must be less than 10MB")
)

// StoreError wraps a failure reported by the asset store (network error,
// rejection, name collision). The underlying message stays attached for
// diagnostics.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("upload failed: %v", e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsStoreError checks if error came from the asset store boundary
func IsStoreError(err error) bool {
	var sErr *StoreError
	return errors.As(err, &sErr)
}
