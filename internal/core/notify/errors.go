package notify

import (
	"errors"
	"fmt"
)

// NotificationError reports a partially or fully failed dispatch. It is
// always non-fatal to the post-creation flow; callers log it and move on.
type NotificationError struct {
	Sent   int
	Failed int
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification dispatch: %d sent, %d failed", e.Sent, e.Failed)
}

// IsNotificationError checks if error came from the dispatch boundary
func IsNotificationError(err error) bool {
	var nErr *NotificationError
	return errors.As(err, &nErr)
}
