package subscribers

import "errors"

var (
	// ErrAlreadySubscribed is returned when the email is already on the list
	ErrAlreadySubscribed = errors.New("email already subscribed")

	// ErrNotFound is returned when no subscriber matches the given id
	ErrNotFound = errors.New("subscriber not found")

	// ErrInvalidEmail is returned for addresses that fail basic parsing
	ErrInvalidEmail = errors.New("invalid email address")
)
