package inbox

import "errors"

var (
	// ErrSessionNotFound is returned when a chat session id does not resolve.
	ErrSessionNotFound = errors.New("chat session not found")

	// ErrEmptyMessage is returned when sending blank text.
	ErrEmptyMessage = errors.New("message text is empty")
)
