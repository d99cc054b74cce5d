package app

import "errors"

var (
	// ErrUnknownIntent is returned by Apply for an intent name it does not know.
	ErrUnknownIntent = errors.New("unknown intent")
	// ErrStopped is returned by Runtime calls made after Stop.
	ErrStopped = errors.New("app runtime stopped")
	// ErrNotStarted is returned by Runtime calls made before Start.
	ErrNotStarted = errors.New("app runtime not started")
)
