package navigation

import (
	"errors"
	"fmt"

	"github.com/example/rentlink/domain/view"
)

// Event is a navigation intent.
type Event string

const (
	SplashElapsed  Event = "splash_elapsed"
	GetStarted     Event = "get_started"
	SignIn         Event = "sign_in"
	GoogleSignIn   Event = "google_sign_in"
	OpenDetails    Event = "open_details"
	OpenPostAd     Event = "open_post_ad"
	Published      Event = "published"
	OpenChatDetail Event = "open_chat_detail"
	OpenSettings   Event = "open_settings"
	OpenPayments   Event = "open_payments"
	OpenSupport    Event = "open_support"
	Logout         Event = "logout"
	Back           Event = "back"
	SelectTab      Event = "select_tab"
)

// Input carries an event with the context its guards need.
type Input struct {
	Event Event
	// Tab is the bottom-navigation entry for SelectTab.
	Tab view.Tab
	// HasSelection reports whether a property is selected, for OpenDetails.
	HasSelection bool
}

// Transition describes an accepted change of screen.
type Transition struct {
	From view.State
	To   view.State
}

// Changed reports whether the screen actually changed.
func (t Transition) Changed() bool {
	return t.From != t.To
}

// ErrRejected is wrapped by every refused transition.
var ErrRejected = errors.New("transition rejected")

// RejectedError reports an event that is not valid in the current state.
type RejectedError struct {
	From   view.State
	Event  Event
	Reason string
}

func (e *RejectedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot %s from %s: %s", e.Event, e.From, e.Reason)
	}
	return fmt.Sprintf("cannot %s from %s", e.Event, e.From)
}

func (e *RejectedError) Unwrap() error {
	return ErrRejected
}
