package events

import (
	"encoding/json"
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// ViewChangedEvent is emitted when the current screen changes.
type ViewChangedEvent struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Underlay  string    `json:"underlay,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ToastPushedEvent is emitted for every queued notification.
type ToastPushedEvent struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
}

// ListingPublishedEvent is emitted when a draft becomes a listing.
type ListingPublishedEvent struct {
	PropertyID string    `json:"property_id"`
	Title      string    `json:"title"`
	OwnerID    string    `json:"owner_id"`
	Price      float64   `json:"price"`
	Timestamp  time.Time `json:"timestamp"`
}

// ListingDeletedEvent is emitted when an owner removes a listing.
type ListingDeletedEvent struct {
	PropertyID string    `json:"property_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// SavedToggledEvent is emitted when a listing is saved or unsaved.
type SavedToggledEvent struct {
	PropertyID string    `json:"property_id"`
	Saved      bool      `json:"saved"`
	Timestamp  time.Time `json:"timestamp"`
}

// DescriptionGeneratedEvent reports the outcome of a description generation.
type DescriptionGeneratedEvent struct {
	DraftID   string    `json:"draft_id"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatMessageSentEvent is emitted when the user sends a chat message.
type ChatMessageSentEvent struct {
	SessionID string    `json:"session_id"`
	MessageID string    `json:"message_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// RoleChangedEvent is emitted when the user's role switches.
type RoleChangedEvent struct {
	Role      string    `json:"role"`
	Timestamp time.Time `json:"timestamp"`
}

// StateChangedEvent carries the encoded snapshot after a processed intent or timer.
type StateChangedEvent struct {
	Version  uint64          `json:"version"`
	View     string          `json:"view"`
	Snapshot json.RawMessage `json:"snapshot"`
}

// Event definitions for the app domain.
var (
	ViewChangedV1 = helper.EventDefinition[ViewChangedEvent](
		"app",
		"ViewChanged",
		"v1",
	)

	ToastPushedV1 = helper.EventDefinition[ToastPushedEvent](
		"app",
		"ToastPushed",
		"v1",
	)

	ListingPublishedV1 = helper.EventDefinition[ListingPublishedEvent](
		"app",
		"ListingPublished",
		"v1",
	)

	ListingDeletedV1 = helper.EventDefinition[ListingDeletedEvent](
		"app",
		"ListingDeleted",
		"v1",
	)

	SavedToggledV1 = helper.EventDefinition[SavedToggledEvent](
		"app",
		"SavedToggled",
		"v1",
	)

	DescriptionGeneratedV1 = helper.EventDefinition[DescriptionGeneratedEvent](
		"app",
		"DescriptionGenerated",
		"v1",
	)

	ChatMessageSentV1 = helper.EventDefinition[ChatMessageSentEvent](
		"app",
		"ChatMessageSent",
		"v1",
	)

	RoleChangedV1 = helper.EventDefinition[RoleChangedEvent](
		"app",
		"RoleChanged",
		"v1",
	)

	StateChangedV1 = helper.EventDefinition[StateChangedEvent](
		"app",
		"StateChanged",
		"v1",
	)
)
