package app

// Service names registered in the app module's container.
const (
	ServiceSnapshot        = "snapshot"
	ServiceIntent          = "intent"
	ServiceInterpretSearch = "interpret-search"
)

// SnapshotRequest asks for the current state.
type SnapshotRequest struct{}

// SnapshotResponse carries the current state.
type SnapshotResponse struct {
	Snapshot Snapshot `json:"snapshot"`
}

// IntentResponse is the reply to an IntentRequest.
type IntentResponse struct {
	Outcome  Outcome  `json:"outcome"`
	Snapshot Snapshot `json:"snapshot"`
	// Unknown is set when the intent name was not recognised.
	Unknown bool `json:"unknown,omitempty"`
}

// InterpretRequest carries a free-text search query.
type InterpretRequest struct {
	Query string `json:"query"`
}

// InterpretResponse carries the interpreted label, empty when unavailable.
type InterpretResponse struct {
	Label string `json:"label"`
}
