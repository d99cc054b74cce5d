package api

import (
	"encoding/json"

	"github.com/mmcloughlin/geohash"

	"github.com/example/rentlink/modules/app"
)

// StateResponse is the snapshot as rendered over HTTP and the stream.
type StateResponse struct {
	app.Snapshot
	// SelectedGeohash locates the selected listing for the map pin.
	SelectedGeohash string `json:"selectedGeohash,omitempty"`
}

// IntentResponse is the reply to an intent.
type IntentResponse struct {
	Outcome app.Outcome   `json:"outcome"`
	State   StateResponse `json:"state"`
}

// InterpretRequest is the body of POST /api/v1/search/interpret.
type InterpretRequest struct {
	Query string `json:"query"`
}

// InterpretResponse carries the interpreted label; empty when unavailable.
type InterpretResponse struct {
	Label string `json:"label"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the body of every transport error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Stream message types.
const (
	WSTypeState     = "state"
	WSTypeIntent    = "intent"
	WSTypeOutcome   = "outcome"
	WSTypeInterpret = "interpret"
	WSTypeLabel     = "label"
	WSTypeError     = "error"
)

// WSMessage is one frame on the state stream.
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func newStateResponse(s app.Snapshot) StateResponse {
	resp := StateResponse{Snapshot: s}
	if p := s.Selected; p != nil && (p.Latitude != 0 || p.Longitude != 0) {
		resp.SelectedGeohash = geohash.Encode(p.Latitude, p.Longitude)
	}
	return resp
}

func encodeFrame(msgType string, payload any) (WSMessage, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return WSMessage{}, err
	}
	return WSMessage{Type: msgType, Payload: data}, nil
}
