// Package assistant holds the generative-text capabilities the engine consumes:
// listing description generation and search query interpretation.
package assistant

import (
	"context"
	"errors"
)

// DefaultHighlights is used when the owner leaves the highlights field empty.
const DefaultHighlights = "Modern, spacious, good view"

// DescriptionInput describes the listing a description is written for.
type DescriptionInput struct {
	Type       string `json:"type"`
	Location   string `json:"location"`
	Bedrooms   int    `json:"bedrooms"`
	Highlights string `json:"highlights"`
}

// DescriptionGenerator writes a listing description.
type DescriptionGenerator interface {
	GenerateDescription(ctx context.Context, in DescriptionInput) (string, error)
}

// SearchInterpreter turns a free-text query into a short filter label.
type SearchInterpreter interface {
	InterpretSearch(ctx context.Context, query string) (string, error)
}

// Provider offers both capabilities.
type Provider interface {
	DescriptionGenerator
	SearchInterpreter
}

var (
	// ErrUnavailable is returned when no credential is configured.
	ErrUnavailable = errors.New("AI services unavailable")

	// ErrEmptyResult is returned when the provider answers with no text.
	ErrEmptyResult = errors.New("provider returned no text")
)

// Unavailable is the provider used when no credential is configured.
type Unavailable struct{}

// GenerateDescription always fails with ErrUnavailable.
func (Unavailable) GenerateDescription(context.Context, DescriptionInput) (string, error) {
	return "", ErrUnavailable
}

// InterpretSearch always fails with ErrUnavailable.
func (Unavailable) InterpretSearch(context.Context, string) (string, error) {
	return "", ErrUnavailable
}

// Label interprets query and returns "" on any failure, which is what the
// search screen shows when interpretation is not possible.
func Label(ctx context.Context, si SearchInterpreter, query string) string {
	label, err := si.InterpretSearch(ctx, query)
	if err != nil {
		return ""
	}
	return label
}
