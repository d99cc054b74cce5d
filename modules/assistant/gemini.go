package assistant

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini implements Provider on the Gemini API.
type Gemini struct {
	models contentGenerator
	model  string
}

var _ Provider = (*Gemini)(nil)

// NewProvider returns a Gemini provider, or Unavailable when apiKey is empty.
func NewProvider(ctx context.Context, apiKey, model string) (Provider, error) {
	if apiKey == "" {
		return Unavailable{}, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return newGemini(client.Models, model), nil
}

func newGemini(models contentGenerator, model string) *Gemini {
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{models: models, model: model}
}

// GenerateDescription asks the model for a listing description.
func (g *Gemini) GenerateDescription(ctx context.Context, in DescriptionInput) (string, error) {
	if in.Highlights == "" {
		in.Highlights = DefaultHighlights
	}
	text, err := g.generate(ctx, descriptionPrompt(in))
	if err != nil {
		return "", fmt.Errorf("generate description: %w", err)
	}
	return text, nil
}

// InterpretSearch asks the model for a short filter label.
func (g *Gemini) InterpretSearch(ctx context.Context, query string) (string, error) {
	text, err := g.generate(ctx, searchPrompt(query))
	if err != nil {
		return "", fmt.Errorf("interpret search: %w", err)
	}
	return text, nil
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResult
	}
	return text, nil
}
