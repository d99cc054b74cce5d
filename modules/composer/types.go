package composer

import (
	"github.com/example/rentlink/domain/property"
)

// Step is the position in the two-step listing form.
type Step int

const (
	StepBasics  Step = 1
	StepDetails Step = 2
)

// Field names a form input of the draft.
type Field string

const (
	FieldTitle       Field = "title"
	FieldType        Field = "type"
	FieldPrice       Field = "price"
	FieldLocation    Field = "location"
	FieldBedrooms    Field = "bedrooms"
	FieldDescription Field = "description"
	FieldHighlights  Field = "highlights"
)

// Draft is the in-progress listing. Numeric inputs stay as the raw text the
// owner typed until the step that needs them parses them.
type Draft struct {
	ID          string `json:"id"`
	Step        Step   `json:"step"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Price       string `json:"price"`
	Location    string `json:"location"`
	Bedrooms    string `json:"bedrooms"`
	Description string `json:"description"`
	Highlights  string `json:"highlights"`
	Generating  bool   `json:"generating"`
}

// Placeholder values given to every published listing.
const (
	DefaultBathrooms = 1
	DefaultArea      = 1000
	DefaultAmenity   = "WiFi"
	PlaceholderImage = "https://picsum.photos/800/600?random="
)

// Options configures publishing.
type Options struct {
	OwnerID   string
	OwnerName string

	// RequireTitle refuses to publish an untitled draft instead of
	// synthesizing "<bedrooms>-Bed <type>".
	RequireTitle bool

	// NewID returns listing and draft ids. Defaults to a nanoid generator.
	NewID func() string
}

func newDraft(id string) *Draft {
	return &Draft{ID: id, Step: StepBasics, Type: string(property.Apartment)}
}
