// Package composer implements the two-step "post a listing" form, including
// the AI-assisted description sub-workflow.
package composer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	nanoid "github.com/jaevor/go-nanoid"

	"github.com/example/rentlink/domain/property"
	"github.com/example/rentlink/modules/assistant"
)

const idLength = 12

// Composer holds at most one draft. The draft exists only while the post-ad
// screen is open: Discard drops it and a later Open starts a fresh one with a
// new id, so late generation results cannot land in the wrong draft.
type Composer struct {
	opts  Options
	draft *Draft
}

// New creates a composer.
func New(opts Options) (*Composer, error) {
	if opts.NewID == nil {
		gen, err := nanoid.Standard(idLength)
		if err != nil {
			return nil, fmt.Errorf("failed to create id generator: %w", err)
		}
		opts.NewID = gen
	}
	return &Composer{opts: opts}, nil
}

// Open starts a fresh draft, replacing any existing one.
func (c *Composer) Open() Draft {
	c.draft = newDraft(c.opts.NewID())
	return *c.draft
}

// Discard drops the draft without publishing it.
func (c *Composer) Discard() {
	c.draft = nil
}

// Draft returns the current draft.
func (c *Composer) Draft() (Draft, bool) {
	if c.draft == nil {
		return Draft{}, false
	}
	return *c.draft, true
}

// Set updates one form field with the raw text the owner typed.
func (c *Composer) Set(field Field, value string) error {
	if c.draft == nil {
		return ErrNoDraft
	}
	d := c.draft
	switch field {
	case FieldTitle:
		d.Title = value
	case FieldType:
		d.Type = value
	case FieldPrice:
		d.Price = value
	case FieldLocation:
		d.Location = value
	case FieldBedrooms:
		d.Bedrooms = value
	case FieldDescription:
		d.Description = value
	case FieldHighlights:
		d.Highlights = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Advance moves from the basics step to the details step. Location and a
// positive price are required.
func (c *Composer) Advance() error {
	if c.draft == nil {
		return ErrNoDraft
	}
	d := c.draft
	if d.Step != StepBasics {
		return nil
	}
	if blank(d.Location) || blank(d.Price) {
		return &ValidationError{Message: MsgStepOneIncomplete}
	}
	if _, err := parsePrice(d.Price); err != nil {
		return err
	}
	d.Step = StepDetails
	return nil
}

// Back returns to the basics step. It reports false when the draft is already
// on the first step, meaning the caller should leave the screen.
func (c *Composer) Back() bool {
	if c.draft == nil || c.draft.Step == StepBasics {
		return false
	}
	c.draft.Step = StepBasics
	return true
}

// Publish validates the draft and synthesizes the listing. On success the
// draft is discarded.
func (c *Composer) Publish(now time.Time) (property.Property, error) {
	if c.draft == nil {
		return property.Property{}, ErrNoDraft
	}
	d := c.draft
	if blank(d.Price) || blank(d.Location) || (c.opts.RequireTitle && blank(d.Title)) {
		return property.Property{}, &ValidationError{Message: MsgPublishIncomplete}
	}
	price, err := parsePrice(d.Price)
	if err != nil {
		return property.Property{}, err
	}
	bedrooms, err := parseBedrooms(d.Bedrooms)
	if err != nil {
		return property.Property{}, err
	}
	typ := property.Type(d.Type)
	if !typ.Valid() {
		return property.Property{}, &ValidationError{Field: string(FieldType), Message: MsgInvalidType}
	}

	title := strings.TrimSpace(d.Title)
	if title == "" {
		title = fmt.Sprintf("%d-Bed %s", bedrooms, typ)
	}

	p := property.Property{
		ID:          c.opts.NewID(),
		Title:       title,
		Price:       price,
		Period:      property.Monthly,
		Location:    strings.TrimSpace(d.Location),
		Type:        typ,
		Bedrooms:    bedrooms,
		Bathrooms:   DefaultBathrooms,
		Area:        DefaultArea,
		Description: d.Description,
		Amenities:   []string{DefaultAmenity},
		Images:      []string{PlaceholderImage + strconv.FormatInt(now.UnixMilli(), 10)},
		OwnerID:     c.opts.OwnerID,
		OwnerName:   c.opts.OwnerName,
		Verified:    true,
	}
	if err := p.Validate(); err != nil {
		return property.Property{}, fmt.Errorf("synthesized listing is invalid: %w", err)
	}
	c.draft = nil
	return p, nil
}

// Request identifies a pending description generation.
type Request struct {
	DraftID string
	Input   assistant.DescriptionInput
}

// BeginGenerate enters the generating state and returns what to send to the
// provider. Type and location must be filled in.
func (c *Composer) BeginGenerate() (Request, error) {
	if c.draft == nil {
		return Request{}, ErrNoDraft
	}
	d := c.draft
	if d.Generating {
		return Request{}, ErrGenerationInFlight
	}
	if blank(d.Type) || blank(d.Location) {
		return Request{}, &ValidationError{Message: MsgGenerateNeedsInfo}
	}

	bedrooms, err := strconv.Atoi(strings.TrimSpace(d.Bedrooms))
	if err != nil || bedrooms < 0 {
		bedrooms = 1
	}
	highlights := strings.TrimSpace(d.Highlights)
	if highlights == "" {
		highlights = assistant.DefaultHighlights
	}

	d.Generating = true
	return Request{
		DraftID: d.ID,
		Input: assistant.DescriptionInput{
			Type:       d.Type,
			Location:   strings.TrimSpace(d.Location),
			Bedrooms:   bedrooms,
			Highlights: highlights,
		},
	}, nil
}

// CompleteGenerate applies a generation outcome to the draft it was started
// for. The generating state is cleared on every outcome; the description is
// only replaced by a non-empty result.
func (c *Composer) CompleteGenerate(draftID, text string, genErr error) error {
	if c.draft == nil || c.draft.ID != draftID {
		return ErrStaleDraft
	}
	d := c.draft
	d.Generating = false
	if genErr != nil {
		return fmt.Errorf("%w: %w", ErrGenerationFailed, genErr)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%w: %w", ErrGenerationFailed, assistant.ErrEmptyResult)
	}
	d.Description = text
	return nil
}

func parsePrice(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ValidationError{Field: string(FieldPrice), Message: MsgInvalidPrice}
	}
	return v, nil
}

func parseBedrooms(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, &ValidationError{Field: string(FieldBedrooms), Message: MsgInvalidBedrooms}
	}
	return v, nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
