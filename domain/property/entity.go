package property

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Type is the kind of rental space a listing offers.
type Type string

const (
	Apartment Type = "Apartment"
	House     Type = "House"
	Office    Type = "Office"
	Shop      Type = "Shop"
)

// AllTypes is the filter sentinel that matches every Type.
const AllTypes = "All"

// Types lists the listing kinds in display order.
var Types = []Type{Apartment, House, Office, Shop}

// Valid reports whether t is one of the known listing kinds.
func (t Type) Valid() bool {
	switch t {
	case Apartment, House, Office, Shop:
		return true
	}
	return false
}

// Period is the billing period the price refers to.
type Period string

const (
	Monthly Period = "month"
	Yearly  Period = "year"
)

// Valid reports whether p is a known billing period.
func (p Period) Valid() bool {
	return p == Monthly || p == Yearly
}

// Rating is a 0..5 score. The zero value is unrated, which is not the same as a score of 0.
type Rating struct {
	Score float64
	Rated bool
}

// Rate returns a rated score, rejecting values outside 0..5.
func Rate(score float64) (Rating, error) {
	if score < 0 || score > 5 {
		return Rating{}, fmt.Errorf("%w: %v", ErrInvalidRating, score)
	}
	return Rating{Score: score, Rated: true}, nil
}

// Display formats the rating for a listing card.
func (r Rating) Display() string {
	if !r.Rated {
		return "New"
	}
	return strconv.FormatFloat(r.Score, 'f', 1, 64)
}

// MarshalJSON encodes an unrated value as null.
func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Rated {
		return []byte("null"), nil
	}
	return json.Marshal(r.Score)
}

// UnmarshalJSON accepts null (unrated) or a number in 0..5.
func (r *Rating) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Rating{}
		return nil
	}
	var score float64
	if err := json.Unmarshal(data, &score); err != nil {
		return err
	}
	rated, err := Rate(score)
	if err != nil {
		return err
	}
	*r = rated
	return nil
}

// Property is a rental listing.
type Property struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Price        float64  `json:"price"`
	Period       Period   `json:"period"`
	Location     string   `json:"location"`
	Type         Type     `json:"type"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	Area         float64  `json:"area"`
	Description  string   `json:"description"`
	Amenities    []string `json:"amenities"`
	Images       []string `json:"images"`
	OwnerID      string   `json:"ownerId"`
	OwnerName    string   `json:"ownerName"`
	Rating       Rating   `json:"rating"`
	ReviewsCount int      `json:"reviewsCount"`
	Verified     bool     `json:"isVerified"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	Views        int      `json:"views,omitempty"`
}

// Validation errors for properties.
var (
	ErrMissingID     = errors.New("property id is required")
	ErrInvalidPrice  = errors.New("price must be positive")
	ErrInvalidType   = errors.New("unknown property type")
	ErrInvalidPeriod = errors.New("unknown billing period")
	ErrInvalidCount  = errors.New("room counts must not be negative")
	ErrInvalidArea   = errors.New("area must be positive")
	ErrInvalidRating = errors.New("rating must be between 0 and 5")
)

// Validate checks the record-level invariants of a property.
func (p *Property) Validate() error {
	switch {
	case p.ID == "":
		return ErrMissingID
	case p.Price <= 0:
		return ErrInvalidPrice
	case !p.Type.Valid():
		return fmt.Errorf("%w: %q", ErrInvalidType, p.Type)
	case !p.Period.Valid():
		return fmt.Errorf("%w: %q", ErrInvalidPeriod, p.Period)
	case p.Bedrooms < 0 || p.Bathrooms < 0 || p.ReviewsCount < 0:
		return ErrInvalidCount
	case p.Area <= 0:
		return ErrInvalidArea
	}
	return nil
}

// PrimaryImage returns the first image, or "" when the listing has none.
func (p *Property) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Clone returns a deep copy so callers cannot alias the catalog's slices.
func (p Property) Clone() Property {
	p.Amenities = append([]string(nil), p.Amenities...)
	p.Images = append([]string(nil), p.Images...)
	return p
}
