package composer

import "errors"

// Messages shown to the owner when a step is refused.
const (
	MsgStepOneIncomplete = "Please fill in location and price"
	MsgPublishIncomplete = "Please fill in all required fields."
	MsgGenerateNeedsInfo = "Please enter Type and Location first."
	MsgInvalidPrice      = "Please enter a valid price."
	MsgInvalidBedrooms   = "Please enter a valid number of bedrooms."
	MsgInvalidType       = "Please choose a property type."
)

var (
	// ErrNoDraft is returned when no listing is being composed.
	ErrNoDraft = errors.New("no draft in progress")

	// ErrUnknownField is returned by Set for a field the draft does not have.
	ErrUnknownField = errors.New("unknown draft field")

	// ErrGenerationInFlight is returned when a description is already being generated.
	ErrGenerationInFlight = errors.New("description generation already in progress")

	// ErrStaleDraft is returned when a generation result targets a draft that is gone.
	ErrStaleDraft = errors.New("draft no longer active")

	// ErrGenerationFailed wraps provider failures and empty results.
	ErrGenerationFailed = errors.New("failed to generate description")
)

// ValidationError refuses a step. Message is meant for the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// AsValidation unwraps a *ValidationError.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
