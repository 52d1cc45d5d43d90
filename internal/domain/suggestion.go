package domain

import "errors"

var (
	// ErrNoSuggestion indicates that no suggestion passed the local gates.
	ErrNoSuggestion = errors.New("no category suggestion")
	// ErrSuggestionSuperseded indicates that a newer request replaced this one.
	ErrSuggestionSuperseded = errors.New("suggestion request superseded")
	// ErrDescriptionTooShort indicates the description is below the minimum suggestion length.
	ErrDescriptionTooShort = errors.New("description too short for suggestion")
)

// Suggestion is an advisory category proposal from the classification
// service. It is never applied automatically.
type Suggestion struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}
