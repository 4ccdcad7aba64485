package life

import "errors"

var (
	// ErrUnknownDetector indicates a history detector name that is not registered.
	ErrUnknownDetector = errors.New("life: unknown cycle detector")

	// ErrMalformedPattern indicates a text pattern with ragged rows or unknown cell characters.
	ErrMalformedPattern = errors.New("life: malformed pattern")
)
