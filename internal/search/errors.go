package search

import "errors"

var (
	// ErrInvalidConfig indicates search parameters that cannot produce a search.
	ErrInvalidConfig = errors.New("search: invalid config")

	// ErrExhausted indicates the attempt budget ran out before a loop was accepted.
	ErrExhausted = errors.New("search: attempts exhausted")

	// ErrNotRecorded indicates a replay start generation missing from the game history.
	ErrNotRecorded = errors.New("search: generation not recorded")
)
