package http

import "errors"

var (
	// ErrInvalidRequestBody is returned when a request body is not the
	// expected JSON document.
	ErrInvalidRequestBody = errors.New("invalid request body")

	// ErrEmptyOption is returned by POST /api/select without an option name.
	ErrEmptyOption = errors.New("option name is empty")

	// ErrInvalidLimit is returned for a limit query parameter that is not a
	// positive integer.
	ErrInvalidLimit = errors.New("limit must be a positive integer")

	// ErrHistoryDisabled is returned by the history endpoints when no
	// history store is configured.
	ErrHistoryDisabled = errors.New("history is disabled")

	// ErrNoSnapshot is returned by GET /api/snapshot before the first
	// successful refresh.
	ErrNoSnapshot = errors.New("no snapshot published yet")
)
