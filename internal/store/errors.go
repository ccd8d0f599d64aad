package store

import "errors"

var (
	// ErrNoSnapshot is returned by LastSnapshot when nothing was recorded
	// for the account yet.
	ErrNoSnapshot = errors.New("no snapshot recorded")

	// ErrBuildingSQLQuery is returned when a query cannot be built.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a query or statement fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRows is returned when a result row cannot be decoded.
	ErrScanningRows = errors.New("failed to scan history rows")
)
