package config

import "errors"

// Validation errors returned by [BridgeConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidKlokkuConfigs indicates an unusable account entry
	// (for example, a malformed URL or an unknown generation).
	ErrInvalidKlokkuConfigs = errors.New("invalid klokku configuration")
	// ErrMissingCredentials indicates that neither a username nor an access
	// token were configured.
	ErrMissingCredentials = errors.New("missing credentials: username or access token required")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero scan interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)

// Account entry errors returned by [MigrateEntry].
var (
	// ErrEntryFromFuture is returned for entries written by a newer release.
	ErrEntryFromFuture = errors.New("account entry was created by a newer version")
	// ErrMalformedEntry is returned when version fields cannot be read.
	ErrMalformedEntry = errors.New("malformed account entry")
)
