package coordinator

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthenticationFailed is returned by Initialize when the credential
	// is rejected or cannot be checked, and by every later Refresh.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrFetchFailed matches every *FetchError.
	ErrFetchFailed = errors.New("error communicating with API")
	// ErrAlreadyInitialized is returned by a second Initialize.
	ErrAlreadyInitialized = errors.New("coordinator already initialized")
	// ErrNotInitialized is returned by Refresh before Initialize.
	ErrNotInitialized = errors.New("coordinator not initialized")
)

// FetchError is a failed refresh cycle. The previous snapshot stays
// published when it is returned.
type FetchError struct {
	// Reason names what failed, e.g. "failed to fetch weekly plan".
	Reason string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", ErrFetchFailed, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %v", ErrFetchFailed, e.Reason, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrFetchFailed) hold for every FetchError.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}

// errPanic marks a recovered panic inside a refresh cycle.
var errPanic = errors.New("panic during refresh")
