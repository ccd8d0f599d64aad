package models

import "time"

// AuthState is the authentication state of a coordinator.
type AuthState int

const (
	AuthUnauthenticated AuthState = iota
	AuthAuthenticated
	// AuthFailed is terminal for the lifetime of the coordinator.
	AuthFailed
)

func (s AuthState) String() string {
	switch s {
	case AuthAuthenticated:
		return "authenticated"
	case AuthFailed:
		return "failed"
	default:
		return "unauthenticated"
	}
}

// MarshalText renders the state by name in JSON responses.
func (s AuthState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Phase is the lifecycle phase of the refresh loop.
type Phase string

const (
	PhasePending    Phase = "Pending"
	PhaseRefreshing Phase = "Refreshing"
	PhaseReady      Phase = "Ready"
	PhaseFailed     Phase = "Failed"
)

// Status describes the outcome of the latest refresh attempts.
type Status struct {
	Phase       Phase     `json:"phase"`
	Auth        AuthState `json:"auth"`
	Message     string    `json:"message,omitempty"`
	LastAttempt time.Time `json:"last_attempt,omitzero"`
	LastSuccess time.Time `json:"last_success,omitzero"`
	// Degraded is set when the latest published snapshot was built without
	// the current event.
	Degraded bool `json:"degraded"`
	// Failures counts consecutive failed refresh cycles.
	Failures int `json:"failures"`
}

// Credential is what the coordinator authenticates with. When AccessToken is
// set it takes precedence over Username.
type Credential struct {
	Username    string
	AccessToken string
}

// SnapshotRecord is a persisted snapshot with the time it was stored.
type SnapshotRecord struct {
	AccountID string `json:"account_id"`
	Snapshot
	FetchedAt time.Time `json:"fetched_at"`
}

// SelectionRecord is a persisted write-through of a user selection.
type SelectionRecord struct {
	ID         int64     `json:"id"`
	AccountID  string    `json:"account_id"`
	OptionID   int       `json:"option_id"`
	OptionName string    `json:"option_name"`
	SelectedAt time.Time `json:"selected_at"`
}
