package server

import "context"

// Server is the lifecycle of a transport server.
type Server interface {
	// Start binds the listener and serves in the background.
	Start(ctx context.Context) error

	// Stop gracefully stops the server and waits for in-flight requests.
	Stop()

	// Addr returns the bound address, useful when listening on port 0.
	Addr() string
}
