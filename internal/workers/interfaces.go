// Package workers runs the background parts of the bridge as one unit.
//
// Workers are started in order and stopped in reverse order, so a worker
// may rely on every worker started before it.
package workers

import "context"

// Worker is a background component with an explicit lifecycle.
//
// Start must not block: long-running work belongs in a goroutine that
// ends when ctx is cancelled or Stop is called.
type Worker interface {
	Start(ctx context.Context) error
	Stop()
}
