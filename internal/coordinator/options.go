package coordinator

import (
	"context"
	"time"

	"github.com/MKhiriev/go-klokku-bridge/models"
)

// Metrics receives the outcome of every refresh cycle.
type Metrics interface {
	RecordRefresh(generation string, duration time.Duration, err error, degraded bool)
}

// SnapshotRecorder persists published snapshots. It only observes: the
// coordinator never reads snapshots back.
type SnapshotRecorder interface {
	SaveSnapshot(ctx context.Context, accountID string, snapshot models.Snapshot) error
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithMetrics sets the refresh metrics sink.
func WithMetrics(m Metrics) Option {
	return func(c *Coordinator) {
		c.metrics = m
	}
}

// WithRecorder sets the snapshot history sink.
func WithRecorder(r SnapshotRecorder) Option {
	return func(c *Coordinator) {
		c.recorder = r
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		c.now = now
	}
}
