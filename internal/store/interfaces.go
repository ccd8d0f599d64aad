package store

import (
	"context"

	"github.com/MKhiriev/go-klokku-bridge/models"
)

// HistoryRepository records what the bridge observed and what it changed.
// It is write-mostly: nothing in the refresh path reads from it.
type HistoryRepository interface {
	// SaveSnapshot stores snapshot stamped with the current time.
	SaveSnapshot(ctx context.Context, accountID string, snapshot models.Snapshot) error
	// LastSnapshot returns the most recently stored snapshot of the account
	// or ErrNoSnapshot.
	LastSnapshot(ctx context.Context, accountID string) (models.SnapshotRecord, error)
	SaveSelection(ctx context.Context, record models.SelectionRecord) error
	// ListSelections returns up to limit records, newest first. A
	// non-positive limit means DefaultListLimit.
	ListSelections(ctx context.Context, accountID string, limit int) ([]models.SelectionRecord, error)
}
