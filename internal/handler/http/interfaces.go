package http

import (
	"context"

	"github.com/MKhiriev/go-klokku-bridge/internal/selection"
	"github.com/MKhiriev/go-klokku-bridge/models"
)

// Coordinator is the refresh coordinator as seen by the API.
type Coordinator interface {
	Status() models.Status
	Snapshot() (models.Snapshot, bool)
	Refresh(ctx context.Context) (models.Snapshot, error)
	AccountID() string
	Generation() models.Generation
}

// Selector is the selection control as seen by the API.
type Selector interface {
	State() selection.State
	Select(ctx context.Context, name string) error
	UniqueID() string
}

// History reads the local history store.
type History interface {
	ListSelections(ctx context.Context, accountID string, limit int) ([]models.SelectionRecord, error)
	LastSnapshot(ctx context.Context, accountID string) (models.SnapshotRecord, error)
}
