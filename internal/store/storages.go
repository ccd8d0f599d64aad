package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-klokku-bridge/internal/config"
	"github.com/MKhiriev/go-klokku-bridge/internal/logger"
)

// Storages groups the repositories of the local history database.
type Storages struct {
	db *DB

	History HistoryRepository
}

// NewStorages opens the sqlite database named in cfg, applies the
// migrations and builds the repositories.
func NewStorages(ctx context.Context, cfg config.BridgeStorage, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("opening history storage...")

	db, err := NewConnectSQLite(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		db:      db,
		History: NewHistoryRepository(db, log),
	}, nil
}

// Close closes the database.
func (s *Storages) Close() error {
	return s.db.Close()
}
