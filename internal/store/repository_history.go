package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-klokku-bridge/internal/logger"
	"github.com/MKhiriev/go-klokku-bridge/models"
)

type historyRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// NewHistoryRepository returns a HistoryRepository backed by db.
func NewHistoryRepository(db *DB, log *logger.Logger) HistoryRepository {
	return &historyRepository{
		DB:     db,
		logger: log,
		now:    time.Now,
	}
}

func (h *historyRepository) SaveSnapshot(ctx context.Context, accountID string, snapshot models.Snapshot) error {
	options, err := json.Marshal(snapshot.Options)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot options: %w", err)
	}

	var (
		currentID   sql.NullInt64
		currentName sql.NullString
	)
	if snapshot.Current != nil {
		currentID = sql.NullInt64{Int64: int64(snapshot.Current.ID), Valid: true}
		currentName = sql.NullString{String: snapshot.Current.Name, Valid: true}
	}

	_, err = h.DB.ExecContext(ctx, saveSnapshot,
		accountID,
		string(snapshot.Generation),
		currentID,
		currentName,
		string(options),
		h.now().UTC(),
	)
	if err != nil {
		h.logger.Err(err).
			Str("func", "historyRepository.SaveSnapshot").
			Str("account_id", accountID).
			Msg("failed to insert snapshot")
		return fmt.Errorf("%w: save snapshot: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (h *historyRepository) LastSnapshot(ctx context.Context, accountID string) (models.SnapshotRecord, error) {
	var (
		record      = models.SnapshotRecord{AccountID: accountID}
		generation  string
		currentID   sql.NullInt64
		currentName sql.NullString
		options     string
	)

	err := h.DB.QueryRowContext(ctx, getLastSnapshot, accountID).Scan(
		&generation,
		&currentID,
		&currentName,
		&options,
		&record.FetchedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SnapshotRecord{}, ErrNoSnapshot
	}
	if err != nil {
		h.logger.Err(err).
			Str("func", "historyRepository.LastSnapshot").
			Str("account_id", accountID).
			Msg("failed to read last snapshot")
		return models.SnapshotRecord{}, fmt.Errorf("%w: last snapshot: %w", ErrScanningRows, err)
	}

	record.Generation = models.Generation(generation)
	if err = json.Unmarshal([]byte(options), &record.Options); err != nil {
		return models.SnapshotRecord{}, fmt.Errorf("%w: decode snapshot options: %w", ErrScanningRows, err)
	}
	if record.Options == nil {
		record.Options = []models.Option{}
	}
	if currentID.Valid {
		record.Current = currentOption(record.Options, int(currentID.Int64), currentName.String)
	}
	record.FetchedAt = record.FetchedAt.UTC()

	return record, nil
}

// currentOption restores the current option from the stored option list so
// it keeps its group reference; only id and name are kept for an option
// that is no longer listed.
func currentOption(options []models.Option, id int, name string) *models.Option {
	for _, o := range options {
		if o.ID == id && o.Name == name {
			return &o
		}
	}
	return &models.Option{ID: id, Name: name}
}

func (h *historyRepository) SaveSelection(ctx context.Context, record models.SelectionRecord) error {
	if record.SelectedAt.IsZero() {
		record.SelectedAt = h.now()
	}

	_, err := h.DB.ExecContext(ctx, saveSelection,
		record.AccountID,
		record.OptionID,
		record.OptionName,
		record.SelectedAt.UTC(),
	)
	if err != nil {
		h.logger.Err(err).
			Str("func", "historyRepository.SaveSelection").
			Str("account_id", record.AccountID).
			Int("option_id", record.OptionID).
			Msg("failed to insert selection")
		return fmt.Errorf("%w: save selection: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (h *historyRepository) ListSelections(ctx context.Context, accountID string, limit int) ([]models.SelectionRecord, error) {
	query, args, err := buildListSelectionsQuery(accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := h.DB.QueryContext(ctx, query, args...)
	if err != nil {
		h.logger.Err(err).
			Str("func", "historyRepository.ListSelections").
			Str("account_id", accountID).
			Msg("failed to query selections")
		return nil, fmt.Errorf("%w: list selections: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.SelectionRecord, 0)
	for rows.Next() {
		var r models.SelectionRecord
		if err = rows.Scan(&r.ID, &r.AccountID, &r.OptionID, &r.OptionName, &r.SelectedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		records = append(records, r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}
