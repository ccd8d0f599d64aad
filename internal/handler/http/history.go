package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-klokku-bridge/internal/app"
	"github.com/MKhiriev/go-klokku-bridge/internal/logger"
	"github.com/MKhiriev/go-klokku-bridge/internal/store"
	"github.com/MKhiriev/go-klokku-bridge/internal/utils"
)

func (h *Handler) getSelectionHistory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if h.history == nil {
		utils.WriteError(w, ErrHistoryDisabled.Error(), statusFromError(ErrHistoryDisabled))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			utils.WriteError(w, ErrInvalidLimit.Error(), statusFromError(ErrInvalidLimit))
			return
		}
		limit = n
	}

	records, err := h.history.ListSelections(r.Context(), h.coordinator.AccountID(), limit)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getSelectionHistory").Msg("error listing selections")
		utils.WriteError(w, app.MsgFailedToReadHistory, statusFromError(err))
		return
	}

	utils.WriteJSON(w, records, http.StatusOK)
}

// getLastSnapshot returns the snapshot most recently stored for the account,
// which survives restarts unlike GET /api/snapshot.
func (h *Handler) getLastSnapshot(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if h.history == nil {
		utils.WriteError(w, ErrHistoryDisabled.Error(), statusFromError(ErrHistoryDisabled))
		return
	}

	record, err := h.history.LastSnapshot(r.Context(), h.coordinator.AccountID())
	if errors.Is(err, store.ErrNoSnapshot) {
		utils.WriteError(w, err.Error(), statusFromError(err))
		return
	}
	if err != nil {
		log.Err(err).Str("func", "*Handler.getLastSnapshot").Msg("error reading last snapshot")
		utils.WriteError(w, app.MsgFailedToReadHistory, statusFromError(err))
		return
	}

	utils.WriteJSON(w, record, http.StatusOK)
}
