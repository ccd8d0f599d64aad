package http

import (
	"net/http"

	"github.com/MKhiriev/go-klokku-bridge/internal/logger"
	"github.com/MKhiriev/go-klokku-bridge/internal/utils"
	"github.com/MKhiriev/go-klokku-bridge/models"
)

type statusResponse struct {
	AccountID  string            `json:"account_id"`
	Generation models.Generation `json:"generation"`
	SelectID   string            `json:"select_id"`
	models.Status
}

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, statusResponse{
		AccountID:  h.coordinator.AccountID(),
		Generation: h.coordinator.Generation(),
		SelectID:   h.selector.UniqueID(),
		Status:     h.coordinator.Status(),
	}, http.StatusOK)
}

func (h *Handler) getSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.coordinator.Snapshot()
	if !ok {
		utils.WriteError(w, ErrNoSnapshot.Error(), statusFromError(ErrNoSnapshot))
		return
	}

	utils.WriteJSON(w, snapshot, http.StatusOK)
}

func (h *Handler) postRefresh(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	snapshot, err := h.coordinator.Refresh(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.postRefresh").Msg("forced refresh failed")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, snapshot, http.StatusOK)
}
