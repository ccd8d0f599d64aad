package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-klokku-bridge/internal/logger"
	"github.com/MKhiriev/go-klokku-bridge/internal/utils"
)

type selectRequest struct {
	Option string `json:"option"`
}

func (h *Handler) getSelection(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.selector.State(), http.StatusOK)
}

// postSelection answers 204 once the write went through and the follow-up
// refresh published the new state.
func (h *Handler) postSelection(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.postSelection").Msg("error decoding request body")
		utils.WriteError(w, fmt.Errorf("%w: %w", ErrInvalidRequestBody, err).Error(), http.StatusBadRequest)
		return
	}

	// names are matched exactly; only surrounding blanks are ignored
	name := strings.TrimSpace(req.Option)
	if name == "" {
		utils.WriteError(w, ErrEmptyOption.Error(), statusFromError(ErrEmptyOption))
		return
	}

	if err := h.selector.Select(r.Context(), name); err != nil {
		log.Err(err).Str("func", "*Handler.postSelection").Str("option", name).Msg("select failed")
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
