package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-klokku-bridge/internal/app"
	"github.com/MKhiriev/go-klokku-bridge/internal/coordinator"
	"github.com/MKhiriev/go-klokku-bridge/internal/selection"
	"github.com/MKhiriev/go-klokku-bridge/internal/store"
	"github.com/MKhiriev/go-klokku-bridge/internal/utils"
)

var errorStatusMap = map[error]int{
	ErrInvalidRequestBody: http.StatusBadRequest,
	ErrEmptyOption:        http.StatusBadRequest,
	ErrInvalidLimit:       http.StatusBadRequest,
	ErrHistoryDisabled:    http.StatusNotFound,
	ErrNoSnapshot:         http.StatusServiceUnavailable,

	selection.ErrSelectionNotFound: http.StatusNotFound,
	selection.ErrSelectFailed:      http.StatusBadGateway,

	coordinator.ErrFetchFailed:          http.StatusBadGateway,
	coordinator.ErrAuthenticationFailed: http.StatusServiceUnavailable,
	coordinator.ErrNotInitialized:       http.StatusServiceUnavailable,

	store.ErrNoSnapshot:       http.StatusNotFound,
	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

// statusFromError maps err to a response status. Selection errors are
// checked before coordinator errors so a failed write is never reported as
// an auth problem.
func statusFromError(err error) int {
	for _, target := range []error{selection.ErrSelectionNotFound, selection.ErrSelectFailed} {
		if errors.Is(err, target) {
			return errorStatusMap[target]
		}
	}
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeServiceError writes err with its mapped status. Errors mapped to 500
// are replaced by a generic message.
func writeServiceError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = app.MsgInternalServerError
	}
	utils.WriteError(w, message, status)
}
