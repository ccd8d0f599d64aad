package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-klokku-bridge/internal/app"
	"github.com/MKhiriev/go-klokku-bridge/internal/coordinator"
	"github.com/MKhiriev/go-klokku-bridge/internal/logger"
	"github.com/MKhiriev/go-klokku-bridge/internal/selection"
	"github.com/MKhiriev/go-klokku-bridge/internal/store"
	"github.com/MKhiriev/go-klokku-bridge/models"
)

// ─────────────────────────────────────────────
// Stubs
// ─────────────────────────────────────────────

type stubCoordinator struct {
	status     models.Status
	snapshot   *models.Snapshot
	refreshErr error
	refreshes  int
}

func (s *stubCoordinator) Status() models.Status { return s.status }

func (s *stubCoordinator) Snapshot() (models.Snapshot, bool) {
	if s.snapshot == nil {
		return models.Snapshot{}, false
	}
	return *s.snapshot, true
}

func (s *stubCoordinator) Refresh(context.Context) (models.Snapshot, error) {
	s.refreshes++
	if s.refreshErr != nil {
		return models.Snapshot{}, s.refreshErr
	}
	return *s.snapshot, nil
}

func (s *stubCoordinator) AccountID() string             { return "7" }
func (s *stubCoordinator) Generation() models.Generation { return models.GenerationWeeklyPlan }

type stubSelector struct {
	state    selection.State
	err      error
	selected []string
}

func (s *stubSelector) State() selection.State { return s.state }
func (s *stubSelector) UniqueID() string       { return "klokku_weekly_plan_select_7" }

func (s *stubSelector) Select(_ context.Context, name string) error {
	s.selected = append(s.selected, name)
	return s.err
}

type stubHistory struct {
	records    []models.SelectionRecord
	last       *models.SnapshotRecord
	err        error
	gotLimit   int
	gotAccount string
}

func (s *stubHistory) ListSelections(_ context.Context, accountID string, limit int) ([]models.SelectionRecord, error) {
	s.gotAccount = accountID
	s.gotLimit = limit
	return s.records, s.err
}

func (s *stubHistory) LastSnapshot(_ context.Context, accountID string) (models.SnapshotRecord, error) {
	s.gotAccount = accountID
	if s.err != nil {
		return models.SnapshotRecord{}, s.err
	}
	if s.last == nil {
		return models.SnapshotRecord{}, store.ErrNoSnapshot
	}
	return *s.last, nil
}

var testTime = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

var testSnapshot = models.Snapshot{
	Generation: models.GenerationWeeklyPlan,
	Current:    &models.Option{ID: 11, Name: "Work", GroupID: 11},
	Options:    []models.Option{{ID: 11, Name: "Work", GroupID: 11}, {ID: 12, Name: "Reading", GroupID: 12}},
}

type testEnv struct {
	coordinator *stubCoordinator
	selector    *stubSelector
	history     *stubHistory
	router      http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	snap := testSnapshot.Clone()
	env := &testEnv{
		coordinator: &stubCoordinator{
			status:   models.Status{Phase: models.PhaseReady, Auth: models.AuthAuthenticated, LastSuccess: testTime},
			snapshot: &snap,
		},
		selector: &stubSelector{state: selection.State{CurrentOption: "Work", Options: []string{"Work", "Reading"}}},
		history:  &stubHistory{},
	}

	h := NewHandler(Dependencies{
		Coordinator: env.coordinator,
		Selector:    env.selector,
		History:     env.history,
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("klokku_refresh_total 1\n"))
		}),
		BuildInfo: models.NewAppBuildInfo("1.2.0", "2026-03-01", "abc123"),
	}, logger.Nop())
	env.router = h.Init()

	return env
}

func (e *testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body.Error
}

// ─────────────────────────────────────────────
// Status / snapshot / refresh
// ─────────────────────────────────────────────

func TestGetStatus(t *testing.T) {
	env := newTestEnv(t)
	env.coordinator.status.Degraded = true

	rr := env.do(http.MethodGet, "/api/status", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "7", body["account_id"])
	assert.Equal(t, "weekly_plan", body["generation"])
	assert.Equal(t, "klokku_weekly_plan_select_7", body["select_id"])
	assert.Equal(t, "Ready", body["phase"])
	assert.Equal(t, "authenticated", body["auth"])
	assert.Equal(t, true, body["degraded"])
}

func TestGetSnapshot(t *testing.T) {
	t.Run("published", func(t *testing.T) {
		env := newTestEnv(t)

		rr := env.do(http.MethodGet, "/api/snapshot", "")

		require.Equal(t, http.StatusOK, rr.Code)
		var got models.Snapshot
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, testSnapshot, got)
	})

	t.Run("nothing yet", func(t *testing.T) {
		env := newTestEnv(t)
		env.coordinator.snapshot = nil

		rr := env.do(http.MethodGet, "/api/snapshot", "")

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Equal(t, ErrNoSnapshot.Error(), decodeError(t, rr))
	})
}

func TestPostRefresh(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "ok", wantStatus: http.StatusOK},
		{
			name:       "fetch failure",
			err:        &coordinator.FetchError{Reason: "failed to fetch weekly plan", Err: errors.New("timeout")},
			wantStatus: http.StatusBadGateway,
			wantBody:   "error communicating with API: failed to fetch weekly plan: timeout",
		},
		{
			name:       "auth failed",
			err:        coordinator.ErrAuthenticationFailed,
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   coordinator.ErrAuthenticationFailed.Error(),
		},
		{
			// текст внутренней ошибки наружу не отдаётся
			name:       "unknown",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   app.MsgInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.coordinator.refreshErr = tt.err

			rr := env.do(http.MethodPost, "/api/refresh", "")

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, 1, env.coordinator.refreshes)
			if tt.err != nil {
				assert.Equal(t, tt.wantBody, decodeError(t, rr))
			}
		})
	}
}

// ─────────────────────────────────────────────
// Selection
// ─────────────────────────────────────────────

func TestGetSelection(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(http.MethodGet, "/api/select", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"current_option":"Work","options":["Work","Reading"]}`, rr.Body.String())
}

func TestPostSelection(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		selectErr    error
		wantStatus   int
		wantSelected []string
	}{
		{
			name:         "ok",
			body:         `{"option":"Reading"}`,
			wantStatus:   http.StatusNoContent,
			wantSelected: []string{"Reading"},
		},
		{
			name:         "surrounding blanks trimmed",
			body:         `{"option":"  Reading "}`,
			wantStatus:   http.StatusNoContent,
			wantSelected: []string{"Reading"},
		},
		{
			name:         "unknown option",
			body:         `{"option":"Gaming"}`,
			selectErr:    selection.ErrSelectionNotFound,
			wantStatus:   http.StatusNotFound,
			wantSelected: []string{"Gaming"},
		},
		{
			name:         "write rejected",
			body:         `{"option":"Reading"}`,
			selectErr:    errors.Join(selection.ErrSelectFailed, coordinator.ErrAuthenticationFailed),
			wantStatus:   http.StatusBadGateway,
			wantSelected: []string{"Reading"},
		},
		{
			name:         "refresh after write failed",
			body:         `{"option":"Reading"}`,
			selectErr:    &coordinator.FetchError{Reason: "failed to fetch weekly plan"},
			wantStatus:   http.StatusBadGateway,
			wantSelected: []string{"Reading"},
		},
		{name: "empty option", body: `{"option":""}`, wantStatus: http.StatusBadRequest},
		{name: "broken json", body: `{"option":`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.selector.err = tt.selectErr

			rr := env.do(http.MethodPost, "/api/select", tt.body)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantSelected, env.selector.selected)
		})
	}
}

// ─────────────────────────────────────────────
// History
// ─────────────────────────────────────────────

func TestGetSelectionHistory(t *testing.T) {
	env := newTestEnv(t)
	env.history.records = []models.SelectionRecord{
		{ID: 2, AccountID: "7", OptionID: 12, OptionName: "Reading", SelectedAt: testTime},
	}

	rr := env.do(http.MethodGet, "/api/history/selections?limit=5", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 5, env.history.gotLimit)
	assert.Equal(t, "7", env.history.gotAccount)

	var got []models.SelectionRecord
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, env.history.records, got)
}

func TestGetSelectionHistory_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		storeErr   error
		noHistory  bool
		wantStatus int
	}{
		{name: "bad limit", target: "/api/history/selections?limit=abc", wantStatus: http.StatusBadRequest},
		{name: "zero limit", target: "/api/history/selections?limit=0", wantStatus: http.StatusBadRequest},
		{name: "store failure", target: "/api/history/selections", storeErr: store.ErrExecutingQuery, wantStatus: http.StatusInternalServerError},
		{name: "disabled", target: "/api/history/selections", noHistory: true, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.history.err = tt.storeErr
			if tt.noHistory {
				h := NewHandler(Dependencies{Coordinator: env.coordinator, Selector: env.selector}, logger.Nop())
				env.router = h.Init()
			}

			rr := env.do(http.MethodGet, tt.target, "")

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestGetLastSnapshot(t *testing.T) {
	env := newTestEnv(t)
	env.history.last = &models.SnapshotRecord{AccountID: "7", Snapshot: testSnapshot.Clone(), FetchedAt: testTime}

	rr := env.do(http.MethodGet, "/api/history/snapshots/last", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "7", env.history.gotAccount)

	var got models.SnapshotRecord
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, *env.history.last, got)
}

func TestGetLastSnapshot_Errors(t *testing.T) {
	tests := []struct {
		name       string
		storeErr   error
		noHistory  bool
		wantStatus int
		wantBody   string
	}{
		{name: "nothing recorded", wantStatus: http.StatusNotFound, wantBody: store.ErrNoSnapshot.Error()},
		{name: "store failure", storeErr: store.ErrScanningRows, wantStatus: http.StatusInternalServerError, wantBody: app.MsgFailedToReadHistory},
		{name: "disabled", noHistory: true, wantStatus: http.StatusNotFound, wantBody: ErrHistoryDisabled.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.history.err = tt.storeErr
			if tt.noHistory {
				h := NewHandler(Dependencies{Coordinator: env.coordinator, Selector: env.selector}, logger.Nop())
				env.router = h.Init()
			}

			rr := env.do(http.MethodGet, "/api/history/snapshots/last", "")

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantBody, decodeError(t, rr))
		})
	}
}

// ─────────────────────────────────────────────
// Version / metrics / routing
// ─────────────────────────────────────────────

func TestGetVersion(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(http.MethodGet, "/api/version", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"version":"1.2.0","date":"2026-03-01","commit":"abc123"}`, rr.Body.String())
}

func TestMetricsRoute(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "klokku_refresh_total")
}

func TestMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(http.MethodDelete, "/api/select", "")

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "GET, POST", rr.Header().Get("Allow"))
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(http.MethodGet, "/api/nope", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRecoverer(t *testing.T) {
	env := newTestEnv(t)
	env.coordinator.snapshot = nil // Refresh разыменует nil и запаникует

	rr := env.do(http.MethodPost, "/api/refresh", "")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(traceIDHeader))
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{selection.ErrSelectionNotFound, http.StatusNotFound},
		{errors.Join(selection.ErrSelectFailed, coordinator.ErrAuthenticationFailed), http.StatusBadGateway},
		{coordinator.ErrNotInitialized, http.StatusServiceUnavailable},
		{&coordinator.FetchError{Reason: "x"}, http.StatusBadGateway},
		{store.ErrScanningRows, http.StatusInternalServerError},
		{ErrInvalidLimit, http.StatusBadRequest},
		{errors.New("other"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFromError(tt.err), tt.err.Error())
	}
}

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "mapped error keeps its text",
			err:        selection.ErrSelectionNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   selection.ErrSelectionNotFound.Error(),
		},
		{
			name:       "internal error is hidden",
			err:        errors.New("database is locked"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()

			writeServiceError(rr, tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)
			var body struct {
				Error string `json:"error"`
			}
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, tt.wantBody, body.Error)
		})
	}
}
