package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-klokku-bridge/internal/config"
	"github.com/MKhiriev/go-klokku-bridge/internal/logger"
	"github.com/MKhiriev/go-klokku-bridge/internal/utils"
	"github.com/MKhiriev/go-klokku-bridge/models"
)

const userIDHeader = "X-User-Id"

type httpKlokkuAdapter struct {
	client *utils.HTTPClient

	mu     sync.RWMutex
	token  string
	userID string

	now    func() time.Time
	logger *logger.Logger
}

// NewHTTPKlokkuAdapter constructs the REST implementation of
// [KlokkuAdapter]. The base URL is normalised from klokkuCfg.URL and every
// request is bounded by klokkuCfg.RequestTimeout.
//
// Returns an error if the URL is empty or cannot be parsed.
func NewHTTPKlokkuAdapter(klokkuCfg config.BridgeKlokku, appCfg config.App, logger *logger.Logger) (KlokkuAdapter, error) {
	baseURL, err := normalizeBaseURL(klokkuCfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid klokku url: %w", err)
	}

	userAgent := "klokku-bridge"
	if appCfg.Version != "" {
		userAgent += "/" + appCfg.Version
	}

	return &httpKlokkuAdapter{
		client: utils.NewHTTPClient(baseURL, klokkuCfg.RequestTimeout, userAgent),
		now:    time.Now,
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Authenticate implements [KlokkuAdapter].
//
// With an access token it calls GET /api/user/current using bearer auth. A
// JWT whose exp claim has passed is rejected without a request. Without a
// token it lists GET /api/user and looks the username up; the user id is
// then sent in the X-User-Id header.
func (h *httpKlokkuAdapter) Authenticate(ctx context.Context, credential models.Credential) (bool, error) {
	if token := strings.TrimSpace(credential.AccessToken); token != "" {
		return h.authenticateToken(ctx, token)
	}

	if username := strings.TrimSpace(credential.Username); username != "" {
		return h.authenticateUsername(ctx, username)
	}

	return false, nil
}

func (h *httpKlokkuAdapter) authenticateToken(ctx context.Context, token string) (bool, error) {
	info, err := utils.InspectToken(token)
	switch {
	case err == nil && info.Expired(h.now()):
		h.logger.Warn().Time("expired_at", info.ExpiresAt).Msg("access token is expired")
		return false, nil
	case err != nil && !errors.Is(err, utils.ErrNotJWT):
		h.logger.Debug().Err(err).Msg("access token claims are unreadable, asking the server")
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		Get("/api/user/current")
	if err != nil {
		return false, fmt.Errorf("current user request: %w", err)
	}
	if credentialRejected(resp) {
		return false, nil
	}
	if err = mapHTTPError(resp); err != nil {
		return false, err
	}

	var user models.User
	if err = json.Unmarshal(resp.Body(), &user); err != nil {
		return false, fmt.Errorf("decode current user response: %w", err)
	}

	h.mu.Lock()
	h.token = token
	h.userID = strconv.Itoa(user.ID)
	h.mu.Unlock()

	return true, nil
}

func (h *httpKlokkuAdapter) authenticateUsername(ctx context.Context, username string) (bool, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/user")
	if err != nil {
		return false, fmt.Errorf("list users request: %w", err)
	}
	if credentialRejected(resp) {
		return false, nil
	}
	if err = mapHTTPError(resp); err != nil {
		return false, err
	}

	var users []models.User
	if err = json.Unmarshal(resp.Body(), &users); err != nil {
		return false, fmt.Errorf("decode users response: %w", err)
	}

	for _, u := range users {
		if u.Username == username {
			h.mu.Lock()
			h.token = ""
			h.userID = strconv.Itoa(u.ID)
			h.mu.Unlock()
			return true, nil
		}
	}

	return false, nil
}

// UserID implements [KlokkuAdapter].
func (h *httpKlokkuAdapter) UserID() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.userID
}

// GetCurrentEvent implements [KlokkuAdapter]. It calls
// GET /api/event/current; 404 and an empty body both mean nothing is tracked.
func (h *httpKlokkuAdapter) GetCurrentEvent(ctx context.Context) (models.CurrentEvent, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.CurrentEvent{}, err
	}

	resp, err := req.Get("/api/event/current")
	if err != nil {
		return models.CurrentEvent{}, fmt.Errorf("current event request: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return models.CurrentEvent{}, nil
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CurrentEvent{}, err
	}

	var event models.CurrentEvent
	if body := resp.Body(); len(body) > 0 {
		if err = json.Unmarshal(body, &event); err != nil {
			return models.CurrentEvent{}, fmt.Errorf("decode current event response: %w", err)
		}
	}

	return event, nil
}

// GetCurrentWeekPlan implements [KlokkuAdapter]. It calls
// GET /api/weeklyplan/current.
func (h *httpKlokkuAdapter) GetCurrentWeekPlan(ctx context.Context) (models.WeeklyPlan, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.WeeklyPlan{}, err
	}

	resp, err := req.Get("/api/weeklyplan/current")
	if err != nil {
		return models.WeeklyPlan{}, fmt.Errorf("weekly plan request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.WeeklyPlan{}, err
	}

	var plan models.WeeklyPlan
	if err = json.Unmarshal(resp.Body(), &plan); err != nil {
		return models.WeeklyPlan{}, fmt.Errorf("decode weekly plan response: %w", err)
	}

	return plan, nil
}

// GetAllBudgets implements [KlokkuAdapter]. It calls GET /api/budget.
func (h *httpKlokkuAdapter) GetAllBudgets(ctx context.Context) ([]models.Budget, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := req.Get("/api/budget")
	if err != nil {
		return nil, fmt.Errorf("budgets request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var budgets []models.Budget
	if err = json.Unmarshal(resp.Body(), &budgets); err != nil {
		return nil, fmt.Errorf("decode budgets response: %w", err)
	}

	return budgets, nil
}

// SetCurrentEvent implements [KlokkuAdapter]. It POSTs
// {"budgetItemId": id} to /api/event.
func (h *httpKlokkuAdapter) SetCurrentEvent(ctx context.Context, budgetItemID int) error {
	return h.startEvent(ctx, map[string]int{"budgetItemId": budgetItemID})
}

// SetCurrentBudget implements [KlokkuAdapter]. It POSTs {"budgetId": id}
// to /api/event.
func (h *httpKlokkuAdapter) SetCurrentBudget(ctx context.Context, budgetID int) error {
	return h.startEvent(ctx, map[string]int{"budgetId": budgetID})
}

func (h *httpKlokkuAdapter) startEvent(ctx context.Context, body map[string]int) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post("/api/event")
	if err != nil {
		return fmt.Errorf("start event request: %w", err)
	}

	return mapHTTPError(resp)
}

// authedRequest attaches the established identity to a new request.
func (h *httpKlokkuAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	h.mu.RLock()
	token, userID := h.token, h.userID
	h.mu.RUnlock()

	req := h.client.R().SetContext(ctx)
	switch {
	case token != "":
		req.SetAuthToken(token)
	case userID != "":
		req.SetHeader(userIDHeader, userID)
	default:
		return nil, ErrNotAuthenticated
	}

	return req, nil
}
