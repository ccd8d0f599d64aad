package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/MKhiriev/go-klokku-bridge/internal/adapter"
	"github.com/MKhiriev/go-klokku-bridge/internal/config"
	"github.com/MKhiriev/go-klokku-bridge/internal/coordinator"
	handler "github.com/MKhiriev/go-klokku-bridge/internal/handler/http"
	"github.com/MKhiriev/go-klokku-bridge/internal/logger"
	"github.com/MKhiriev/go-klokku-bridge/internal/metrics"
	"github.com/MKhiriev/go-klokku-bridge/internal/selection"
	"github.com/MKhiriev/go-klokku-bridge/internal/server"
	"github.com/MKhiriev/go-klokku-bridge/internal/store"
	"github.com/MKhiriev/go-klokku-bridge/internal/tui"
	"github.com/MKhiriev/go-klokku-bridge/internal/workers"
	"github.com/MKhiriev/go-klokku-bridge/models"
)

const defaultFirstRefreshWindow = 2 * time.Minute

// PickerFactory builds the interactive front end over a ready control.
type PickerFactory func(control *selection.Control, refresher tui.Refresher) Picker

var _ Client = (*App)(nil)

type App struct {
	cfg         *config.BridgeConfig
	coordinator *coordinator.Coordinator
	history     store.HistoryRepository
	metrics     *metrics.Metrics
	buildInfo   models.AppBuildInfo
	logger      *logger.Logger

	newPicker          PickerFactory
	newBackOff         func() backoff.BackOff
	firstRefreshWindow time.Duration
}

// NewApp wires the coordinator for cfg's account. history and m may be nil.
func NewApp(
	cfg *config.BridgeConfig,
	klokku adapter.KlokkuAdapter,
	history store.HistoryRepository,
	m *metrics.Metrics,
	buildInfo models.AppBuildInfo,
	log *logger.Logger,
) (*App, error) {
	opts := []coordinator.Option{coordinator.WithMetrics(m)}
	if history != nil {
		opts = append(opts, coordinator.WithRecorder(history))
	}

	coord, err := coordinator.New(klokku, cfg.Klokku, log, opts...)
	if err != nil {
		return nil, fmt.Errorf("create coordinator: %w", err)
	}

	a := &App{
		cfg:         cfg,
		coordinator: coord,
		history:     history,
		metrics:     m,
		buildInfo:   buildInfo,
		logger:      log,
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
		firstRefreshWindow: defaultFirstRefreshWindow,
	}
	a.newPicker = func(control *selection.Control, refresher tui.Refresher) Picker {
		return tui.New(control, refresher, buildInfo, log)
	}

	return a, nil
}

// Run authenticates, performs the first refresh and serves the control
// until ctx is done or the user quits the picker.
func (a *App) Run(ctx context.Context) error {
	if err := a.coordinator.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	log := a.logger.ForAccount(a.coordinator.AccountID(), string(a.coordinator.Generation()))

	if err := a.firstRefresh(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("first refresh: %w", ctxErr)
		}
		if !errors.Is(err, coordinator.ErrFetchFailed) {
			return fmt.Errorf("first refresh: %w", err)
		}
		log.Warn().Err(err).Msg("first refresh did not succeed, the poller will keep trying")
	}

	selOpts := []selection.Option{selection.WithMetrics(a.metrics)}
	if a.history != nil {
		selOpts = append(selOpts, selection.WithRecorder(a.history))
	}
	control := selection.New(a.coordinator, log, selOpts...)
	defer control.Close()

	ws, err := a.buildWorkers(control, log)
	if err != nil {
		return err
	}
	if err = ws.Start(ctx); err != nil {
		return fmt.Errorf("start workers: %w", err)
	}
	defer ws.Stop()

	log.Info().Str("select_id", control.UniqueID()).Msg("bridge is running")

	if !a.cfg.UI.Interactive {
		<-ctx.Done()
		return nil
	}

	err = a.newPicker(control, a.coordinator).Run(ctx)
	if errors.Is(err, tui.ErrUserQuit) {
		return nil
	}
	return err
}

func (a *App) firstRefresh(ctx context.Context) error {
	operation := func() (models.Snapshot, error) {
		snapshot, err := a.coordinator.Refresh(ctx)
		if err != nil && !errors.Is(err, coordinator.ErrFetchFailed) {
			return snapshot, backoff.Permanent(err)
		}
		return snapshot, err
	}

	notify := func(err error, next time.Duration) {
		a.logger.Warn().Err(err).Dur("retry_in", next).Msg("first refresh failed")
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(a.newBackOff()),
		backoff.WithMaxElapsedTime(a.firstRefreshWindow),
		backoff.WithNotify(notify),
	)
	return err
}

func (a *App) buildWorkers(control *selection.Control, log *logger.Logger) (*workers.Workers, error) {
	poller := workers.NewPollingWorker(coordinator.NewPoller(a.coordinator, log), a.cfg.Workers.ScanInterval, log)

	if a.cfg.Server.HTTPAddress == "" {
		return workers.NewWorkers(log, poller), nil
	}

	deps := handler.Dependencies{
		Coordinator: a.coordinator,
		Selector:    control,
		BuildInfo:   a.buildInfo,
		Metrics:     a.metrics.Handler(),
	}
	if a.history != nil {
		deps.History = a.history
	}

	srv, err := server.NewServer(handler.NewHandler(deps, log).Init(), a.cfg.Server, log)
	if err != nil {
		return nil, fmt.Errorf("create http server: %w", err)
	}

	return workers.NewWorkers(log, poller, srv), nil
}
