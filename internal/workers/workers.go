package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-klokku-bridge/internal/logger"
)

// Workers is an ordered group of workers.
type Workers struct {
	workers []Worker
	started []Worker
	logger  *logger.Logger
}

// NewWorkers groups ws. Nil workers are skipped so optional parts can be
// passed unconditionally.
func NewWorkers(log *logger.Logger, ws ...Worker) *Workers {
	w := &Workers{logger: log}
	for _, worker := range ws {
		if worker != nil {
			w.workers = append(w.workers, worker)
		}
	}
	return w
}

// Start starts every worker in order. When one fails the workers already
// started are stopped and the error is returned.
func (w *Workers) Start(ctx context.Context) error {
	for i, worker := range w.workers {
		if err := worker.Start(ctx); err != nil {
			w.Stop()
			return fmt.Errorf("start worker %d: %w", i, err)
		}
		w.started = append(w.started, worker)
	}
	return nil
}

// Stop stops the started workers in reverse order.
func (w *Workers) Stop() {
	for i := len(w.started) - 1; i >= 0; i-- {
		w.started[i].Stop()
	}
	w.started = nil
}

// Poller is what the polling worker drives.
type Poller interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
}

type pollingWorker struct {
	poller   Poller
	interval time.Duration
	logger   *logger.Logger
}

// NewPollingWorker runs p every interval.
func NewPollingWorker(p Poller, interval time.Duration, log *logger.Logger) Worker {
	return &pollingWorker{poller: p, interval: interval, logger: log}
}

func (p *pollingWorker) Start(ctx context.Context) error {
	p.logger.Info().Dur("interval", p.interval).Msg("starting refresh poller")
	p.poller.Start(ctx, p.interval)
	return nil
}

func (p *pollingWorker) Stop() {
	p.poller.Stop()
	p.logger.Info().Msg("refresh poller stopped")
}
