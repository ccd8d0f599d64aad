package coordinator

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-klokku-bridge/internal/config"
	"github.com/MKhiriev/go-klokku-bridge/internal/logger"
	"github.com/MKhiriev/go-klokku-bridge/models"
)

// Refresher is what a Poller drives.
type Refresher interface {
	Refresh(ctx context.Context) (models.Snapshot, error)
}

// Poller calls Refresh on a ticker. It does not refresh on Start: the
// first refresh belongs to setup.
type Poller struct {
	refresher Refresher
	logger    *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPoller creates an idle Poller for r.
func NewPoller(r Refresher, log *logger.Logger) *Poller {
	return &Poller{refresher: r, logger: log}
}

// Start stops a running loop, then refreshes every interval until ctx is
// cancelled or Stop is called. A non-positive interval falls back to
// [config.DefaultScanInterval]. A failed refresh is logged and retried on
// the next tick.
func (p *Poller) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = config.DefaultScanInterval
	}

	p.Stop()

	p.mu.Lock()
	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-t.C:
				if _, err := p.refresher.Refresh(loopCtx); err != nil && loopCtx.Err() == nil {
					p.logger.Warn().Err(err).Dur("interval", interval).Msg("scheduled refresh failed")
				}
			}
		}
	}()
}

// Stop cancels the loop and waits for it to exit. Safe to call when the
// poller is not running.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}
