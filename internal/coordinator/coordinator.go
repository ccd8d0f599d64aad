// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-klokku-bridge/internal/adapter"
	"github.com/MKhiriev/go-klokku-bridge/internal/config"
	"github.com/MKhiriev/go-klokku-bridge/internal/logger"
	"github.com/MKhiriev/go-klokku-bridge/models"
)

// Coordinator owns the snapshot of a single Klokku account.
type Coordinator struct {
	adapter    adapter.KlokkuAdapter
	source     optionSource
	credential models.Credential
	generation models.Generation

	metrics  Metrics
	recorder SnapshotRecorder
	now      func() time.Time
	baseLog  *logger.Logger

	// refreshMu serializes Initialize and Refresh.
	refreshMu sync.Mutex

	mu          sync.RWMutex
	initialized bool
	auth        models.AuthState
	accountID   string
	logger      *logger.Logger
	snapshot    *models.Snapshot
	status      models.Status
	listeners   map[uint64]func(models.Snapshot)
	nextID      uint64
}

// New creates a Coordinator for the account described by entry. The
// coordinator is idle until Initialize is called.
func New(a adapter.KlokkuAdapter, entry config.BridgeKlokku, log *logger.Logger, opts ...Option) (*Coordinator, error) {
	source, err := newOptionSource(entry.Generation, a)
	if err != nil {
		return nil, err
	}

	c := &Coordinator{
		adapter:    a,
		source:     source,
		credential: entry.Credential(),
		generation: entry.Generation,
		now:        time.Now,
		baseLog:    log,
		accountID:  entry.AccountID,
		status:     models.Status{Phase: models.PhasePending},
		listeners:  make(map[uint64]func(models.Snapshot)),
	}
	c.logger = log.ForAccount(entry.AccountID, string(entry.Generation))

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Initialize authenticates the account. The access token is used when
// configured, otherwise the username. Any failure moves the coordinator to
// the terminal [models.AuthFailed] state and returns an error wrapping
// [ErrAuthenticationFailed].
func (c *Coordinator) Initialize(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	c.mu.Lock()
	if c.initialized {
		c.mu.Unlock()
		return ErrAlreadyInitialized
	}
	c.initialized = true
	c.mu.Unlock()

	ok, err := c.adapter.Authenticate(ctx, c.credential)
	if err != nil || !ok {
		var authErr error
		if err != nil {
			authErr = fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
		} else {
			authErr = fmt.Errorf("%w: credential rejected", ErrAuthenticationFailed)
		}

		c.mu.Lock()
		c.auth = models.AuthFailed
		c.status.Phase = models.PhaseFailed
		c.status.Message = authErr.Error()
		c.mu.Unlock()

		c.log().Error().Err(authErr).Msg("klokku authentication failed")
		return authErr
	}

	c.mu.Lock()
	c.auth = models.AuthAuthenticated
	if c.accountID == "" {
		c.accountID = c.adapter.UserID()
		c.logger = c.baseLog.ForAccount(c.accountID, string(c.generation))
	}
	c.mu.Unlock()

	c.log().Info().Msg("klokku account authenticated")
	return nil
}

// Refresh runs one refresh cycle and publishes the resulting snapshot.
//
// Calls are serialized: a refresh that arrives while another one runs waits
// and then performs its own reads. On failure the previous snapshot stays
// published and the error is either ErrAuthenticationFailed,
// ErrNotInitialized or a *FetchError.
func (c *Coordinator) Refresh(ctx context.Context) (models.Snapshot, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	c.mu.Lock()
	initialized, auth := c.initialized, c.auth
	if initialized && auth == models.AuthAuthenticated {
		c.status.Phase = models.PhaseRefreshing
		c.status.LastAttempt = c.now()
	}
	c.mu.Unlock()

	switch {
	case auth == models.AuthFailed:
		return models.Snapshot{}, fmt.Errorf("%w: authentication failed during initialization, refresh refused", ErrAuthenticationFailed)
	case !initialized || auth != models.AuthAuthenticated:
		return models.Snapshot{}, ErrNotInitialized
	}

	start := c.now()
	snapshot, degraded, err := c.fetch(ctx)
	duration := c.now().Sub(start)

	if c.metrics != nil {
		c.metrics.RecordRefresh(string(c.generation), duration, err, degraded)
	}

	if err != nil {
		c.mu.Lock()
		c.status.Phase = models.PhaseFailed
		c.status.Message = err.Error()
		c.status.Failures++
		c.mu.Unlock()

		c.log().Error().Err(err).Dur("duration", duration).Msg("klokku refresh failed")
		return models.Snapshot{}, err
	}

	c.publish(ctx, snapshot, degraded)
	c.log().Debug().
		Str("current", snapshot.CurrentName()).
		Int("options", len(snapshot.Options)).
		Dur("duration", duration).
		Msg("klokku refresh done")

	return snapshot.Clone(), nil
}

// fetch reads the current event and the options concurrently. Both reads
// always run to completion: the group carries no context, so a panic in one
// read does not cancel the other.
func (c *Coordinator) fetch(ctx context.Context) (snapshot models.Snapshot, degraded bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &FetchError{Reason: "unexpected error", Err: fmt.Errorf("%w: %v", errPanic, r)}
		}
	}()

	var (
		event             models.CurrentEvent
		options           []models.Option
		eventErr, optsErr error
	)

	// Ошибки чтения разбираются ниже, через группу возвращаются только паники.
	var g errgroup.Group
	g.Go(func() error {
		return guard(func() {
			event, eventErr = c.adapter.GetCurrentEvent(ctx)
		})
	})
	g.Go(func() error {
		return guard(func() {
			options, optsErr = c.source.fetchOptions(ctx)
		})
	})
	if err := g.Wait(); err != nil {
		return models.Snapshot{}, false, &FetchError{Reason: "unexpected error", Err: err}
	}

	if optsErr != nil {
		if eventErr != nil {
			c.log().Warn().Err(eventErr).Msg("failed to fetch current event")
		}
		return models.Snapshot{}, false, &FetchError{
			Reason: "failed to fetch " + c.source.label(),
			Err:    errors.Join(optsErr, eventErr),
		}
	}

	var current *models.Option
	if eventErr != nil {
		c.log().Warn().Err(eventErr).Msg("failed to fetch current event")
		degraded = true
	} else {
		current = models.CurrentOption(event, c.generation)
	}

	if options == nil {
		options = []models.Option{}
	}

	return models.Snapshot{
		Generation: c.generation,
		Current:    current,
		Options:    options,
	}, degraded, nil
}

func guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errPanic, r)
		}
	}()
	fn()
	return nil
}

// publish replaces the snapshot and notifies subscribers and the recorder.
func (c *Coordinator) publish(ctx context.Context, snapshot models.Snapshot, degraded bool) {
	c.mu.Lock()
	stored := snapshot.Clone()
	c.snapshot = &stored
	c.status.Phase = models.PhaseReady
	c.status.Message = ""
	c.status.LastSuccess = c.now()
	c.status.Degraded = degraded
	c.status.Failures = 0
	listeners := make([]func(models.Snapshot), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	accountID := c.accountID
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot.Clone())
	}

	if c.recorder != nil {
		if err := c.recorder.SaveSnapshot(ctx, accountID, snapshot.Clone()); err != nil {
			c.log().Warn().Err(err).Msg("failed to record snapshot")
		}
	}
}

// Snapshot returns a copy of the latest published snapshot. The second
// result is false until the first successful refresh.
func (c *Coordinator) Snapshot() (models.Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.snapshot == nil {
		return models.Snapshot{}, false
	}
	return c.snapshot.Clone(), true
}

// Subscribe registers fn to receive every newly published snapshot. fn is
// called synchronously from Refresh and must not call Refresh itself. The
// returned function removes the subscription.
func (c *Coordinator) Subscribe(fn func(models.Snapshot)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// SetCurrent writes optionID as the current selection on the server. It
// does not touch the published snapshot.
func (c *Coordinator) SetCurrent(ctx context.Context, optionID int) error {
	if c.AuthState() != models.AuthAuthenticated {
		return ErrAuthenticationFailed
	}

	if err := c.source.setCurrent(ctx, optionID); err != nil {
		return fmt.Errorf("set current %s option %d: %w", c.source.label(), optionID, err)
	}

	return nil
}

// Status returns the state of the latest refresh attempts.
func (c *Coordinator) Status() models.Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	st := c.status
	st.Auth = c.auth
	return st
}

// AuthState returns the authentication state.
func (c *Coordinator) AuthState() models.AuthState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.auth
}

// AccountID returns the configured account id, or the server user id once
// authenticated when none was configured.
func (c *Coordinator) AccountID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accountID
}

// Generation returns the option generation served by the coordinator.
func (c *Coordinator) Generation() models.Generation {
	return c.generation
}

func (c *Coordinator) log() *logger.Logger {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.logger
}
