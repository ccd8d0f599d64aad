// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package selection exposes the current Klokku option of one account as a
// settable control.
package selection

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/MKhiriev/go-klokku-bridge/internal/logger"
	"github.com/MKhiriev/go-klokku-bridge/models"
)

var (
	// ErrSelectionNotFound is returned by Select for a name that is not in
	// the current option list. No request is sent in that case.
	ErrSelectionNotFound = errors.New("selection not found")
	// ErrSelectFailed wraps a rejected or failed write-through call.
	ErrSelectFailed = errors.New("failed to set current option")
)

// Source is the part of the refresh coordinator a Control depends on.
type Source interface {
	Snapshot() (models.Snapshot, bool)
	Subscribe(fn func(models.Snapshot)) func()
	SetCurrent(ctx context.Context, optionID int) error
	Refresh(ctx context.Context) (models.Snapshot, error)
	Generation() models.Generation
	AccountID() string
}

// Metrics receives the outcome of every Select call.
type Metrics interface {
	RecordSelection(generation, result string)
}

// Recorder persists confirmed write-through calls.
type Recorder interface {
	SaveSelection(ctx context.Context, record models.SelectionRecord) error
}

// Select outcomes reported to Metrics.
const (
	ResultOK            = "ok"
	ResultNotFound      = "not_found"
	ResultWriteFailed   = "write_failed"
	ResultRefreshFailed = "refresh_failed"
)

// State is what a Control exposes to presentation layers.
type State struct {
	CurrentOption string   `json:"current_option"`
	Options       []string `json:"options"`
}

func stateOf(s models.Snapshot) State {
	return State{CurrentOption: s.CurrentName(), Options: s.Names()}
}

// Option configures a Control.
type Option func(*Control)

// WithMetrics sets the selection metrics sink.
func WithMetrics(m Metrics) Option {
	return func(c *Control) { c.metrics = m }
}

// WithRecorder sets the selection history sink.
func WithRecorder(r Recorder) Option {
	return func(c *Control) { c.recorder = r }
}

// Control mirrors the latest published snapshot and turns a chosen name
// into a write-through call followed by one forced refresh.
//
// The exposed state only changes when the source publishes a snapshot:
// Select never updates it optimistically.
type Control struct {
	source   Source
	logger   *logger.Logger
	metrics  Metrics
	recorder Recorder

	unsubscribe func()

	mu        sync.RWMutex
	snapshot  models.Snapshot
	state     State
	observers map[uint64]func(State)
	nextID    uint64
}

// New creates a Control over src and subscribes it to src's snapshots.
// Close releases the subscription.
func New(src Source, log *logger.Logger, opts ...Option) *Control {
	c := &Control{
		source:    src,
		logger:    log,
		state:     State{Options: []string{}},
		observers: make(map[uint64]func(State)),
	}
	for _, opt := range opts {
		opt(c)
	}

	if s, ok := src.Snapshot(); ok {
		c.snapshot = s
		c.state = stateOf(s)
	}
	c.unsubscribe = src.Subscribe(c.update)

	return c
}

// UniqueID identifies the control across restarts.
func (c *Control) UniqueID() string {
	return fmt.Sprintf("klokku_%s_select_%s", c.source.Generation(), c.source.AccountID())
}

// CurrentOption returns the name of the current option, or an empty string
// when none is known.
func (c *Control) CurrentOption() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.CurrentOption
}

// Options returns the option names in snapshot order.
func (c *Control) Options() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.state.Options)
}

// State returns both projections at once.
func (c *Control) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return State{CurrentOption: c.state.CurrentOption, Options: slices.Clone(c.state.Options)}
}

// Select makes name the current option on the server and then refreshes.
//
// Names are matched exactly and the first match in snapshot order wins.
// A refresh error is returned as is.
func (c *Control) Select(ctx context.Context, name string) error {
	c.mu.RLock()
	option, ok := c.snapshot.Lookup(name)
	c.mu.RUnlock()

	generation := string(c.source.Generation())
	log := c.logger.With().Str("option", name).Logger()

	if !ok {
		c.record(generation, ResultNotFound)
		log.Warn().Msg("unknown option selected")
		return fmt.Errorf("%w: %q", ErrSelectionNotFound, name)
	}

	if err := c.source.SetCurrent(ctx, option.ID); err != nil {
		c.record(generation, ResultWriteFailed)
		log.Error().Err(err).Int("option_id", option.ID).Msg("write-through failed")
		return fmt.Errorf("%w: %w", ErrSelectFailed, err)
	}

	if c.recorder != nil {
		rec := models.SelectionRecord{
			AccountID:  c.source.AccountID(),
			OptionID:   option.ID,
			OptionName: option.Name,
		}
		if err := c.recorder.SaveSelection(ctx, rec); err != nil {
			log.Warn().Err(err).Msg("failed to record selection")
		}
	}

	if _, err := c.source.Refresh(ctx); err != nil {
		c.record(generation, ResultRefreshFailed)
		return err
	}

	c.record(generation, ResultOK)
	return nil
}

// Subscribe registers fn to receive the new state after every published
// snapshot. The returned function removes the subscription.
func (c *Control) Subscribe(fn func(State)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.observers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
	}
}

// Close detaches the control from its source.
func (c *Control) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

func (c *Control) update(s models.Snapshot) {
	state := stateOf(s)

	c.mu.Lock()
	c.snapshot = s
	c.state = state
	observers := make([]func(State), 0, len(c.observers))
	for _, fn := range c.observers {
		observers = append(observers, fn)
	}
	c.mu.Unlock()

	for _, fn := range observers {
		fn(State{CurrentOption: state.CurrentOption, Options: slices.Clone(state.Options)})
	}
}

func (c *Control) record(generation, result string) {
	if c.metrics != nil {
		c.metrics.RecordSelection(generation, result)
	}
}
