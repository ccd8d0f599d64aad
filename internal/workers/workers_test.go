// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-klokku-bridge/internal/logger"
)

// recordingWorker записывает порядок вызовов Start/Stop в общий журнал.
type recordingWorker struct {
	name     string
	journal  *[]string
	startErr error
}

func (r *recordingWorker) Start(context.Context) error {
	*r.journal = append(*r.journal, "start "+r.name)
	return r.startErr
}

func (r *recordingWorker) Stop() {
	*r.journal = append(*r.journal, "stop "+r.name)
}

func TestWorkers_StartStopOrder(t *testing.T) {
	var journal []string
	ws := NewWorkers(logger.Nop(),
		&recordingWorker{name: "a", journal: &journal},
		nil,
		&recordingWorker{name: "b", journal: &journal},
	)

	require.NoError(t, ws.Start(context.Background()))
	ws.Stop()

	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, journal)
}

func TestWorkers_StartFailureStopsStarted(t *testing.T) {
	var journal []string
	boom := errors.New("address in use")
	ws := NewWorkers(logger.Nop(),
		&recordingWorker{name: "a", journal: &journal},
		&recordingWorker{name: "b", journal: &journal, startErr: boom},
		&recordingWorker{name: "c", journal: &journal},
	)

	err := ws.Start(context.Background())

	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"start a", "start b", "stop a"}, journal)
}

func TestWorkers_StopTwice(t *testing.T) {
	var journal []string
	ws := NewWorkers(logger.Nop(), &recordingWorker{name: "a", journal: &journal})

	require.NoError(t, ws.Start(context.Background()))
	ws.Stop()
	ws.Stop()

	assert.Equal(t, []string{"start a", "stop a"}, journal)
}

func TestWorkers_Empty(t *testing.T) {
	ws := NewWorkers(logger.Nop())

	assert.NoError(t, ws.Start(context.Background()))
	assert.NotPanics(t, ws.Stop)
}

type spyPoller struct {
	interval time.Duration
	started  int
	stopped  int
}

func (s *spyPoller) Start(_ context.Context, interval time.Duration) {
	s.interval = interval
	s.started++
}

func (s *spyPoller) Stop() { s.stopped++ }

func TestPollingWorker(t *testing.T) {
	p := &spyPoller{}
	w := NewPollingWorker(p, 30*time.Second, logger.Nop())

	require.NoError(t, w.Start(context.Background()))
	w.Stop()

	assert.Equal(t, 30*time.Second, p.interval)
	assert.Equal(t, 1, p.started)
	assert.Equal(t, 1, p.stopped)
}
