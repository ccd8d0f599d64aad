// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-klokku-bridge/internal/logger"
	"github.com/MKhiriev/go-klokku-bridge/internal/selection"
	"github.com/MKhiriev/go-klokku-bridge/models"
)

// Selector is the selection control the picker drives.
type Selector interface {
	State() selection.State
	Select(ctx context.Context, name string) error
	Subscribe(fn func(selection.State)) func()
	UniqueID() string
}

// Refresher forces an immediate refresh cycle.
type Refresher interface {
	Refresh(ctx context.Context) (models.Snapshot, error)
}

// Picker is a terminal picker over one selection control.
type Picker struct {
	selector  Selector
	refresher Refresher
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

// New creates a Picker.
func New(selector Selector, refresher Refresher, buildInfo models.AppBuildInfo, log *logger.Logger) *Picker {
	return &Picker{
		selector:  selector,
		refresher: refresher,
		buildInfo: buildInfo,
		logger:    log,
	}
}

// Run shows the picker until the user quits or ctx is done. It returns
// ErrUserQuit when the user leaves.
func (p *Picker) Run(ctx context.Context) error {
	model := newPickerModel(ctx, p.selector, p.refresher, p.buildInfo)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	unsubscribe := p.selector.Subscribe(func(s selection.State) {
		program.Send(stateMsg{state: s})
	})
	defer unsubscribe()

	finalModel, err := program.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		p.logger.Err(err).Msg("picker stopped")
		return err
	}

	if result, ok := finalModel.(pickerModel); ok && result.quit {
		return ErrUserQuit
	}
	return nil
}
