package tui

import "github.com/MKhiriev/go-klokku-bridge/internal/selection"

// stateMsg carries a state published by the selection control.
type stateMsg struct {
	state selection.State
}

type selectDoneMsg struct {
	name string
	err  error
}

type refreshDoneMsg struct {
	err error
}

type copiedMsg struct {
	text string
}

type copyFailedMsg struct {
	err error
}

type clearStatusMsg struct{}
