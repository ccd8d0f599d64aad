// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-klokku-bridge/internal/coordinator"
	"github.com/MKhiriev/go-klokku-bridge/internal/selection"
)

// ErrUserQuit is returned by Run when the user leaves the picker.
var ErrUserQuit = errors.New("user quit")

// humanizeError turns coordinator and transport errors into a short line
// for the error overlay.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, selection.ErrSelectionNotFound):
		return "This option is no longer available. Press r to reload."
	case errors.Is(err, coordinator.ErrAuthenticationFailed):
		return "Klokku rejected the credential. Check the configuration and restart."
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Klokku is unreachable. Showing the last known state."
	}

	return err.Error()
}
