// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer message strings used by
// the control API handlers.
//
// They are written into response bodies when the underlying error must not
// reach the caller verbatim.
package app

const (
	// MsgInternalServerError replaces the text of any error mapped to 500.
	MsgInternalServerError = "internal server error"

	// MsgFailedToReadHistory is returned when the history store fails.
	MsgFailedToReadHistory = "failed to read history"
)
