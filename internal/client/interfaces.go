// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable bridge
// applications.
type Client interface {
	// Run starts the application and blocks until ctx is done or the user
	// leaves the picker.
	Run(ctx context.Context) error
}

// Picker is an interactive front end that blocks until the user leaves.
type Picker interface {
	Run(ctx context.Context) error
}
