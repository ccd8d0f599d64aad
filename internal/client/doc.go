// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the bridge process lifecycle.
//
// It authenticates the configured account, waits for the first successful
// refresh, exposes the selection control over HTTP and the terminal
// picker, and keeps the snapshot fresh with a background poller until the
// context is cancelled.
package client
