// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

const (
	// DefaultScanInterval is how often the coordinator refreshes when no
	// interval is configured.
	DefaultScanInterval = 60 * time.Second
	// DefaultRequestTimeout bounds every outbound request to Klokku.
	DefaultRequestTimeout = 10 * time.Second
	// DefaultDSN is the sqlite file used for the local history.
	DefaultDSN = "klokku-bridge.db"
)

// StructuredConfig is the top-level configuration container for the
// bridge. It aggregates all sub-configurations and is populated by merging
// values from defaults, environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings.
	App App `envPrefix:"APP_"`

	// Klokku holds the account entry: where the Klokku server lives and how
	// to authenticate against it.
	Klokku Klokku `envPrefix:"KLOKKU_"`

	// Storage holds configuration for the local history database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the local control API settings.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// UI holds terminal UI settings.
	UI UI `envPrefix:"UI_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application.
	// Exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Klokku is the account entry of a single Klokku user.
type Klokku struct {
	// URL is the base URL of the Klokku server (e.g. "http://klokku.local:8181").
	// Env: KLOKKU_URL
	URL string `env:"URL"`

	// Username identifies the account on servers without token auth.
	// Env: KLOKKU_USERNAME
	Username string `env:"USERNAME"`

	// AccessToken is a personal access token. When set it is used instead
	// of Username.
	// Env: KLOKKU_ACCESS_TOKEN
	AccessToken string `env:"ACCESS_TOKEN"`

	// AccountID is a stable identifier of the account used in logs, unique
	// ids and history rows. Defaults to the id reported by the server.
	// Env: KLOKKU_ACCOUNT_ID
	AccountID string `env:"ACCOUNT_ID"`

	// Generation selects the option model: "budgets" or "weekly_plan".
	// Env: KLOKKU_GENERATION
	Generation string `env:"GENERATION"`

	// RequestTimeout bounds a single request to the Klokku server.
	// Env: KLOKKU_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for storage backends.
type Storage struct {
	// DB holds the history database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the history database.
type DB struct {
	// DSN is the sqlite file path of the history database.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds the settings of the local control API.
type Server struct {
	// HTTPAddress is the TCP address of the control API in "host:port"
	// format. The API is disabled when empty.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// ScanInterval is the refresh period of the coordinator.
	// Env: WORKERS_SCAN_INTERVAL
	ScanInterval time.Duration `env:"SCAN_INTERVAL"`
}

// UI holds terminal UI settings.
type UI struct {
	// Interactive starts the terminal picker.
	// Env: UI_INTERACTIVE
	Interactive bool `env:"INTERACTIVE"`
}

// defaults returns the lowest priority configuration source.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		Klokku: Klokku{
			Generation:     "weekly_plan",
			RequestTimeout: DefaultRequestTimeout,
		},
		Storage: Storage{DB: DB{DSN: DefaultDSN}},
		Workers: Workers{ScanInterval: DefaultScanInterval},
	}
}

// GetStructuredConfig loads and merges the application configuration from
// all available sources in the following priority order (last source wins
// for non-zero fields):
//  0. Defaults
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags().
		withJSON().
		build()
}
