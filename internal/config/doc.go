// Package config provides configuration loading, merging, and validation
// facilities for the bridge.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  0. Built-in defaults
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The JSON file carries a versioned account entry which is migrated to the
// current schema while it is loaded, see [MigrateEntry].
//
// The main entry points are [GetStructuredConfig] for the raw merged
// configuration and [GetBridgeConfig] for the validated runtime view.
package config
