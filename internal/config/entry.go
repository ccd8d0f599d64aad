package config

import (
	"fmt"
	"maps"
)

// Current schema of the account entry stored in the JSON config file.
const (
	EntryVersion      = 1
	EntryMinorVersion = 3
)

const (
	entryKeyVersion      = "version"
	entryKeyMinorVersion = "minor_version"
)

// entryMigration upgrades an entry from minor version from to from+1.
type entryMigration struct {
	from  int
	apply func(entry map[string]any)
}

var entryMigrations = []entryMigration{
	{
		from: 1,
		apply: func(entry map[string]any) {
			if _, ok := entry["access_token"]; !ok {
				entry["access_token"] = ""
			}
		},
	},
	{
		from: 2,
		apply: func(entry map[string]any) {
			if g, ok := entry["generation"].(string); !ok || g == "" {
				entry["generation"] = "budgets"
			}
		},
	},
}

// MigrateEntry upgrades a raw account entry to the current schema.
//
// An entry without version fields is treated as current. Entries with a
// major version or minor version above the current one are rejected with
// [ErrEntryFromFuture]. The input map is not modified.
func MigrateEntry(raw map[string]any) (map[string]any, error) {
	entry := maps.Clone(raw)
	if entry == nil {
		entry = make(map[string]any)
	}

	version, hasVersion, err := intField(entry, entryKeyVersion)
	if err != nil {
		return nil, err
	}
	minor, hasMinor, err := intField(entry, entryKeyMinorVersion)
	if err != nil {
		return nil, err
	}

	if !hasVersion {
		version = EntryVersion
	}
	if !hasMinor {
		minor = EntryMinorVersion
		if hasVersion {
			minor = 1
		}
	}

	if version > EntryVersion || (version == EntryVersion && minor > EntryMinorVersion) {
		return nil, fmt.Errorf("%w: %d.%d", ErrEntryFromFuture, version, minor)
	}
	if version < EntryVersion || minor < 1 {
		return nil, fmt.Errorf("%w: unsupported version %d.%d", ErrMalformedEntry, version, minor)
	}

	for _, m := range entryMigrations {
		if minor == m.from {
			m.apply(entry)
			minor++
		}
	}

	entry[entryKeyVersion] = EntryVersion
	entry[entryKeyMinorVersion] = minor

	return entry, nil
}

func intField(entry map[string]any, key string) (int, bool, error) {
	v, ok := entry[key]
	if !ok || v == nil {
		return 0, false, nil
	}

	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, false, fmt.Errorf("%w: %s is not an integer", ErrMalformedEntry, key)
		}
		return int(n), true, nil
	case int:
		return n, true, nil
	default:
		return 0, false, fmt.Errorf("%w: %s has type %T", ErrMalformedEntry, key, v)
	}
}
