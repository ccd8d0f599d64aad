package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors the layout of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		Version string `json:"version"`
	} `json:"app,omitempty"`

	// Klokku is decoded separately because it is migrated first.
	Klokku json.RawMessage `json:"klokku,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress string `json:"http_address"`
	} `json:"server,omitempty"`

	Workers struct {
		ScanInterval Duration `json:"scan_interval"`
	} `json:"workers,omitempty"`

	UI struct {
		Interactive bool `json:"interactive"`
	} `json:"ui,omitempty"`
}

// JSONEntry is the account entry at the current schema version.
type JSONEntry struct {
	Version        int      `json:"version"`
	MinorVersion   int      `json:"minor_version"`
	URL            string   `json:"url"`
	Username       string   `json:"username"`
	AccessToken    string   `json:"access_token"`
	ID             string   `json:"id"`
	Generation     string   `json:"generation"`
	RequestTimeout Duration `json:"request_timeout"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	entry, err := decodeEntry(jsonCfg.Klokku)
	if err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{Version: jsonCfg.App.Version},
		Klokku: Klokku{
			URL:            entry.URL,
			Username:       entry.Username,
			AccessToken:    entry.AccessToken,
			AccountID:      entry.ID,
			Generation:     entry.Generation,
			RequestTimeout: time.Duration(entry.RequestTimeout),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress: jsonCfg.Server.HTTPAddress,
		},
		Workers:      Workers{ScanInterval: time.Duration(jsonCfg.Workers.ScanInterval)},
		UI:           UI{Interactive: jsonCfg.UI.Interactive},
		JSONFilePath: "",
	}

	return cfg, nil
}

// decodeEntry migrates the raw account entry and decodes the result.
func decodeEntry(raw json.RawMessage) (JSONEntry, error) {
	var entry JSONEntry
	if len(raw) == 0 {
		return entry, nil
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return entry, err
	}

	migrated, err := MigrateEntry(fields)
	if err != nil {
		return entry, err
	}

	data, err := json.Marshal(migrated)
	if err != nil {
		return entry, err
	}
	if err := json.Unmarshal(data, &entry); err != nil {
		return entry, err
	}

	return entry, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
