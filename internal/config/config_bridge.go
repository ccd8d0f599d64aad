package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-klokku-bridge/models"
)

// BridgeKlokku is the validated account entry.
type BridgeKlokku struct {
	URL            string
	Username       string
	AccessToken    string
	AccountID      string
	Generation     models.Generation
	RequestTimeout time.Duration
}

// Credential returns the credential used to authenticate the account.
func (k BridgeKlokku) Credential() models.Credential {
	return models.Credential{Username: k.Username, AccessToken: k.AccessToken}
}

// BridgeStorage groups storage backend settings.
type BridgeStorage struct {
	DB DB
}

// BridgeWorkers contains background worker settings.
type BridgeWorkers struct {
	// ScanInterval defines how often the coordinator refreshes.
	ScanInterval time.Duration
}

// BridgeConfig is the runtime configuration assembled from
// [StructuredConfig].
type BridgeConfig struct {
	App     App
	Klokku  BridgeKlokku
	Storage BridgeStorage
	Server  Server
	Workers BridgeWorkers
	UI      UI
}

// GetBridgeConfig builds and validates the runtime config view from the
// merged structured configuration.
func GetBridgeConfig() (*BridgeConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return NewBridgeConfig(cfg)
}

// NewBridgeConfig maps cfg to a [BridgeConfig] and validates it.
func NewBridgeConfig(cfg *StructuredConfig) (*BridgeConfig, error) {
	bridgeCfg := &BridgeConfig{
		App: cfg.App,
		Klokku: BridgeKlokku{
			URL:            strings.TrimSpace(cfg.Klokku.URL),
			Username:       strings.TrimSpace(cfg.Klokku.Username),
			AccessToken:    strings.TrimSpace(cfg.Klokku.AccessToken),
			AccountID:      cfg.Klokku.AccountID,
			Generation:     generationOf(cfg.Klokku.Generation),
			RequestTimeout: cfg.Klokku.RequestTimeout,
		},
		Storage: BridgeStorage{DB: cfg.Storage.DB},
		Server:  cfg.Server,
		Workers: BridgeWorkers{ScanInterval: cfg.Workers.ScanInterval},
		UI:      cfg.UI,
	}

	if err := bridgeCfg.validate(); err != nil {
		return nil, err
	}

	return bridgeCfg, nil
}
