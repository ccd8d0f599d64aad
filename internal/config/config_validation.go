// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"

	"github.com/MKhiriev/go-klokku-bridge/models"
)

// validate checks the merged [StructuredConfig]. Source-level checks are
// deferred to [BridgeConfig.validate] so partially filled configs can be
// merged freely.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *BridgeConfig) validate() error {
	if cfg.Klokku.AccessToken == "" && cfg.Klokku.Username == "" {
		return ErrMissingCredentials
	}

	u, err := url.Parse(cfg.Klokku.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: url %q", ErrInvalidKlokkuConfigs, cfg.Klokku.URL)
	}

	if !cfg.Klokku.Generation.Valid() {
		return fmt.Errorf("%w: generation %q", ErrInvalidKlokkuConfigs, cfg.Klokku.Generation)
	}

	if cfg.Klokku.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidKlokkuConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Workers.ScanInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

// generationOf converts the raw setting, keeping invalid input for validate
// to report.
func generationOf(raw string) models.Generation {
	g, err := models.ParseGeneration(raw)
	if err != nil {
		return models.Generation(raw)
	}
	return g
}
