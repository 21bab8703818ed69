// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validate checks that the final merged [StructuredConfig] can drive the daemon.
func (cfg *StructuredConfig) validate() error {
	if cfg.Transport.BaseURL == "" || cfg.Transport.RequestTimeout <= 0 {
		return ErrInvalidTransportConfigs
	}
	if u, err := url.Parse(cfg.Transport.BaseURL); err != nil || u.Host == "" {
		return fmt.Errorf("%w: malformed base url %q", ErrInvalidTransportConfigs, cfg.Transport.BaseURL)
	}

	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Scheduler.PollInterval <= 0 || cfg.Scheduler.MaxInFlight < 1 || cfg.Scheduler.BackoffMax <= 0 {
		return ErrInvalidSchedulerConfigs
	}

	if len(cfg.Sync.Entities) == 0 || cfg.Sync.PageSize < 1 ||
		cfg.Sync.MaxRemoteIdentifiersPerRequest < 1 || cfg.Sync.RefreshInterval <= 0 ||
		cfg.Sync.ListPath == "" {
		return ErrInvalidSyncConfigs
	}
	for _, entity := range cfg.Sync.Entities {
		if strings.TrimSpace(entity) == "" || strings.Contains(entity, "/") {
			return fmt.Errorf("%w: bad entity name %q", ErrInvalidSyncConfigs, entity)
		}
	}

	return nil
}
