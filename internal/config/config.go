// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// EnvPrefix is prepended to every environment variable lookup.
const EnvPrefix = "SYNC_"

// StructuredConfig is the top-level configuration container for the sync
// daemon. It is populated by merging defaults, environment variables,
// command-line flags and an optional JSON file.
type StructuredConfig struct {
	// Transport holds the remote backend endpoint and credentials.
	Transport Transport `envPrefix:"TRANSPORT_"`

	// Storage holds the local object store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Scheduler holds the request loop settings.
	Scheduler Scheduler `envPrefix:"SCHEDULER_"`

	// Sync describes which entities are synchronized and how.
	Sync Sync `envPrefix:"SYNC_"`

	// LogFile is the path the daemon appends its JSON log lines to.
	// Empty means stdout.
	// Env: SYNC_LOG_FILE
	LogFile string `env:"LOG_FILE"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Env: SYNC_CONFIG
	JSONFilePath string `env:"CONFIG"`
}

// Transport holds the settings of the outbound HTTP transport.
type Transport struct {
	// BaseURL is the backend root, e.g. "https://api.example.com".
	// Env: SYNC_TRANSPORT_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout bounds a single round trip.
	// Env: SYNC_TRANSPORT_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// AuthToken is sent as a bearer token when non-empty.
	// Env: SYNC_TRANSPORT_AUTH_TOKEN
	AuthToken string `env:"AUTH_TOKEN"`

	// UserAgent overrides the default User-Agent header.
	// Env: SYNC_TRANSPORT_USER_AGENT
	UserAgent string `env:"USER_AGENT"`
}

// Storage groups the local storage settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds the SQLite connection settings.
type DB struct {
	// DSN is the SQLite data source name, e.g. "file:sync.db?_foreign_keys=on".
	// Env: SYNC_STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Scheduler controls the request loop.
type Scheduler struct {
	// PollInterval is how often the loop polls the generators when idle.
	// Env: SYNC_SCHEDULER_POLL_INTERVAL
	PollInterval time.Duration `env:"POLL_INTERVAL"`

	// MaxInFlight caps concurrently outstanding requests.
	// Env: SYNC_SCHEDULER_MAX_IN_FLIGHT
	MaxInFlight int `env:"MAX_IN_FLIGHT"`

	// BackoffMax caps the pause after transient transport failures.
	// Env: SYNC_SCHEDULER_BACKOFF_MAX
	BackoffMax time.Duration `env:"BACKOFF_MAX"`
}

// Sync describes the synchronized entities.
type Sync struct {
	// Entities lists the entity names exposed under /api/{entity}.
	// Env: SYNC_SYNC_ENTITIES (comma separated)
	Entities []string `env:"ENTITIES" envSeparator:","`

	// RefreshInterval is the period of the whitelist refresh request.
	// Env: SYNC_SYNC_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`

	// PageSize is the change feed page size.
	// Env: SYNC_SYNC_PAGE_SIZE
	PageSize int `env:"PAGE_SIZE"`

	// MaxRemoteIdentifiersPerRequest caps a batch fetch.
	// Env: SYNC_SYNC_MAX_REMOTE_IDS
	MaxRemoteIdentifiersPerRequest int `env:"MAX_REMOTE_IDS"`

	// ListPath is the change feed endpoint.
	// Env: SYNC_SYNC_LIST_PATH
	ListPath string `env:"LIST_PATH"`
}

// Defaults returns the built-in configuration every other source is merged on top of.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		Transport: Transport{
			RequestTimeout: 30 * time.Second,
		},
		Scheduler: Scheduler{
			PollInterval: time.Second,
			MaxInFlight:  4,
			BackoffMax:   30 * time.Second,
		},
		Sync: Sync{
			RefreshInterval:                5 * time.Minute,
			PageSize:                       100,
			MaxRemoteIdentifiersPerRequest: 50,
			ListPath:                       "/api/notifications",
		},
	}
}

// GetStructuredConfig loads, merges, and validates the daemon configuration
// from all available sources in the following priority order (last source
// wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
