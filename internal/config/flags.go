// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"fmt"
	"strings"
	"time"
)

// entityList implements flag.Value for a comma separated entity list.
type entityList []string

func (l *entityList) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(*l, ",")
}

func (l *entityList) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}

// parseFlags parses the daemon flags from args.
//
// Flags:
//
//	-u backend base URL
//	-t bearer auth token
//	-request-timeout per request timeout (e.g., "30s")
//	-d SQLite DSN
//	-poll-interval idle poll interval
//	-max-in-flight concurrent request limit
//	-backoff-max transient failure pause cap
//	-e entities, comma separated
//	-refresh-interval whitelist refresh period
//	-page-size change feed page size
//	-max-remote-ids batch fetch size
//	-list-path change feed endpoint
//	-log-file log file path
//	-c/-config json file path with configs
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("syncd", flag.ContinueOnError)

	var (
		baseURL         string
		authToken       string
		requestTimeout  time.Duration
		databaseDSN     string
		pollInterval    time.Duration
		maxInFlight     int
		backoffMax      time.Duration
		entities        entityList
		refreshInterval time.Duration
		pageSize        int
		maxRemoteIDs    int
		listPath        string
		logFile         string
		jsonConfigPath  string
	)

	fs.StringVar(&baseURL, "u", "", "Backend base URL")
	fs.StringVar(&authToken, "t", "", "Bearer auth token")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&databaseDSN, "d", "", "SQLite DSN")
	fs.DurationVar(&pollInterval, "poll-interval", 0, "Idle poll interval")
	fs.IntVar(&maxInFlight, "max-in-flight", 0, "Concurrent request limit")
	fs.DurationVar(&backoffMax, "backoff-max", 0, "Maximum pause after transient failures")
	fs.Var(&entities, "e", "Synchronized entities, comma separated")
	fs.DurationVar(&refreshInterval, "refresh-interval", 0, "Whitelist refresh interval")
	fs.IntVar(&pageSize, "page-size", 0, "Change feed page size")
	fs.IntVar(&maxRemoteIDs, "max-remote-ids", 0, "Remote identifiers per batch request")
	fs.StringVar(&listPath, "list-path", "", "Change feed path")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		Transport: Transport{
			BaseURL:        baseURL,
			RequestTimeout: requestTimeout,
			AuthToken:      authToken,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Scheduler: Scheduler{
			PollInterval: pollInterval,
			MaxInFlight:  maxInFlight,
			BackoffMax:   backoffMax,
		},
		Sync: Sync{
			Entities:                       entities,
			RefreshInterval:                refreshInterval,
			PageSize:                       pageSize,
			MaxRemoteIdentifiersPerRequest: maxRemoteIDs,
			ListPath:                       listPath,
		},
		LogFile:      logFile,
		JSONFilePath: jsonConfigPath,
	}, nil
}
