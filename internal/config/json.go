// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	Transport struct {
		BaseURL        string   `json:"base_url"`
		RequestTimeout Duration `json:"request_timeout"`
		AuthToken      string   `json:"auth_token"`
		UserAgent      string   `json:"user_agent"`
	} `json:"transport,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Scheduler struct {
		PollInterval Duration `json:"poll_interval"`
		MaxInFlight  int      `json:"max_in_flight"`
		BackoffMax   Duration `json:"backoff_max"`
	} `json:"scheduler,omitempty"`

	Sync struct {
		Entities        []string `json:"entities"`
		RefreshInterval Duration `json:"refresh_interval"`
		PageSize        int      `json:"page_size"`
		MaxRemoteIDs    int      `json:"max_remote_ids"`
		ListPath        string   `json:"list_path"`
	} `json:"sync,omitempty"`

	LogFile string `json:"log_file"`
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

	cfg := &StructuredConfig{
		Transport: Transport{
			BaseURL:        jsonCfg.Transport.BaseURL,
			RequestTimeout: time.Duration(jsonCfg.Transport.RequestTimeout),
			AuthToken:      jsonCfg.Transport.AuthToken,
			UserAgent:      jsonCfg.Transport.UserAgent,
		},
		Storage: Storage{
			DB: DB{DSN: jsonCfg.Storage.DB.DSN},
		},
		Scheduler: Scheduler{
			PollInterval: time.Duration(jsonCfg.Scheduler.PollInterval),
			MaxInFlight:  jsonCfg.Scheduler.MaxInFlight,
			BackoffMax:   time.Duration(jsonCfg.Scheduler.BackoffMax),
		},
		Sync: Sync{
			Entities:                       jsonCfg.Sync.Entities,
			RefreshInterval:                time.Duration(jsonCfg.Sync.RefreshInterval),
			PageSize:                       jsonCfg.Sync.PageSize,
			MaxRemoteIdentifiersPerRequest: jsonCfg.Sync.MaxRemoteIDs,
			ListPath:                       jsonCfg.Sync.ListPath,
		},
		LogFile: jsonCfg.LogFile,
	}

	return cfg, nil
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
