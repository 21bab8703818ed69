// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-sync-engine/internal/adapter"
	"github.com/MKhiriev/go-sync-engine/internal/client"
	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/store"
	"github.com/MKhiriev/go-sync-engine/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(info)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("syncd").Fatal().Err(err).Msg("error getting configs")
	}

	log, closer, err := logger.NewFileLogger("syncd", cfg.LogFile)
	if err != nil {
		logger.NewLogger("syncd").Fatal().Err(err).Msg("error opening log file")
	}
	defer closer.Close()

	log.Debug().Any("config", cfg.Sync).Str("version", info.Version).Msg("received configs")

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	db, err := store.NewConnectSQLite(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening local store")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error migrating local store")
	}

	transport, err := adapter.NewHTTPTransport(cfg.Transport, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating transport")
	}

	var app client.Client
	app, err = client.NewApp(cfg, store.New(db, log), transport, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init sync daemon error")
	}

	if err = app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("sync daemon run error")
	}
	log.Info().Msg("sync daemon shutdown gracefully")
}
