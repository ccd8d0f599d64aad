package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-klokku-bridge/internal/adapter"
	"github.com/MKhiriev/go-klokku-bridge/internal/client"
	"github.com/MKhiriev/go-klokku-bridge/internal/config"
	"github.com/MKhiriev/go-klokku-bridge/internal/logger"
	"github.com/MKhiriev/go-klokku-bridge/internal/metrics"
	"github.com/MKhiriev/go-klokku-bridge/internal/store"
	"github.com/MKhiriev/go-klokku-bridge/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo.String())

	cfg, err := config.GetBridgeConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger("klokku-bridge")
	if cfg.UI.Interactive {
		log = logger.NewFileLogger("klokku-bridge")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	klokku, err := adapter.NewHTTPKlokkuAdapter(cfg.Klokku, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create klokku adapter")
	}

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Error().Err(err).Msg("close storages")
		}
	}()

	app, err := client.NewApp(cfg, klokku, storages.History, metrics.New(), buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init bridge app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("bridge run error")
		_ = storages.Close()
		stop()
		os.Exit(1)
	}
}
