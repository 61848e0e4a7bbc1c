package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/MKhiriev/go-bundle-keeper/internal/config"
	"github.com/MKhiriev/go-bundle-keeper/internal/crypto"
	"github.com/MKhiriev/go-bundle-keeper/internal/handler"
	"github.com/MKhiriev/go-bundle-keeper/internal/logger"
	"github.com/MKhiriev/go-bundle-keeper/internal/metrics"
	"github.com/MKhiriev/go-bundle-keeper/internal/server"
	"github.com/MKhiriev/go-bundle-keeper/internal/service"
	"github.com/MKhiriev/go-bundle-keeper/internal/store"
	"github.com/MKhiriev/go-bundle-keeper/internal/workers"
	"github.com/MKhiriev/go-bundle-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	models.NewBuildInfo(buildVersion, buildDate, buildCommit).Print(os.Stdout)

	log := logger.NewLogger("bundle-server")
	cfg, err := config.GetServerConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()
	ctx = log.WithContext(ctx)

	id, err := crypto.LoadOrCreateIdentity(cfg.App.KeysDir, models.RoleServer)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading identity")
	}
	if cfg.App.ServerKeysFile != "" {
		if err = crypto.WritePublicKeys(cfg.App.ServerKeysFile, id.PublicKeys()); err != nil {
			log.Fatal().Err(err).Msg("error publishing server keys")
		}
	}
	sc, err := crypto.NewSecurityContext(id)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating security context")
	}
	engine := crypto.NewEngine(sc)

	storages, err := store.NewStorages(ctx, cfg.Storage, cfg.Window.MaxBytes, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	m := metrics.New()
	services, err := service.NewServices(storages, engine, *cfg, nil, m)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, m, *cfg, filepath.Join(cfg.Storage.Files.DataDir, "incoming"), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	log.Info().Str("peer_id", engine.PeerID()).Msg("server node ready")

	ws := workers.NewWorkers(
		srv,
		workers.FromJob(services.DeliveryJob, cfg.Workers.DeliveryInterval),
	)
	if err = ws.Run(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}
