package client

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/MKhiriev/go-bundle-keeper/internal/adapter"
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

const (
	spoolDirName    = "spool"
	incomingDirName = "incoming"
)

// App is a running client node: it exchanges bundles with the server over
// the configured transport and hands received ADUs to local apps.
type App struct {
	storages *store.Storages
	services *service.Services
	workers  *workers.Workers
	logger   *logger.Logger
}

func NewApp(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (*App, error) {
	id, err := crypto.LoadOrCreateIdentity(cfg.App.KeysDir, models.RoleClient)
	if err != nil {
		return nil, fmt.Errorf("load identity: %w", err)
	}
	sc, err := crypto.NewSecurityContext(id)
	if err != nil {
		return nil, fmt.Errorf("create security context: %w", err)
	}
	engine := crypto.NewEngine(sc)

	storages, err := store.NewStorages(ctx, cfg.Storage, cfg.Window.MaxBytes, log)
	if err != nil {
		return nil, fmt.Errorf("create storages: %w", err)
	}

	app, err := newApp(ctx, cfg, engine, storages, log)
	if err != nil {
		return nil, errors.Join(err, storages.Close())
	}
	return app, nil
}

func newApp(ctx context.Context, cfg *config.StructuredConfig, engine crypto.Engine, storages *store.Storages, log *logger.Logger) (*App, error) {
	transport, err := NewTransport(cfg.Adapter, engine.PeerID(), filepath.Join(cfg.Storage.Files.DataDir, spoolDirName))
	if err != nil {
		return nil, fmt.Errorf("create transport: %w", err)
	}

	m := metrics.New()
	services, err := service.NewServices(storages, engine, *cfg, transport, m)
	if err != nil {
		return nil, fmt.Errorf("create services: %w", err)
	}

	serverKeys, err := services.Keys.Import(ctx, cfg.App.ServerKeysFile)
	if err != nil {
		return nil, fmt.Errorf("import server keys: %w", err)
	}
	log.Info().
		Str("peer_id", engine.PeerID()).
		Str("server_id", serverKeys.PeerID).
		Msg("client node ready")

	ws := workers.NewWorkers(
		workers.FromJob(services.TransferJob, cfg.Workers.TransferInterval),
		workers.FromJob(services.DeliveryJob, cfg.Workers.DeliveryInterval),
	)

	// local apps hand ADUs over HTTP only when a listen address is set
	if cfg.Server.HTTPAddress != "" {
		handlers, err := handler.NewHandlers(services, m, *cfg, filepath.Join(cfg.Storage.Files.DataDir, incomingDirName), log)
		if err != nil {
			return nil, err
		}
		srv, err := server.NewServer(handlers, cfg.Server, log)
		if err != nil {
			return nil, err
		}
		ws.Add(srv)
	}

	return &App{
		storages: storages,
		services: services,
		workers:  ws,
		logger:   log,
	}, nil
}

// Run blocks until ctx is cancelled or a worker fails. The storages are
// closed on return.
func (a *App) Run(ctx context.Context) error {
	ctx = a.logger.WithContext(ctx)

	// a first cycle right away instead of waiting a full interval
	if err := a.services.TransferJob.RunOnce(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("initial transfer cycle failed")
	}

	err := a.workers.Run(ctx)
	return errors.Join(err, a.storages.Close())
}

// NewTransport picks the carried-media transport when a directory is set and
// the HTTP transport otherwise.
func NewTransport(cfg config.Adapter, peerID, spoolDir string) (adapter.Transport, error) {
	if cfg.TransportDir != "" {
		return adapter.NewDirTransport(cfg.TransportDir, peerID)
	}
	return adapter.NewHTTPTransport(cfg, peerID, spoolDir)
}
