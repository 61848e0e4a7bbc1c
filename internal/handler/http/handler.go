package http

import (
	"github.com/MKhiriev/go-bundle-keeper/internal/config"
	"github.com/MKhiriev/go-bundle-keeper/internal/logger"
	"github.com/MKhiriev/go-bundle-keeper/internal/metrics"
	"github.com/MKhiriev/go-bundle-keeper/internal/service"
)

// defaultMaxBodyBytes bounds uploads when the window has no byte limit.
const defaultMaxBodyBytes int64 = 64 << 20

type Handler struct {
	services *service.Services
	metrics  *metrics.Metrics

	// spoolDir receives uploaded bundle files before they are applied.
	spoolDir     string
	maxBodyBytes int64

	logger *logger.Logger
}

func NewHandler(services *service.Services, m *metrics.Metrics, cfg config.StructuredConfig, spoolDir string, logger *logger.Logger) *Handler {
	maxBody := defaultMaxBodyBytes
	if cfg.Window.MaxBytes > 0 && 4*cfg.Window.MaxBytes > maxBody {
		maxBody = 4 * cfg.Window.MaxBytes
	}

	logger.Info().Str("spool_dir", spoolDir).Msg("http handler created")
	return &Handler{
		services:     services,
		metrics:      m,
		spoolDir:     spoolDir,
		maxBodyBytes: maxBody,
		logger:       logger,
	}
}
