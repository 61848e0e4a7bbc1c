package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/MKhiriev/go-bundle-keeper/internal/bundle"
	"github.com/MKhiriev/go-bundle-keeper/internal/logger"
	"github.com/MKhiriev/go-bundle-keeper/internal/store"
	"github.com/MKhiriev/go-bundle-keeper/models"
)

type routeService struct {
	repo store.RouteRepository
	now  func() time.Time
}

// NewRouteService returns the route table backed by repo.
func NewRouteService(repo store.RouteRepository) RouteService {
	return &routeService{repo: repo, now: time.Now}
}

func (r *routeService) Resolve(ctx context.Context, appID string) (string, error) {
	route, err := r.repo.Get(ctx, appID)
	if errors.Is(err, store.ErrRouteNotFound) {
		return "", fmt.Errorf("%w: %q", ErrUnroutableAppID, appID)
	}
	if err != nil {
		return "", err
	}
	return route.Address, nil
}

func (r *routeService) SaveRoute(ctx context.Context, route models.Route) (models.Route, error) {
	if err := validateRoute(route); err != nil {
		return models.Route{}, err
	}

	route.UpdatedAt = r.now().UTC()
	if err := r.repo.Save(ctx, route); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*routeService.SaveRoute").
			Str("app_id", route.AppID).
			Msg("failed to save route")
		return models.Route{}, err
	}
	return route, nil
}

func (r *routeService) ListRoutes(ctx context.Context) ([]models.Route, error) {
	return r.repo.List(ctx)
}

func (r *routeService) DeleteRoute(ctx context.Context, appID string) error {
	return r.repo.Delete(ctx, appID)
}

// validateRoute accepts only http(s) adapter addresses with a host.
func validateRoute(route models.Route) error {
	if !bundle.ValidAppID(route.AppID) {
		return fmt.Errorf("%w: app id %q", ErrInvalidRoute, route.AppID)
	}

	u, err := url.Parse(route.Address)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRoute, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: address %q must be an absolute http url", ErrInvalidRoute, route.Address)
	}
	return nil
}
