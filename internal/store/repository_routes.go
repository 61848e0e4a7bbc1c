package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-bundle-keeper/internal/logger"
	"github.com/MKhiriev/go-bundle-keeper/models"
)

// routeRepository is the SQL implementation of [RouteRepository].
type routeRepository struct {
	sqlRepository
}

func (r *routeRepository) Save(ctx context.Context, route models.Route) error {
	at := route.UpdatedAt
	if at.IsZero() {
		at = time.Now()
	}

	query, args, err := buildSaveRouteQuery(r.sb, route.AppID, route.Address, at.UTC())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.exec(ctx, query, args); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "routeRepository.Save").
			Str("app_id", route.AppID).
			Msg("failed to save route")
		return err
	}
	return nil
}

func (r *routeRepository) Get(ctx context.Context, appID string) (models.Route, error) {
	query, args, err := buildGetRouteQuery(r.sb, appID)
	if err != nil {
		return models.Route{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var route models.Route
	err = r.q.QueryRowContext(ctx, query, args...).Scan(&route.AppID, &route.Address, &route.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Route{}, fmt.Errorf("%w: %s", ErrRouteNotFound, appID)
	}
	if err != nil {
		return models.Route{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return route, nil
}

func (r *routeRepository) List(ctx context.Context) ([]models.Route, error) {
	query, args, err := buildListRoutesQuery(r.sb)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, r.fail(ErrExecutingQuery, err)
	}
	defer rows.Close()

	result := make([]models.Route, 0, 8)
	for rows.Next() {
		var route models.Route
		if err = rows.Scan(&route.AppID, &route.Address, &route.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		result = append(result, route)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return result, nil
}

func (r *routeRepository) Delete(ctx context.Context, appID string) error {
	query, args, err := buildDeleteRouteQuery(r.sb, appID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	n, err := r.exec(ctx, query, args)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRouteNotFound, appID)
	}
	return nil
}
