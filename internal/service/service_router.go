// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-bundle-keeper/internal/logger"
	"github.com/MKhiriev/go-bundle-keeper/internal/metrics"
	"github.com/MKhiriev/go-bundle-keeper/internal/store"
	"github.com/MKhiriev/go-bundle-keeper/internal/utils"
	"github.com/MKhiriev/go-bundle-keeper/models"
)

// routerService drains received ADUs into application adapters.
//
// Within one (peer, app) stream ADUs are handed over strictly in order: the
// first failed delivery stops the stream until the next run, and LastProcessed
// only moves after the adapter accepted the ADU.
type routerService struct {
	adus      store.ADUStore
	resolver  RouteResolver
	deliverer Deliverer
	metrics   *metrics.Metrics

	peerLocks utils.KeyedMutex
}

// NewRouterService builds a RouterService. m may be nil.
func NewRouterService(adus store.ADUStore, resolver RouteResolver, deliverer Deliverer, m *metrics.Metrics) RouterService {
	return &routerService{
		adus:      adus,
		resolver:  resolver,
		deliverer: deliverer,
		metrics:   m,
	}
}

func (r *routerService) DeliverPending(ctx context.Context, peerID string) (int, error) {
	unlock := r.peerLocks.Lock(peerID)
	defer unlock()

	metas, err := r.adus.ListMetadata(ctx, peerID)
	if err != nil {
		return 0, fmt.Errorf("list streams of %s: %w", peerID, err)
	}

	var (
		delivered int
		errs      []error
	)
	for _, meta := range metas {
		if !meta.HasUnprocessed() {
			continue
		}

		n, err := r.deliverStream(ctx, meta)
		delivered += n
		if err != nil {
			errs = append(errs, err)
		}
	}
	return delivered, errors.Join(errs...)
}

func (r *routerService) DeliverAll(ctx context.Context) (int, error) {
	peers, err := r.adus.ListPeers(ctx)
	if err != nil {
		return 0, fmt.Errorf("list peers: %w", err)
	}

	var (
		delivered int
		errs      []error
	)
	for _, peerID := range peers {
		if ctx.Err() != nil {
			break
		}
		n, err := r.DeliverPending(ctx, peerID)
		delivered += n
		if err != nil {
			errs = append(errs, err)
		}
	}
	return delivered, errors.Join(errs...)
}

func (r *routerService) deliverStream(ctx context.Context, meta models.Metadata) (int, error) {
	log := logger.FromContext(ctx)

	address, err := r.resolver.Resolve(ctx, meta.AppID)
	if err != nil {
		log.Warn().Err(err).
			Str("func", "*routerService.deliverStream").
			Str("peer_id", meta.PeerID).
			Str("app_id", meta.AppID).
			Msg("adus kept until the app is routable")
		return 0, err
	}

	delivered := 0
	for ctx.Err() == nil {
		adu, ok, err := r.adus.NextUnprocessed(ctx, meta.PeerID, meta.AppID)
		if err != nil {
			return delivered, err
		}
		if !ok {
			break
		}

		if err = r.deliverer.Deliver(ctx, address, adu); err != nil {
			r.metrics.DeliveryFailed(adu.AppID)
			log.Err(err).
				Str("func", "*routerService.deliverStream").
				Str("peer_id", adu.PeerID).
				Str("app_id", adu.AppID).
				Int64("seq", adu.Seq).
				Msg("failed to deliver adu")
			return delivered, fmt.Errorf("deliver %s/%s/%d: %w", adu.PeerID, adu.AppID, adu.Seq, err)
		}

		if err = r.adus.MarkProcessed(ctx, adu.PeerID, adu.AppID, adu.Seq); err != nil {
			return delivered, err
		}
		r.metrics.ADUDelivered(adu.AppID)
		delivered++
	}

	if delivered > 0 {
		log.Debug().
			Str("func", "*routerService.deliverStream").
			Str("peer_id", meta.PeerID).
			Str("app_id", meta.AppID).
			Int("delivered", delivered).
			Msg("adus delivered")
	}
	return delivered, nil
}
