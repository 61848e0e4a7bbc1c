// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-bundle-keeper/internal/bundle"
	"github.com/MKhiriev/go-bundle-keeper/internal/config"
	"github.com/MKhiriev/go-bundle-keeper/internal/logger"
	"github.com/MKhiriev/go-bundle-keeper/internal/utils"
	"github.com/MKhiriev/go-bundle-keeper/models"
)

// HTTPTransport exchanges bundles with the bundle server over its REST API.
//
// Uploads go to POST /api/bundles. A polling round lists the bundles the
// server holds for this node via GET /api/peers/{peerID}/bundles and then
// downloads them one per Poll into spoolDir.
type HTTPTransport struct {
	client      *utils.HTTPClient
	peerID      string
	transportID string
	spoolDir    string

	mu      sync.Mutex
	inRound bool
	queue   []string
}

// NewHTTPTransport constructs an HTTPTransport for the node peerID. It
// normalises and validates the base URL from cfg.ServerURL.
func NewHTTPTransport(cfg config.Adapter, peerID, spoolDir string) (*HTTPTransport, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter server url: %w", err)
	}
	if err = os.MkdirAll(spoolDir, 0o700); err != nil {
		return nil, fmt.Errorf("create spool dir: %w", err)
	}

	client := utils.NewHTTPClient(cfg.RequestTimeout)
	client.SetBaseURL(baseURL)

	return &HTTPTransport{
		client:      client,
		peerID:      peerID,
		transportID: cfg.TransportID,
		spoolDir:    spoolDir,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Deliver implements [Transport]. It uploads the container bytes as they are
// on disk.
func (h *HTTPTransport) Deliver(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read bundle: %w", err)
	}

	req := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(data)
	if h.transportID != "" {
		req.SetHeader(models.HeaderTransportID, h.transportID)
	}

	resp, err := req.Post("/api/bundles")
	if err != nil {
		return fmt.Errorf("%w: upload bundle: %w", ErrTransport, err)
	}
	return mapHTTPError(resp)
}

// Poll implements [Transport].
func (h *HTTPTransport) Poll(ctx context.Context) (string, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.inRound {
		ids, err := h.list(ctx)
		if err != nil {
			return "", false, err
		}
		h.queue = ids
		h.inRound = true
	}

	if len(h.queue) == 0 {
		h.inRound = false
		return "", false, nil
	}

	id := h.queue[0]
	path, err := h.download(ctx, id)
	if err != nil {
		return "", false, err
	}
	h.queue = h.queue[1:]
	return path, true, nil
}

func (h *HTTPTransport) list(ctx context.Context) ([]string, error) {
	var dto models.BundleTransferDTO

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&dto).
		SetPathParam("peerID", h.peerID).
		Get("/api/peers/{peerID}/bundles")
	if err != nil {
		return nil, fmt.Errorf("%w: list bundles: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(dto.Bundles))
	for _, b := range dto.Bundles {
		ids = append(ids, b.ID)
	}
	return ids, nil
}

func (h *HTTPTransport) download(ctx context.Context, id string) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("bundleID", id).
		Get("/api/bundles/{bundleID}")
	if err != nil {
		return "", fmt.Errorf("%w: download bundle %s: %w", ErrTransport, id, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	path := filepath.Join(h.spoolDir, bundle.FileName(filepath.Base(id)))
	tmp := filepath.Join(h.spoolDir, models.TempFilePrefix+uuid.NewString())
	if err = os.WriteFile(tmp, resp.Body(), 0o600); err != nil {
		return "", fmt.Errorf("write spooled bundle: %w", err)
	}
	if err = os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("write spooled bundle: %w", err)
	}

	logger.FromContext(ctx).Debug().
		Str("func", "*HTTPTransport.download").
		Str("bundle_id", id).
		Int("size", len(resp.Body())).
		Msg("bundle downloaded")
	return path, nil
}
