// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-bundle-keeper/internal/app"
	"github.com/MKhiriev/go-bundle-keeper/internal/logger"
	"github.com/MKhiriev/go-bundle-keeper/internal/service"
	"github.com/MKhiriev/go-bundle-keeper/internal/utils"
	"github.com/MKhiriev/go-bundle-keeper/models"
)

// uploadBundle applies a bundle file carried in the request body. A bundle
// that was already applied is answered like a fresh one.
func (h *Handler) uploadBundle(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	ctx := r.Context()

	path, err := h.spool(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, app.MsgBundleTooLarge, http.StatusRequestEntityTooLarge)
			return
		}
		log.Err(err).Str("func", "*Handler.uploadBundle").Msg("error spooling bundle")
		http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}
	defer os.Remove(path)

	result, err := h.services.Bundles.Receive(ctx, path)
	if err != nil && !service.IsSuccess(err) {
		writeError(w, r, err, "*Handler.uploadBundle", "error receiving bundle")
		return
	}

	if transportID := r.Header.Get(models.HeaderTransportID); transportID != "" {
		if err = h.services.Inventory.Touch(ctx, transportID, result.PeerID); err != nil {
			log.Warn().Err(err).
				Str("func", "*Handler.uploadBundle").
				Str("transport_id", transportID).
				Msg("failed to record transport peer")
		}
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

// spool copies the request body into a fresh file under spoolDir.
func (h *Handler) spool(w http.ResponseWriter, r *http.Request) (string, error) {
	if err := os.MkdirAll(h.spoolDir, 0o700); err != nil {
		return "", err
	}

	f, err := os.CreateTemp(h.spoolDir, "upload-*.bundle")
	if err != nil {
		return "", err
	}

	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if _, err = io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err = f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// downloadBundle streams an own bundle file that was not yet acknowledged.
func (h *Handler) downloadBundle(w http.ResponseWriter, r *http.Request) {
	bundleID := chi.URLParam(r, "bundleID")

	path, err := h.services.Bundles.Locate(r.Context(), bundleID)
	if err != nil {
		writeError(w, r, err, "*Handler.downloadBundle", "error locating bundle")
		return
	}

	f, err := os.Open(path)
	if err != nil {
		writeError(w, r, err, "*Handler.downloadBundle", "error opening bundle")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	if _, err = io.Copy(w, f); err != nil {
		logger.FromRequest(r).Err(err).
			Str("func", "*Handler.downloadBundle").
			Str("bundle_id", bundleID).
			Msg("error streaming bundle")
	}
}

// sendBundles runs a send cycle towards peerID and lists the bundles a
// carrier should pick up. Local file paths are not exposed.
func (h *Handler) sendBundles(w http.ResponseWriter, r *http.Request) {
	peerID := chi.URLParam(r, "peerID")
	ctx := r.Context()

	dto, err := h.services.Bundles.Send(ctx, peerID)
	if err != nil {
		writeError(w, r, err, "*Handler.sendBundles", "error sending bundles")
		return
	}

	if transportID := r.Header.Get(models.HeaderTransportID); transportID != "" {
		if err = h.services.Inventory.Touch(ctx, transportID, peerID); err != nil {
			logger.FromRequest(r).Warn().Err(err).
				Str("func", "*Handler.sendBundles").
				Str("transport_id", transportID).
				Msg("failed to record transport peer")
		}
	}

	for i := range dto.Bundles {
		dto.Bundles[i].Source = ""
	}
	if dto.DeletionSet == nil {
		dto.DeletionSet = []string{}
	}
	if dto.Bundles == nil {
		dto.Bundles = []models.Bundle{}
	}

	utils.WriteJSON(w, dto, http.StatusOK)
}

// inventory tells a carrier which bundles to fetch and which to drop.
func (h *Handler) inventory(w http.ResponseWriter, r *http.Request) {
	var req models.TransportInventory
	if err := decodeJSON(r, &req); err != nil || req.TransportID == "" {
		logger.FromRequest(r).Warn().Err(err).Str("func", "*Handler.inventory").Msg("invalid inventory request")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	resp, err := h.services.Inventory.Inventory(r.Context(), req.TransportID, req.Present)
	if err != nil {
		writeError(w, r, err, "*Handler.inventory", "error reconciling inventory")
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}
