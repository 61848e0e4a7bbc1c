package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-bundle-keeper/internal/app"
	"github.com/MKhiriev/go-bundle-keeper/internal/logger"
	"github.com/MKhiriev/go-bundle-keeper/internal/utils"
	"github.com/MKhiriev/go-bundle-keeper/models"
)

func (h *Handler) listRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.services.Routes.ListRoutes(r.Context())
	if err != nil {
		writeError(w, r, err, "*Handler.listRoutes", "error listing routes")
		return
	}
	if routes == nil {
		routes = []models.Route{}
	}
	utils.WriteJSON(w, routes, http.StatusOK)
}

func (h *Handler) saveRoute(w http.ResponseWriter, r *http.Request) {
	var route models.Route
	if err := decodeJSON(r, &route); err != nil {
		logger.FromRequest(r).Warn().Err(err).Str("func", "*Handler.saveRoute").Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	saved, err := h.services.Routes.SaveRoute(r.Context(), route)
	if err != nil {
		writeError(w, r, err, "*Handler.saveRoute", "error saving route")
		return
	}

	subject, _ := utils.GetSubjectFromContext(r.Context())
	logger.FromRequest(r).Info().
		Str("subject", subject).
		Str("app_id", saved.AppID).
		Str("address", saved.Address).
		Msg("route saved")

	utils.WriteJSON(w, saved, http.StatusOK)
}

func (h *Handler) deleteRoute(w http.ResponseWriter, r *http.Request) {
	appID := chi.URLParam(r, "appID")

	if err := h.services.Routes.DeleteRoute(r.Context(), appID); err != nil {
		writeError(w, r, err, "*Handler.deleteRoute", "error deleting route")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listPeers(w http.ResponseWriter, r *http.Request) {
	peers, err := h.services.Keys.Peers(r.Context())
	if err != nil {
		writeError(w, r, err, "*Handler.listPeers", "error listing peers")
		return
	}
	if peers == nil {
		peers = []string{}
	}
	utils.WriteJSON(w, peers, http.StatusOK)
}

// peerMetadata shows the per-app cursors kept for one peer.
func (h *Handler) peerMetadata(w http.ResponseWriter, r *http.Request) {
	peerID := chi.URLParam(r, "peerID")

	meta, err := h.services.ADUs.Metadata(r.Context(), peerID)
	if err != nil {
		writeError(w, r, err, "*Handler.peerMetadata", "error loading metadata")
		return
	}
	if meta == nil {
		meta = []models.Metadata{}
	}
	utils.WriteJSON(w, meta, http.StatusOK)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
