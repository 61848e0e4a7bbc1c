package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-bundle-keeper/internal/app"
	"github.com/MKhiriev/go-bundle-keeper/internal/logger"
	"github.com/MKhiriev/go-bundle-keeper/internal/utils"
)

// produceADU stores the raw request body as the next ADU of the
// (peerID, appID) stream.
func (h *Handler) produceADU(w http.ResponseWriter, r *http.Request) {
	peerID := chi.URLParam(r, "peerID")
	appID := chi.URLParam(r, "appID")

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, app.MsgADUTooLarge, http.StatusRequestEntityTooLarge)
			return
		}
		logger.FromRequest(r).Warn().Err(err).Str("func", "*Handler.produceADU").Msg("error reading body")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	adu, err := h.services.ADUs.Produce(r.Context(), peerID, appID, payload)
	if err != nil {
		writeError(w, r, err, "*Handler.produceADU", "error producing adu")
		return
	}

	utils.WriteJSON(w, adu, http.StatusCreated)
}
