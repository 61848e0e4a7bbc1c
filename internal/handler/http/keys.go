package http

import (
	"net/http"

	"github.com/MKhiriev/go-bundle-keeper/internal/utils"
)

// getPublicKeys publishes the node's public key set.
func (h *Handler) getPublicKeys(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.Keys.Own(), http.StatusOK)
}
