package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-bundle-keeper/internal/app"
	"github.com/MKhiriev/go-bundle-keeper/internal/logger"
	"github.com/MKhiriev/go-bundle-keeper/internal/service"
	"github.com/MKhiriev/go-bundle-keeper/internal/store"
)

// errorStatuses is checked in order; the first match wins.
var errorStatuses = []struct {
	err    error
	status int
}{
	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{service.ErrInvalidRoute, http.StatusBadRequest},
	{store.ErrInvalidPathSegment, http.StatusBadRequest},
	{service.ErrTokenIsExpired, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{service.ErrUnknownPeer, http.StatusNotFound},
	{service.ErrUnroutableAppID, http.StatusNotFound},
	{store.ErrRouteNotFound, http.StatusNotFound},
	{store.ErrBundleNotFound, http.StatusNotFound},
	{store.ErrMetadataNotFound, http.StatusNotFound},
	{store.ErrSequenceGap, http.StatusConflict},
	{store.ErrCursorConflict, http.StatusConflict},
	{store.ErrADUTooLarge, http.StatusRequestEntityTooLarge},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}

	switch service.Classify(err) {
	case service.ClassIntegrity:
		return http.StatusUnprocessableEntity
	case service.ClassConfiguration:
		return http.StatusBadRequest
	case service.ClassNone, service.ClassDuplicate:
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs err and answers with its mapped status. Server errors do
// not leak their text.
func writeError(w http.ResponseWriter, r *http.Request, err error, funcName, msg string) {
	status := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", funcName).Msg(msg)
		http.Error(w, app.MsgInternalServerError, status)
		return
	}

	log.Warn().Err(err).Str("func", funcName).Int("status", status).Msg(msg)
	http.Error(w, err.Error(), status)
}
