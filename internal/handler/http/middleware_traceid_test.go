package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bundle-keeper/internal/logger"
)

func executeWithTraceID(h *Handler, incoming string) (*httptest.ResponseRecorder, *http.Request) {
	var captured *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
	})

	req := httptest.NewRequest(http.MethodGet, "/api/keys", nil)
	if incoming != "" {
		req.Header.Set(traceIDHeader, incoming)
	}
	rr := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rr, req)
	return rr, captured
}

func TestWithTraceID_Generates(t *testing.T) {
	h := &Handler{logger: logger.Nop()}

	rr, req := executeWithTraceID(h, "")

	id, err := uuid.Parse(rr.Header().Get(traceIDHeader))
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
	require.NotNil(t, req)
	assert.NotNil(t, logger.FromRequest(req))
}

func TestWithTraceID_ReusesIncoming(t *testing.T) {
	h := &Handler{logger: logger.Nop()}

	rr, _ := executeWithTraceID(h, "carrier-trace-1")

	assert.Equal(t, "carrier-trace-1", rr.Header().Get(traceIDHeader))
}

func TestWithTraceID_Unique(t *testing.T) {
	h := &Handler{logger: logger.Nop()}

	a, _ := executeWithTraceID(h, "")
	b, _ := executeWithTraceID(h, "")

	assert.NotEqual(t, a.Header().Get(traceIDHeader), b.Header().Get(traceIDHeader))
}
