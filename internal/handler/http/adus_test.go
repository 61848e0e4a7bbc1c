package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-bundle-keeper/internal/service"
	"github.com/MKhiriev/go-bundle-keeper/internal/store"
	"github.com/MKhiriev/go-bundle-keeper/models"
)

func TestProduceADU(t *testing.T) {
	h, deps := newTestHandler(t)
	deps.adus.EXPECT().Produce(gomock.Any(), "srv", "mail", []byte("hello")).
		Return(models.ADU{PeerID: "srv", AppID: "mail", Seq: 3, Size: 5}, nil)

	rr := serve(h, httptest.NewRequest(http.MethodPost, "/api/adus/srv/mail", strings.NewReader("hello")))

	require.Equal(t, http.StatusCreated, rr.Code)
	var got models.ADU
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, int64(3), got.Seq)
}

func TestProduceADU_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "too large", err: fmt.Errorf("record: %w", store.ErrADUTooLarge), wantStatus: http.StatusRequestEntityTooLarge},
		{name: "bad app id", err: store.ErrInvalidPathSegment, wantStatus: http.StatusBadRequest},
		{name: "invalid", err: service.ErrInvalidDataProvided, wantStatus: http.StatusBadRequest},
		{name: "io", err: store.ErrFileStorage, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, deps := newTestHandler(t)
			deps.adus.EXPECT().Produce(gomock.Any(), "srv", "mail", gomock.Any()).Return(models.ADU{}, tt.err)

			rr := serve(h, httptest.NewRequest(http.MethodPost, "/api/adus/srv/mail", strings.NewReader("x")))

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestProduceADU_BodyTooLarge(t *testing.T) {
	h, _ := newTestHandler(t)
	h.maxBodyBytes = 2

	rr := serve(h, httptest.NewRequest(http.MethodPost, "/api/adus/srv/mail", strings.NewReader("hello")))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}
