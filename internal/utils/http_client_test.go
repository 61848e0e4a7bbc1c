package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bundle-keeper/models"
)

func TestNewHTTPClient_DecodesTransfer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		_, _ = WriteJSON(w, models.BundleTransferDTO{
			DeletionSet: []string{"b1"},
			Bundles:     []models.Bundle{{ID: "b2"}},
		}, http.StatusOK)
	}))
	defer srv.Close()

	var dto models.BundleTransferDTO
	resp, err := NewHTTPClient(time.Second).R().
		SetResult(&dto).
		Get(srv.URL + "/api/peers/server/bundles")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, []string{"b1"}, dto.DeletionSet)
	require.Len(t, dto.Bundles, 1)
	assert.Equal(t, "b2", dto.Bundles[0].ID)
}

func TestNewHTTPClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewHTTPClient(50 * time.Millisecond).R().Get(srv.URL)
	assert.Error(t, err)
}

func TestNewHTTPClient_Independent(t *testing.T) {
	a := NewHTTPClient(time.Second)
	b := NewHTTPClient(time.Minute)

	assert.NotSame(t, a.Client, b.Client)
	assert.Equal(t, time.Second, a.GetClient().Timeout)
	assert.Equal(t, time.Minute, b.GetClient().Timeout)
}
