package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-bundle-keeper/models"
)

func TestGetServerVersion(t *testing.T) {
	h, deps := newTestHandler(t)
	deps.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.2.3")

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/plain", rr.Header().Get("Content-Type"))
	assert.Equal(t, "1.2.3", rr.Body.String())
}

func TestGetNodeInfo(t *testing.T) {
	h, deps := newTestHandler(t)
	want := models.NodeInfo{Version: "1.2.3", Role: models.RoleServer, PeerID: "srv"}
	deps.appInfo.EXPECT().NodeInfo(gomock.Any()).Return(want)

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/api/node", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var got models.NodeInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, want, got)
}

func TestGetPublicKeys(t *testing.T) {
	h, deps := newTestHandler(t)
	deps.keys.EXPECT().Own().Return(models.PeerKeys{PeerID: "srv", Role: models.RoleServer})

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/api/keys", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var got models.PeerKeys
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "srv", got.PeerID)
}
