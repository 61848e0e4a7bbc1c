// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bundle-keeper/internal/config"
	"github.com/MKhiriev/go-bundle-keeper/models"
)

// newTestTransport creates an HTTPTransport pointed at a test server.
func newTestTransport(t *testing.T, serverURL string) *HTTPTransport {
	t.Helper()
	tr, err := NewHTTPTransport(config.Adapter{
		ServerURL:      serverURL,
		TransportID:    "carrier-1",
		RequestTimeout: 5 * time.Second,
	}, "client-peer", filepath.Join(t.TempDir(), "spool"))
	require.NoError(t, err)
	return tr
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// ── Deliver ─────────────────────────────────────────────────────────────────

func TestHTTPTransport_Deliver_Success(t *testing.T) {
	content := []byte("container bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/bundles", r.URL.Path)
		assert.Equal(t, "carrier-1", r.Header.Get(models.HeaderTransportID))
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Equal(t, content, body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr := newTestTransport(t, srv.URL)
	err := tr.Deliver(context.Background(), writeFile(t, "b.bundle", content))
	require.NoError(t, err)
}

func TestHTTPTransport_Deliver_MissingFile(t *testing.T) {
	tr := newTestTransport(t, "http://127.0.0.1:1")
	err := tr.Deliver(context.Background(), filepath.Join(t.TempDir(), "absent.bundle"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHTTPTransport_Deliver_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "bad request", status: http.StatusBadRequest, want: ErrBadRequest},
		{name: "unauthorized", status: http.StatusUnauthorized, want: ErrUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, want: ErrForbidden},
		{name: "not found", status: http.StatusNotFound, want: ErrNotFound},
		{name: "conflict", status: http.StatusConflict, want: ErrConflict},
		{name: "unprocessable", status: http.StatusUnprocessableEntity, want: ErrUnprocessable},
		{name: "bad gateway", status: http.StatusBadGateway, want: ErrBadGateway},
		{name: "internal", status: http.StatusInternalServerError, want: ErrInternalServerError},
		{name: "other", status: http.StatusTeapot, want: ErrTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("nope"))
			}))
			defer srv.Close()

			tr := newTestTransport(t, srv.URL)
			err := tr.Deliver(context.Background(), writeFile(t, "b.bundle", []byte("x")))

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrTransport)
		})
	}
}

// ── Poll ────────────────────────────────────────────────────────────────────

func TestHTTPTransport_Poll_Round(t *testing.T) {
	var lists atomic.Int32
	bodies := map[string]string{"id-a": "bundle a", "id-b": "bundle b"}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/peers/client-peer/bundles", func(w http.ResponseWriter, r *http.Request) {
		lists.Add(1)
		_ = json.NewEncoder(w).Encode(models.BundleTransferDTO{
			Bundles: []models.Bundle{{ID: "id-a"}, {ID: "id-b"}},
		})
	})
	mux.HandleFunc("GET /api/bundles/{id}", func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.PathValue("id")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	tr := newTestTransport(t, srv.URL)
	ctx := context.Background()

	for _, id := range []string{"id-a", "id-b"} {
		path, ok, err := tr.Poll(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, id+".bundle", filepath.Base(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, bodies[id], string(data))
	}

	_, ok, err := tr.Poll(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int32(1), lists.Load())

	// a new round lists again
	_, ok, err = tr.Poll(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int32(2), lists.Load())
}

func TestHTTPTransport_Poll_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.BundleTransferDTO{})
	}))
	defer srv.Close()

	tr := newTestTransport(t, srv.URL)
	_, ok, err := tr.Poll(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHTTPTransport_Poll_ListFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	tr := newTestTransport(t, srv.URL)
	_, ok, err := tr.Poll(context.Background())
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrBadGateway)
}

func TestHTTPTransport_Poll_DownloadFailsKeepsQueue(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/peers/client-peer/bundles", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.BundleTransferDTO{Bundles: []models.Bundle{{ID: "id-a"}}})
	})
	mux.HandleFunc("GET /api/bundles/{id}", func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("a"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	tr := newTestTransport(t, srv.URL)
	_, _, err := tr.Poll(context.Background())
	require.ErrorIs(t, err, ErrInternalServerError)

	fail.Store(false)
	path, ok, err := tr.Poll(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "id-a.bundle", filepath.Base(path))
}

// ── construction ────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "localhost:8080", want: "http://localhost:8080"},
		{raw: " https://bundles.example.org/ ", want: "https://bundles.example.org"},
		{raw: "", wantErr: true},
		{raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPTransport_EmptyURL(t *testing.T) {
	_, err := NewHTTPTransport(config.Adapter{}, "peer", t.TempDir())
	assert.ErrorIs(t, err, ErrEmptyAddress)
}

// ── HTTPDeliverer ───────────────────────────────────────────────────────────

func TestHTTPDeliverer_Deliver(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/inbox", r.URL.Path)
		assert.Equal(t, "peer-1", r.Header.Get(models.HeaderPeerID))
		assert.Equal(t, "mail", r.Header.Get(models.HeaderAppID))
		assert.Equal(t, "7", r.Header.Get(models.HeaderADUSeq))

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "hello", string(body))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	d := NewHTTPDeliverer(time.Second)
	err := d.Deliver(context.Background(), srv.URL+"/inbox", models.ADU{
		PeerID: "peer-1", AppID: "mail", Seq: 7, Payload: []byte("hello"),
	})
	require.NoError(t, err)
}

func TestHTTPDeliverer_Deliver_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	d := NewHTTPDeliverer(time.Second)

	err := d.Deliver(context.Background(), srv.URL, models.ADU{AppID: "mail", Seq: 1})
	assert.ErrorIs(t, err, ErrTransport)

	err = d.Deliver(context.Background(), "", models.ADU{})
	assert.ErrorIs(t, err, ErrEmptyAddress)
}
