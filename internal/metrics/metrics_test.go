package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.BundleSent(100)
	m.BundleSent(50)
	m.BundleReceived(OutcomeApplied)
	m.BundleReceived(OutcomeDuplicate)
	m.BundleReceived(OutcomeDuplicate)
	m.ADUsApplied("mail", 3)
	m.InFlight("peer", 2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bundlesSent))
	assert.Equal(t, 150.0, testutil.ToFloat64(m.bundleBytesSent))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.bundlesReceived.WithLabelValues(OutcomeDuplicate)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.adusApplied.WithLabelValues("mail")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.bundlesInFlight.WithLabelValues("peer")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.BundleSent(1)
		m.BundlesRetransmitted(1)
		m.BundleReceived(OutcomeRejected)
		m.AcksApplied(1)
		m.ADUProduced("a")
		m.ADUsApplied("a", 1)
		m.ADUDelivered("a")
		m.DeliveryFailed("a")
		m.InFlight("p", 1)
	})
	assert.Nil(t, m.Registry())
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ADUProduced("mail")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `bundle_keeper_adus_produced_total{app_id="mail"} 1`)
}
