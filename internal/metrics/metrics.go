// Package metrics exposes the bundle node counters to Prometheus.
//
// A nil *Metrics is valid and records nothing, so components built without a
// registry need no special casing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bundle_keeper"

// Outcome labels of received bundles.
const (
	OutcomeApplied   = "applied"
	OutcomeDuplicate = "duplicate"
	OutcomeRejected  = "rejected"
	OutcomeGap       = "gap"
	OutcomeFailed    = "failed"
)

// Metrics holds the collectors of one node.
type Metrics struct {
	registry *prometheus.Registry

	bundlesSent      prometheus.Counter
	bundlesResent    prometheus.Counter
	bundleBytesSent  prometheus.Counter
	bundlesReceived  *prometheus.CounterVec
	acksApplied      prometheus.Counter
	adusProduced     *prometheus.CounterVec
	adusApplied      *prometheus.CounterVec
	adusDelivered    *prometheus.CounterVec
	deliveryFailures *prometheus.CounterVec
	bundlesInFlight  *prometheus.GaugeVec
}

// New creates the collectors and registers them, together with the Go and
// process collectors, on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		bundlesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bundles_sent_total",
			Help:      "Bundles built by send cycles.",
		}),
		bundlesResent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bundles_retransmitted_total",
			Help:      "Outstanding bundles handed to a transport again.",
		}),
		bundleBytesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bundle_bytes_sent_total",
			Help:      "Ciphertext bytes of built bundles.",
		}),
		bundlesReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bundles_received_total",
			Help:      "Received bundles by outcome.",
		}, []string{"outcome"}),
		acksApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "acks_applied_total",
			Help:      "Own bundles acknowledged by peers.",
		}),
		adusProduced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "adus_produced_total",
			Help:      "ADUs accepted from local applications.",
		}, []string{"app_id"}),
		adusApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "adus_applied_total",
			Help:      "ADUs received from peers and stored.",
		}, []string{"app_id"}),
		adusDelivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "adus_delivered_total",
			Help:      "ADUs handed to application adapters.",
		}, []string{"app_id"}),
		deliveryFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "adu_delivery_failures_total",
			Help:      "Failed hand-offs to application adapters.",
		}, []string{"app_id"}),
		bundlesInFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bundles_in_flight",
			Help:      "Unacknowledged bundles per peer after the last send cycle.",
		}, []string{"peer_id"}),
	}

	m.registry.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		m.bundlesSent,
		m.bundlesResent,
		m.bundleBytesSent,
		m.bundlesReceived,
		m.acksApplied,
		m.adusProduced,
		m.adusApplied,
		m.adusDelivered,
		m.deliveryFailures,
		m.bundlesInFlight,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) BundleSent(size int64) {
	if m == nil {
		return
	}
	m.bundlesSent.Inc()
	m.bundleBytesSent.Add(float64(size))
}

func (m *Metrics) BundlesRetransmitted(n int) {
	if m == nil {
		return
	}
	m.bundlesResent.Add(float64(n))
}

func (m *Metrics) BundleReceived(outcome string) {
	if m == nil {
		return
	}
	m.bundlesReceived.WithLabelValues(outcome).Inc()
}

func (m *Metrics) AcksApplied(n int) {
	if m == nil {
		return
	}
	m.acksApplied.Add(float64(n))
}

func (m *Metrics) ADUProduced(appID string) {
	if m == nil {
		return
	}
	m.adusProduced.WithLabelValues(appID).Inc()
}

func (m *Metrics) ADUsApplied(appID string, n int) {
	if m == nil {
		return
	}
	m.adusApplied.WithLabelValues(appID).Add(float64(n))
}

func (m *Metrics) ADUDelivered(appID string) {
	if m == nil {
		return
	}
	m.adusDelivered.WithLabelValues(appID).Inc()
}

func (m *Metrics) DeliveryFailed(appID string) {
	if m == nil {
		return
	}
	m.deliveryFailures.WithLabelValues(appID).Inc()
}

func (m *Metrics) InFlight(peerID string, n int) {
	if m == nil {
		return
	}
	m.bundlesInFlight.WithLabelValues(peerID).Set(float64(n))
}
