// Package antmetrics is the optional Prometheus surface for an
// anthost-based daemon: frame decode/checksum counters, channel state
// transition counters, and router capability-discovery retry counters.
// Grounded on kstaniek-go-ampio-server/internal/metrics/metrics.go's
// promauto-counters-plus-StartHTTP shape, generalized from a package of
// global vars to a Registry value so a caller that never wants metrics
// never pays for (or registers) any of it — every method is nil-safe and
// a nil *Registry is a valid, inert no-op.
package antmetrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds one anthost process's Prometheus collectors. The zero
// value is not meaningful; use New. A nil *Registry is meaningful: every
// method below tolerates it and does nothing.
type Registry struct {
	framesDecoded      prometheus.Counter
	checksumErrors     prometheus.Counter
	framingErrors      prometheus.Counter
	channelTransitions *prometheus.CounterVec
	configureErrors    *prometheus.CounterVec
	capabilitiesRetries prometheus.Counter
}

// New registers a fresh set of collectors against reg and returns a
// Registry wrapping them. Pass prometheus.NewRegistry() for an isolated
// registry in tests, or prometheus.DefaultRegisterer to publish under
// promhttp.Handler()'s default registry.
func New(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)
	return &Registry{
		framesDecoded: factory.NewCounter(prometheus.CounterOpts{
			Name: "anthost_frames_decoded_total",
			Help: "Total ANT frames successfully decoded from the transport.",
		}),
		checksumErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "anthost_checksum_errors_total",
			Help: "Total frames rejected for a bad XOR checksum.",
		}),
		framingErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "anthost_framing_errors_total",
			Help: "Total frames rejected for any other framing reason (oversized length, unknown message id).",
		}),
		channelTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "anthost_channel_state_transitions_total",
			Help: "Channel configure state-machine transitions, by resulting state.",
		}, []string{"state"}),
		configureErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "anthost_channel_configure_errors_total",
			Help: "Channel configure steps that latched an error, by originating state.",
		}, []string{"state"}),
		capabilitiesRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "anthost_router_capabilities_retries_total",
			Help: "Total retry attempts spent waiting for a Capabilities response during router construction.",
		}),
	}
}

// ServeHTTP mounts the Prometheus scrape handler on mux at /metrics,
// serving whatever is registered in reg; passing the registry New was
// built against serves this package's collectors.
func ServeHTTP(mux *http.ServeMux, reg prometheus.Gatherer) {
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
}

func (r *Registry) IncFramesDecoded() {
	if r == nil {
		return
	}
	r.framesDecoded.Inc()
}

func (r *Registry) IncChecksumError() {
	if r == nil {
		return
	}
	r.checksumErrors.Inc()
}

func (r *Registry) IncFramingError() {
	if r == nil {
		return
	}
	r.framingErrors.Inc()
}

// ObserveChannelTransition records a channel configure step arriving at
// state.
func (r *Registry) ObserveChannelTransition(state string) {
	if r == nil {
		return
	}
	r.channelTransitions.WithLabelValues(state).Inc()
}

// ObserveConfigureError records a configure step that latched an error
// while in state.
func (r *Registry) ObserveConfigureError(state string) {
	if r == nil {
		return
	}
	r.configureErrors.WithLabelValues(state).Inc()
}

func (r *Registry) IncCapabilitiesRetry() {
	if r == nil {
		return
	}
	r.capabilitiesRetries.Inc()
}
