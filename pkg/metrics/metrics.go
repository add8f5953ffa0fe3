// Package metrics exposes Prometheus counters for the event stream and the
// request path of the wasp client.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/doodlepoker/waspclient/pkg/events"
)

var _ events.Recorder = (*Metrics)(nil)

// Outcomes reported by RequestCompleted.
const (
	OutcomeSuccess   = "success"
	OutcomeInvalid   = "invalid"
	OutcomeSigning   = "signing"
	OutcomeTransport = "transport"
)

// Metrics contains all Prometheus metrics for the client
type Metrics struct {
	// Event channel metrics
	Connected        prometheus.Gauge
	Reconnects       prometheus.Counter
	FramesReceived   prometheus.Counter
	FramesDropped    *prometheus.CounterVec
	EventsDispatched *prometheus.CounterVec
	HandlerPanics    *prometheus.CounterVec

	// Request metrics
	Requests *prometheus.CounterVec
}

// NewMetrics initializes and registers Prometheus metrics
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(nil)
}

// NewMetricsWithRegistry initializes and registers Prometheus metrics with a custom registry
func NewMetricsWithRegistry(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		Connected: factory.NewGauge(prometheus.GaugeOpts{
			Name: "waspclient_events_connected",
			Help: "1 while the event channel is connected",
		}),
		Reconnects: factory.NewCounter(prometheus.CounterOpts{
			Name: "waspclient_events_reconnects_total",
			Help: "The total number of event channel reconnect attempts",
		}),
		FramesReceived: factory.NewCounter(prometheus.CounterOpts{
			Name: "waspclient_events_frames_received_total",
			Help: "The total number of frames read from the event channel",
		}),
		FramesDropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waspclient_events_frames_dropped_total",
				Help: "The total number of frames that were not dispatched, by reason",
			},
			[]string{"reason"},
		),
		EventsDispatched: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waspclient_events_dispatched_total",
				Help: "The total number of decoded events delivered to handlers, by topic",
			},
			[]string{"topic"},
		),
		HandlerPanics: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waspclient_events_handler_panics_total",
				Help: "The total number of recovered handler panics, by topic",
			},
			[]string{"topic"},
		),
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waspclient_requests_total",
				Help: "The total number of posts and view calls, by kind and outcome",
			},
			[]string{"kind", "name", "outcome"},
		),
	}
}

func (m *Metrics) SetConnected(connected bool) {
	if connected {
		m.Connected.Set(1)
		return
	}
	m.Connected.Set(0)
}

func (m *Metrics) Reconnect()                   { m.Reconnects.Inc() }
func (m *Metrics) FrameReceived()               { m.FramesReceived.Inc() }
func (m *Metrics) FrameDropped(reason string)   { m.FramesDropped.WithLabelValues(reason).Inc() }
func (m *Metrics) EventDispatched(topic string) { m.EventsDispatched.WithLabelValues(topic).Inc() }
func (m *Metrics) HandlerPanicked(topic string) { m.HandlerPanics.WithLabelValues(topic).Inc() }

// RequestCompleted counts one post ("offledger", "onledger") or view call.
func (m *Metrics) RequestCompleted(kind, name, outcome string) {
	m.Requests.WithLabelValues(kind, name, outcome).Inc()
}
