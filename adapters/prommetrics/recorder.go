package prommetrics

import (
	"context"
	"strings"

	canvas "github.com/goliatone/go-auth-canvas"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Option customizes Recorder behavior.
type Option func(*options)

type options struct {
	namespace  string
	registerer prometheus.Registerer
	buckets    []float64
}

// WithNamespace prefixes every metric name.
func WithNamespace(namespace string) Option {
	return func(o *options) {
		o.namespace = strings.TrimSpace(namespace)
	}
}

// WithRegisterer sets the registry the collectors are registered on.
// Defaults to prometheus.DefaultRegisterer.
func WithRegisterer(registerer prometheus.Registerer) Option {
	return func(o *options) {
		if registerer != nil {
			o.registerer = registerer
		}
	}
}

// WithBuckets overrides the profile lookup latency buckets.
func WithBuckets(buckets []float64) Option {
	return func(o *options) {
		if len(buckets) > 0 {
			o.buckets = buckets
		}
	}
}

// Recorder implements canvas.MetricsRecorder with Prometheus collectors.
type Recorder struct {
	outcomes    *prometheus.CounterVec
	profileLoad *prometheus.HistogramVec
}

// New registers the canvas collectors and returns a recorder. It panics if
// the collectors are already registered, like promauto does.
func New(opts ...Option) *Recorder {
	o := options{
		registerer: prometheus.DefaultRegisterer,
		// 25ms .. ~6.4s
		buckets: prometheus.ExponentialBuckets(0.025, 2, 9),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	factory := promauto.With(o.registerer)

	return &Recorder{
		outcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: o.namespace,
				Name:      canvas.MetricAuthOutcomes,
				Help:      "Total number of canvas signed request attempts by outcome and text_code.",
			},
			[]string{"outcome", "text_code"},
		),
		profileLoad: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: o.namespace,
				Name:      canvas.MetricProfileLoadSeconds,
				Help:      "Latency of identity service profile lookups in seconds.",
				Buckets:   o.buckets,
			},
			[]string{"status"},
		),
	}
}

// IncCounter implements canvas.MetricsRecorder. Unknown names are ignored.
func (r *Recorder) IncCounter(_ context.Context, name string, delta int64, tags map[string]string) {
	if r == nil || delta <= 0 {
		return
	}
	if name != canvas.MetricAuthOutcomes {
		return
	}
	r.outcomes.WithLabelValues(tags["outcome"], tags["text_code"]).Add(float64(delta))
}

// ObserveHistogram implements canvas.MetricsRecorder. Unknown names are ignored.
func (r *Recorder) ObserveHistogram(_ context.Context, name string, value float64, tags map[string]string) {
	if r == nil {
		return
	}
	if name != canvas.MetricProfileLoadSeconds {
		return
	}
	r.profileLoad.WithLabelValues(tags["status"]).Observe(value)
}

var _ canvas.MetricsRecorder = (*Recorder)(nil)
