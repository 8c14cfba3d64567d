package canvas

import "context"

const (
	// MetricAuthOutcomes counts authentication attempts by outcome and text code.
	MetricAuthOutcomes = "canvas_auth_outcomes_total"
	// MetricProfileLoadSeconds observes identity lookup latency.
	MetricProfileLoadSeconds = "canvas_profile_load_seconds"
)

// MetricsRecorder receives counters and histograms from the authenticator.
type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, delta int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

// NopMetricsRecorder drops every measurement.
type NopMetricsRecorder struct{}

func (NopMetricsRecorder) IncCounter(context.Context, string, int64, map[string]string) {}

func (NopMetricsRecorder) ObserveHistogram(context.Context, string, float64, map[string]string) {}
