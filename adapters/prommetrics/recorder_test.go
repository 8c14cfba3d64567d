package prommetrics

import (
	"context"
	"testing"

	canvas "github.com/goliatone/go-auth-canvas"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCountsOutcomes(t *testing.T) {
	registry := prometheus.NewRegistry()
	recorder := New(WithRegisterer(registry))

	ctx := context.Background()
	recorder.IncCounter(ctx, canvas.MetricAuthOutcomes, 1, map[string]string{
		"outcome":   "rejected",
		"text_code": canvas.TextCodeSignatureMismatch,
	})
	recorder.IncCounter(ctx, canvas.MetricAuthOutcomes, 2, map[string]string{
		"outcome":   "rejected",
		"text_code": canvas.TextCodeSignatureMismatch,
	})
	recorder.IncCounter(ctx, canvas.MetricAuthOutcomes, 1, map[string]string{
		"outcome": "authenticated",
	})

	assert.Equal(t, float64(3), testutil.ToFloat64(
		recorder.outcomes.WithLabelValues("rejected", canvas.TextCodeSignatureMismatch),
	))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		recorder.outcomes.WithLabelValues("authenticated", ""),
	))
}

func TestRecorderIgnoresUnknownMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	recorder := New(WithRegisterer(registry))

	recorder.IncCounter(context.Background(), "unknown_total", 1, nil)
	recorder.ObserveHistogram(context.Background(), "unknown_seconds", 1, nil)

	assert.Equal(t, 0, testutil.CollectAndCount(recorder.outcomes))
	assert.Equal(t, 0, testutil.CollectAndCount(recorder.profileLoad))
}

func TestRecorderObservesProfileLoad(t *testing.T) {
	registry := prometheus.NewRegistry()
	recorder := New(WithRegisterer(registry), WithNamespace("app"))

	recorder.ObserveHistogram(context.Background(), canvas.MetricProfileLoadSeconds, 0.12, map[string]string{"status": "ok"})
	recorder.ObserveHistogram(context.Background(), canvas.MetricProfileLoadSeconds, 0.5, map[string]string{"status": "error"})

	assert.Equal(t, 2, testutil.CollectAndCount(recorder.profileLoad))

	families, err := registry.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, family := range families {
		names[family.GetName()] = true
	}
	assert.True(t, names["app_"+canvas.MetricProfileLoadSeconds])
}

func TestRecorderDuplicateRegistrationPanics(t *testing.T) {
	registry := prometheus.NewRegistry()
	New(WithRegisterer(registry))

	assert.Panics(t, func() {
		New(WithRegisterer(registry))
	})
}
