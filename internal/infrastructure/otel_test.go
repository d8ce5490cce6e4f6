package infrastructure

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func TestOTelInitialization(t *testing.T) {
	providers, err := InitializeOTel(nil, testLogger())
	require.NoError(t, err)
	require.NotNil(t, providers)

	assert.Nil(t, providers.TracerProvider, "tracing is off by default")
	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.PrometheusHTTP)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, providers.Shutdown(ctx))
}

func TestOTelConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		config  *OTelConfig
		wantErr bool
	}{
		{
			name: "stdout tracing with prometheus",
			config: &OTelConfig{
				ServiceName:    "test-service",
				ServiceVersion: "v1.0.0",
				Environment:    "test",
				TraceExporter:  "stdout",
				MetricExporter: "prometheus",
				EnableMetrics:  true,
				EnableTracing:  true,
				SampleRatio:    1.0,
			},
		},
		{
			name: "everything disabled",
			config: &OTelConfig{
				ServiceName:    "test-service",
				ServiceVersion: "v1.0.0",
				TraceExporter:  "none",
				MetricExporter: "none",
			},
		},
		{
			name: "unknown trace exporter",
			config: &OTelConfig{
				TraceExporter: "jaeger",
				EnableTracing: true,
			},
			wantErr: true,
		},
		{
			name: "unknown metric exporter",
			config: &OTelConfig{
				MetricExporter: "statsd",
				EnableMetrics:  true,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			providers, err := InitializeOTel(tt.config, testLogger())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, providers.Tracer)
			assert.NotNil(t, providers.Meter)
			assert.Equal(t, tt.config.EnableTracing, providers.TracerProvider != nil)
			assert.Equal(t, tt.config.EnableMetrics, providers.MeterProvider != nil)
			assert.NoError(t, providers.Shutdown(context.Background()))
		})
	}
}

func TestTraceCorrelation(t *testing.T) {
	providers, err := InitializeOTel(&OTelConfig{
		ServiceName:   "test",
		TraceExporter: "stdout",
		EnableTracing: true,
		SampleRatio:   1.0,
	}, testLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	ctx, span := otel.Tracer("test").Start(context.Background(), "test-operation")
	defer span.End()

	assert.Equal(t, span.SpanContext().TraceID().String(), TraceIDFromContext(ctx))
	assert.Empty(t, TraceIDFromContext(context.Background()))

	ctx, child := StartSpan(ctx, "catalog", "catalog.load")
	defer child.End()
	RecordError(ctx, errors.New("boom"))
	assert.True(t, child.IsRecording())
}

// collect returns the int64 sum for name across all data points.
func collect(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					total += dp.Value
				}
			}
		}
	}
	return total
}

func TestBusinessMetricsRecording(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := CreateBusinessMetrics(mp.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	RecordCatalogCache(ctx, metrics, 2023, false)
	RecordCatalogCache(ctx, metrics, 2023, true)
	RecordCatalogCache(ctx, metrics, 2023, true)
	RecordSourceLoad(ctx, metrics, "catalog", 2023, 40*time.Millisecond, nil)
	RecordSourceLoad(ctx, metrics, "enrollment", 2019, time.Millisecond, errors.New("missing"))
	RecordCoercedScores(ctx, metrics, 2023, 3)
	RecordCoercedScores(ctx, metrics, 2023, 0)
	RecordAdmissionRequest(ctx, metrics, "query", 2023, "ok")
	RecordAdmissionCode(ctx, metrics, 2023, true)
	RecordAdmissionCode(ctx, metrics, 2023, false)

	assert.Equal(t, int64(2), collect(t, reader, "catalog_cache_hits_total"))
	assert.Equal(t, int64(1), collect(t, reader, "catalog_cache_misses_total"))
	assert.Equal(t, int64(1), collect(t, reader, "source_load_failures_total"))
	assert.Equal(t, int64(3), collect(t, reader, "coerced_score_values_total"))
	assert.Equal(t, int64(1), collect(t, reader, "admission_requests_total"))
	assert.Equal(t, int64(2), collect(t, reader, "admission_codes_total"))
}

func TestRecordHelpersNilMetrics(t *testing.T) {
	ctx := context.Background()
	assert.NotPanics(t, func() {
		RecordCatalogCache(ctx, nil, 2023, true)
		RecordSourceLoad(ctx, nil, "catalog", 2023, time.Second, nil)
		RecordCoercedScores(ctx, nil, 2023, 1)
		RecordAdmissionRequest(ctx, nil, "query", 2023, "ok")
		RecordAdmissionCode(ctx, nil, 2023, true)
	})
}

func TestPrometheusEndpoint(t *testing.T) {
	providers, err := InitializeOTel(DefaultOTelConfig(), testLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	server := httptest.NewServer(providers.PrometheusHTTP)
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
}
