package monitoring

import (
	"context"
	"net/http"
	"sync"
	"time"

	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

var (
	exporter                 *prometheus.Exporter
	meterProvider            *sdkmetric.MeterProvider
	meterName                string
	requestCounter           metric.Int64Counter
	latencyHist              metric.Float64Histogram
	businessEventCounter     metric.Int64Counter
	importDurationHist       metric.Float64Histogram
	dbLatencyHist            metric.Float64Histogram
	cacheEventCounter        metric.Int64Counter
	projectionLatencyHist    metric.Float64Histogram
	projectionFailureCounter metric.Int64Counter
	initOnce                 sync.Once
	httpHandler              http.Handler
)

// Config captures the minimal telemetry setup parameters.
type Config struct {
	ServiceName   string
	ResourceAttrs map[string]string
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter and
// runtime instrumentation.
func Setup(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "unknown-service"
	}

	var attrs []attribute.KeyValue
	attrs = append(attrs, semconv.ServiceName(cfg.ServiceName))
	for k, v := range cfg.ResourceAttrs {
		attrs = append(attrs, attribute.String(k, v))
	}

	var initErr error

	initOnce.Do(func() {
		exp, err := prometheus.New(prometheus.WithoutUnits())
		if err != nil {
			initErr = err
			return
		}

		res, err := resource.Merge(
			resource.Default(),
			resource.NewSchemaless(attrs...),
		)
		if err != nil {
			initErr = err
			return
		}

		meterName = cfg.ServiceName
		meterProvider = sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(exp),
			sdkmetric.WithResource(res),
		)

		otel.SetMeterProvider(meterProvider)
		exporter = exp
		httpHandler = promhttp.Handler()

		meter := meterProvider.Meter(meterName)
		requestCounter, err = meter.Int64Counter(
			"http_requests_total",
			metric.WithDescription("Total number of HTTP requests processed"),
		)
		if err != nil {
			initErr = err
			return
		}

		latencyHist, err = meter.Float64Histogram(
			"http_request_duration_seconds",
			metric.WithDescription("HTTP request duration in seconds"),
		)
		if err != nil {
			initErr = err
			return
		}

		businessEventCounter, err = meter.Int64Counter(
			"business_events_total",
			metric.WithDescription("Business event counts by action and outcome"),
		)
		if err != nil {
			initErr = err
			return
		}

		importDurationHist, err = meter.Float64Histogram(
			"import_duration_seconds",
			metric.WithDescription("End-to-end spreadsheet import durations"),
		)
		if err != nil {
			initErr = err
			return
		}

		dbLatencyHist, err = meter.Float64Histogram(
			"db_latency_seconds",
			metric.WithDescription("Database latency segmented by datastore and operation"),
		)
		if err != nil {
			initErr = err
			return
		}

		cacheEventCounter, err = meter.Int64Counter(
			"cache_events_total",
			metric.WithDescription("Cache hit/miss counts"),
		)
		if err != nil {
			initErr = err
			return
		}

		projectionLatencyHist, err = meter.Float64Histogram(
			"projection_latency_seconds",
			metric.WithDescription("Partner field projection latency by entity type"),
		)
		if err != nil {
			initErr = err
			return
		}

		projectionFailureCounter, err = meter.Int64Counter(
			"projection_failures_total",
			metric.WithDescription("Partner field projection failures grouped by reason"),
		)
		if err != nil {
			initErr = err
			return
		}

		// Start Go runtime metrics (goroutines, GC, etc.)
		_ = runtime.Start(
			runtime.WithMinimumReadMemStatsInterval(10*time.Second),
			runtime.WithMeterProvider(meterProvider),
		)
	})

	if initErr != nil {
		return nil, initErr
	}

	return func(ctx context.Context) error {
		if meterProvider != nil {
			return meterProvider.Shutdown(ctx)
		}
		return nil
	}, nil
}

// Handler returns the Prometheus /metrics handler.
func Handler() http.Handler {
	if httpHandler != nil {
		return httpHandler
	}
	return http.NotFoundHandler()
}

// HTTPMetricsMiddleware records request counts and latency.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requestCounter == nil || latencyHist == nil {
			next.ServeHTTP(w, r)
			return
		}

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		attrs := attributeSet(r.Method, r.URL.Path, recorder.status)
		requestCounter.Add(r.Context(), 1, metric.WithAttributes(attrs...))
		latencyHist.Record(r.Context(), time.Since(start).Seconds(), metric.WithAttributes(attrs...))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(statusCode int) {
	s.status = statusCode
	s.ResponseWriter.WriteHeader(statusCode)
}

func attributeSet(method, route string, status int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", status),
	}
}

// RecordBusinessEvent records domain KPIs like deal stage moves or imports.
func RecordBusinessEvent(ctx context.Context, action string, success bool) {
	if businessEventCounter == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("business.action", action),
		attribute.String("business.outcome", outcomeLabel(success)),
	}

	businessEventCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func outcomeLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

// RecordImportDuration logs how long a spreadsheet import took.
func RecordImportDuration(ctx context.Context, format string, duration time.Duration) {
	if importDurationHist == nil {
		return
	}

	importDurationHist.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("import.format", format),
	))
}

// RecordDBLatency records datastore read/write duration.
func RecordDBLatency(ctx context.Context, datastore, operation string, duration time.Duration) {
	if dbLatencyHist == nil {
		return
	}

	dbLatencyHist.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("db.name", datastore),
		attribute.String("db.operation", operation),
	))
}

// RecordCacheEvent increments cache hit/miss counters.
func RecordCacheEvent(ctx context.Context, cacheName string, hit bool) {
	if cacheEventCounter == nil {
		return
	}

	result := "miss"
	if hit {
		result = "hit"
	}

	cacheEventCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("cache.name", cacheName),
		attribute.String("cache.result", result),
	))
}

// RecordProjectionLatency tracks how long resolving and planning a partner
// field projection took.
func RecordProjectionLatency(ctx context.Context, entityType string, duration time.Duration) {
	if projectionLatencyHist == nil {
		return
	}

	projectionLatencyHist.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("projection.entity_type", entityType),
	))
}

// RecordProjectionFailure increments the failure counter with a reason label.
func RecordProjectionFailure(ctx context.Context, reason string) {
	if projectionFailureCounter == nil {
		return
	}

	projectionFailureCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("failure.reason", reason),
	))
}
