// Package observability provides OpenTelemetry instrumentation for tracing and metrics.
package observability

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// InitMetrics initializes the OpenTelemetry metrics provider with a Prometheus exporter.
// It returns the HTTP handler for the /metrics endpoint and a shutdown function.
// The shutdown function should be called on application exit for graceful cleanup.
func InitMetrics() (http.Handler, func(context.Context) error, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	otel.SetMeterProvider(provider)

	return promhttp.Handler(), provider.Shutdown, nil
}

// HTTPMetrics bundles the request-level instruments recorded by the server
// middleware.
type HTTPMetrics struct {
	Requests metric.Int64Counter
	Duration metric.Float64Histogram
}

// NewHTTPMetrics registers the request counter and latency histogram on the
// global meter provider.
func NewHTTPMetrics() (*HTTPMetrics, error) {
	meter := otel.Meter("gdys/server")

	requests, err := meter.Int64Counter("gdys_http_requests_total",
		metric.WithDescription("Number of HTTP requests handled"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("gdys_http_request_duration_seconds",
		metric.WithDescription("HTTP request latency in seconds"))
	if err != nil {
		return nil, err
	}
	return &HTTPMetrics{Requests: requests, Duration: duration}, nil
}
