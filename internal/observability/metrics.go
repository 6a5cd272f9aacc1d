package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry *prometheus.Registry

	// HTTP request rate. Watch for: sudden drops (service down) or spikes (traffic surge).
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTP request latency per request. Dominated by upstream latency on /api.
	HTTPRequestDuration *prometheus.HistogramVec

	// Concurrent requests in flight. Watch for: saturation during upstream slowness.
	HTTPRequestsInFlight prometheus.Gauge

	// OpenWeather calls by outcome class (success, client_error, server_error, unreachable).
	WeatherAPICallsTotal *prometheus.CounterVec

	// External API latency per request. Watch for: p95 > 2s (upstream degradation).
	WeatherAPIDuration *prometheus.HistogramVec

	// Proxy lookups by resolved location kind (coordinates, name).
	WeatherQueriesTotal *prometheus.CounterVec

	// Lookups rejected before any upstream call, by error code (MISSING_LOCATION, ...).
	WeatherQueryErrorsTotal *prometheus.CounterVec

	// Upstream transport failures by category (timeout, network, unknown).
	WeatherAPIErrorsTotal *prometheus.CounterVec
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "httpRequestsTotal",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "statusCode"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "httpRequestDurationSeconds",
			Help:    "HTTP request latency in seconds (per request)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "httpRequestsInFlight",
			Help: "Number of HTTP requests currently being served",
		},
	)
	WeatherAPICallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherApiCallsTotal",
			Help: "Total number of OpenWeather API calls",
		},
		[]string{"status"},
	)
	WeatherAPIDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weatherApiDurationSeconds",
			Help:    "OpenWeather API latency in seconds (per request)",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"status"},
	)
	WeatherQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherQueriesTotal",
			Help: "Total number of resolved weather lookups by location kind",
		},
		[]string{"kind"},
	)
	WeatherQueryErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherQueryErrorsTotal",
			Help: "Weather lookups rejected before reaching the upstream provider",
		},
		[]string{"code"},
	)
	WeatherAPIErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherApiErrorsTotal",
			Help: "OpenWeather transport failures by category",
		},
		[]string{"category"},
	)

	registry.MustRegister(
		HTTPRequestsTotal, HTTPRequestDuration, HTTPRequestsInFlight,
		WeatherAPICallsTotal, WeatherAPIDuration, WeatherAPIErrorsTotal,
		WeatherQueriesTotal, WeatherQueryErrorsTotal,
	)
}

// RecordWeatherQuery counts a resolved lookup by location kind.
func RecordWeatherQuery(kind string) {
	WeatherQueriesTotal.WithLabelValues(kind).Inc()
}

// RecordQueryError counts a lookup rejected before the upstream call.
func RecordQueryError(code string) {
	WeatherQueryErrorsTotal.WithLabelValues(code).Inc()
}

// MetricsHandler returns an http.Handler that serves application and runtime metrics.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
