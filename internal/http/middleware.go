package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/kjstillabower/weather-proxy/internal/observability"
	"github.com/kjstillabower/weather-proxy/internal/reqctx"
)

// CorrelationIDMiddleware reuses the caller's X-Correlation-ID or mints one, echoes it
// back, and stores it with a tagged logger in the request context.
func CorrelationIDMiddleware(logger *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			corrID := strings.TrimSpace(r.Header.Get("X-Correlation-ID"))
			if corrID == "" {
				corrID = uuid.New().String()
			}

			w.Header().Set("X-Correlation-ID", corrID)

			ctx := reqctx.WithCorrelationID(r.Context(), corrID)
			ctx = reqctx.WithLogger(ctx, logger.With(zap.String("correlation_id", corrID)))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// MetricsMiddleware records request counts, latency and in-flight requests.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTPRequestsInFlight.Inc()
		globalInFlightTracker.Increment()
		defer func() {
			globalInFlightTracker.Decrement()
			observability.HTTPRequestsInFlight.Dec()
		}()

		recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(recorder, r)

		duration := time.Since(start).Seconds()
		route := getRoute(r)
		method := r.Method
		statusCode := statusCodeString(recorder.statusCode)

		observability.HTTPRequestsTotal.WithLabelValues(method, route, statusCode).Inc()
		observability.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration)
	})
}

// getRoute maps paths to a small label set; every static asset shares one label.
func getRoute(r *http.Request) string {
	switch r.URL.Path {
	case "/api", "/health", "/metrics":
		return r.URL.Path
	default:
		return "static"
	}
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

func statusCodeString(code int) string {
	return fmt.Sprintf("%dxx", code/100)
}
