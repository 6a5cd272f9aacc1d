package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/weather-proxy/internal/lifecycle"
	"github.com/kjstillabower/weather-proxy/internal/models"
	"github.com/kjstillabower/weather-proxy/internal/reqctx"
	"github.com/kjstillabower/weather-proxy/internal/service"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	weatherService *service.WeatherService
	logger         *zap.Logger
}

// NewHandler returns a new Handler.
func NewHandler(weatherService *service.WeatherService, logger *zap.Logger) *Handler {
	return &Handler{
		weatherService: weatherService,
		logger:         logger,
	}
}

// GetAPI handles GET /api. Upstream responses are relayed byte for byte with their
// status; only errors the proxy detects itself use the JSON error envelope.
func (h *Handler) GetAPI(w http.ResponseWriter, r *http.Request) {
	resp, err := h.weatherService.Lookup(r.Context(), r.URL.Query())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeUpstream(w, resp)
}

// GetHealth handles GET /health.
// Decision order: shutting-down > misconfigured > degraded > healthy.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	status, statusCode := "healthy", http.StatusOK
	switch {
	case lifecycle.IsShuttingDown():
		status, statusCode = "shutting-down", http.StatusServiceUnavailable
	case !h.weatherService.Configured():
		status, statusCode = "misconfigured", http.StatusServiceUnavailable
	case h.weatherService.Degraded():
		status, statusCode = "degraded", http.StatusServiceUnavailable
	}
	writeJSON(w, statusCode, map[string]interface{}{
		"status":    status,
		"service":   "weather-proxy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    int64(lifecycle.Uptime().Seconds()),
	})
}

// writeUpstream relays an upstream response without re-encoding it. The content type
// defaults to JSON when upstream sent none.
func writeUpstream(w http.ResponseWriter, resp models.UpstreamResponse) {
	contentType := resp.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(resp.Body)
}

// writeJSON writes a JSON response with the specified HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an error response in the standard error format with code, message,
// and requestId (correlation ID) if available in request context.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":      code,
			"message":   message,
			"requestId": reqctx.CorrelationID(r.Context()),
		},
	})
}

// writeServiceError maps a lookup error to its status and code. Anything that is not a
// *service.Error is reported as an upstream failure. The service has already logged it.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *service.Error
	if !errors.As(err, &apiErr) {
		apiErr = service.ErrUpstreamUnreachable
	}
	writeError(w, r, apiErr.Status, apiErr.Code, apiErr.Message)
}
