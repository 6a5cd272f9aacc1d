package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kjstillabower/weather-proxy/internal/observability"
	"github.com/kjstillabower/weather-proxy/internal/reqctx"
)

func TestMiddleware_CorrelationIDGenerated(t *testing.T) {
	upstream := newFakeUpstream(t, http.StatusOK, `{}`)
	router := newTestRouter(t, testConfig(upstream.server.URL), nil)

	w := doGet(t, router, "/api")

	if w.Header().Get("X-Correlation-ID") == "" {
		t.Error("X-Correlation-ID header missing")
	}
	calls := upstream.calls()
	if len(calls) != 1 {
		t.Fatalf("upstream calls = %d, want 1", len(calls))
	}
}

func TestMiddleware_CorrelationIDPropagated(t *testing.T) {
	var upstreamHeader string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamHeader = r.Header.Get("X-Correlation-ID")
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()
	router := newTestRouter(t, testConfig(upstream.URL), nil)

	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	req.Header.Set("X-Correlation-ID", "client-provided-id")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Correlation-ID"); got != "client-provided-id" {
		t.Errorf("X-Correlation-ID = %q, want client-provided-id", got)
	}
	if upstreamHeader != "client-provided-id" {
		t.Errorf("upstream X-Correlation-ID = %q, want client-provided-id", upstreamHeader)
	}
}

func TestMiddleware_StoresLoggerAndID(t *testing.T) {
	var gotID string
	var gotLogger *zap.Logger
	router := mux.NewRouter()
	router.Use(CorrelationIDMiddleware(zap.NewNop()))
	router.HandleFunc("/probe", func(w http.ResponseWriter, r *http.Request) {
		gotID = reqctx.CorrelationID(r.Context())
		gotLogger = reqctx.Logger(r.Context())
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

	if gotID == "" || gotID != w.Header().Get("X-Correlation-ID") {
		t.Errorf("context correlation ID = %q, header = %q", gotID, w.Header().Get("X-Correlation-ID"))
	}
	if gotLogger == nil {
		t.Error("request logger missing from context")
	}
}

func TestMiddleware_MetricsRecordsUpstreamStatus(t *testing.T) {
	upstream := newFakeUpstream(t, http.StatusNotFound, `{"message":"city not found"}`)
	router := newTestRouter(t, testConfig(upstream.server.URL), nil)

	before := testutil.ToFloat64(observability.HTTPRequestsTotal.WithLabelValues("GET", "/api", "4xx"))
	doGet(t, router, "/api?city=Atlantis&state=ZZ")
	after := testutil.ToFloat64(observability.HTTPRequestsTotal.WithLabelValues("GET", "/api", "4xx"))

	if after-before != 1 {
		t.Errorf("httpRequestsTotal{route=/api,statusCode=4xx} delta = %v, want 1", after-before)
	}
}

func TestMiddleware_InFlightReturnsToZero(t *testing.T) {
	upstream := newFakeUpstream(t, http.StatusOK, `{}`)
	router := newTestRouter(t, testConfig(upstream.server.URL), nil)

	doGet(t, router, "/api")

	if got := InFlightCount(); got != 0 {
		t.Errorf("InFlightCount() = %d after request completed, want 0", got)
	}
}

func TestGetRoute(t *testing.T) {
	tests := map[string]string{
		"/api":           "/api",
		"/health":        "/health",
		"/metrics":       "/metrics",
		"/":              "static",
		"/app.js":        "static",
		"/../etc/passwd": "static",
	}
	for path, want := range tests {
		req := httptest.NewRequest(http.MethodGet, "http://localhost/", nil)
		req.URL.Path = path
		if got := getRoute(req); got != want {
			t.Errorf("getRoute(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestStatusCodeString(t *testing.T) {
	if got := statusCodeString(404); got != "4xx" {
		t.Errorf("statusCodeString(404) = %q, want 4xx", got)
	}
	if got := statusCodeString(200); got != "2xx" {
		t.Errorf("statusCodeString(200) = %q, want 2xx", got)
	}
}
