package http

import (
	"io/fs"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/kjstillabower/weather-proxy/internal/observability"
)

// NewRouter wires the proxy routes. static, when non-nil, is served at / for the
// browser client.
func NewRouter(handler *Handler, logger *zap.Logger, static fs.FS) *mux.Router {
	router := mux.NewRouter()
	router.Use(CorrelationIDMiddleware(logger))
	router.Use(MetricsMiddleware)
	router.HandleFunc("/api", handler.GetAPI).Methods(http.MethodGet)
	router.HandleFunc("/health", handler.GetHealth).Methods(http.MethodGet)
	router.Handle("/metrics", observability.MetricsHandler()).Methods(http.MethodGet)
	if static != nil {
		router.PathPrefix("/").Handler(http.FileServer(http.FS(static))).Methods(http.MethodGet, http.MethodHead)
	}
	return router
}
