package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/weather-proxy/internal/client"
	"github.com/kjstillabower/weather-proxy/internal/config"
	httphandler "github.com/kjstillabower/weather-proxy/internal/http"
	"github.com/kjstillabower/weather-proxy/internal/lifecycle"
	"github.com/kjstillabower/weather-proxy/internal/observability"
	"github.com/kjstillabower/weather-proxy/internal/service"
	"github.com/kjstillabower/weather-proxy/web"
)

func main() {
	logger, err := observability.NewLogger("weather-proxy")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}
	if !cfg.HasCredential() {
		logger.Warn("OPENWEATHER_API_KEY is not set; /api will answer 500 SERVER_MISCONFIGURED")
	}

	srv, err := newServer(*cfg, logger)
	if err != nil {
		logger.Fatal("server setup", zap.Error(err))
	}

	go func() {
		logger.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("weather_api_url", cfg.WeatherAPIURL),
			zap.String("default_units", cfg.DefaultUnits),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	<-ctx.Done()
	stop()

	logger.Info("graceful shutdown triggered")
	lifecycle.SetShuttingDown(true)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	inFlight := httphandler.InFlightCount()
	logger.Info("waiting for in-flight requests", zap.Int64("count", inFlight))
	waitCtx, waitCancel := context.WithTimeout(context.Background(), cfg.ShutdownInFlightTimeout)
	defer waitCancel()
	if err := httphandler.WaitForInFlight(waitCtx, cfg.ShutdownInFlightCheckInterval); err != nil {
		logger.Warn("in-flight requests not completed", zap.Error(err), zap.Int64("remaining", httphandler.InFlightCount()))
	}

	logger.Info("shutdown complete", zap.Duration("drain", lifecycle.DrainDuration()))
	if err := observability.FlushTelemetry(context.Background(), logger); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry flush: %v\n", err)
	}
}

// newServer wires the upstream client, proxy service and router into an http.Server.
func newServer(cfg config.Config, logger *zap.Logger) (*http.Server, error) {
	weatherClient, err := client.NewOpenWeatherClient(cfg.WeatherAPIKey, cfg.WeatherAPIURL, cfg.WeatherAPITimeout)
	if err != nil {
		return nil, fmt.Errorf("weather client: %w", err)
	}
	weatherService := service.NewWeatherService(weatherClient, cfg)
	handler := httphandler.NewHandler(weatherService, logger)
	router := httphandler.NewRouter(handler, logger, web.Static())

	srv := &http.Server{
		Addr:        ":" + cfg.ServerPort,
		Handler:     router,
		ReadTimeout: 10 * time.Second,
	}
	// A zero upstream timeout leaves the relay unbounded too.
	if cfg.WeatherAPITimeout > 0 {
		srv.WriteTimeout = cfg.WeatherAPITimeout + 5*time.Second
	}
	return srv, nil
}
