//go:build integration
// +build integration

// Package testhelpers builds live components for tests that call the real provider.
package testhelpers

import (
	"net/http"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/kjstillabower/weather-proxy/internal/client"
	"github.com/kjstillabower/weather-proxy/internal/config"
	httphandler "github.com/kjstillabower/weather-proxy/internal/http"
	"github.com/kjstillabower/weather-proxy/internal/service"
)

// IntegrationTestConfig holds configuration for integration tests.
type IntegrationTestConfig struct {
	APIKey string
	APIURL string
}

// GetIntegrationConfig reads OPENWEATHER_API_KEY and OPENWEATHER_API_URL.
// Skips the test when no key is set.
func GetIntegrationConfig(t *testing.T) IntegrationTestConfig {
	t.Helper()
	apiKey := os.Getenv("OPENWEATHER_API_KEY")
	if apiKey == "" {
		t.Skip("OPENWEATHER_API_KEY not set, skipping integration test")
	}

	apiURL := os.Getenv("OPENWEATHER_API_URL")
	if apiURL == "" {
		apiURL = config.DefaultWeatherAPIURL
	}

	return IntegrationTestConfig{APIKey: apiKey, APIURL: apiURL}
}

// SetupIntegrationClient creates a live upstream client.
func SetupIntegrationClient(t *testing.T, cfg IntegrationTestConfig) *client.OpenWeatherClient {
	t.Helper()
	c, err := client.NewOpenWeatherClient(cfg.APIKey, cfg.APIURL, 5*time.Second)
	if err != nil {
		t.Fatalf("NewOpenWeatherClient() error = %v", err)
	}
	return c
}

// SetupIntegrationRouter returns the full proxy router backed by the live provider,
// defaulting to Springboro, OH in imperial units.
func SetupIntegrationRouter(t *testing.T, cfg IntegrationTestConfig) http.Handler {
	t.Helper()
	logger := zaptest.NewLogger(t, zaptest.Level(zap.InfoLevel))
	svc := service.NewWeatherService(SetupIntegrationClient(t, cfg), config.Config{
		WeatherAPIKey:  cfg.APIKey,
		WeatherAPIURL:  cfg.APIURL,
		DefaultCity:    "Springboro",
		DefaultState:   "OH",
		DefaultCountry: "US",
		DefaultUnits:   "imperial",
	})
	return httphandler.NewRouter(httphandler.NewHandler(svc, logger), logger, nil)
}
