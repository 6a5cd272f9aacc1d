//go:build integration
// +build integration

package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kjstillabower/weather-proxy/internal/models"
	"github.com/kjstillabower/weather-proxy/internal/testhelpers"
)

func TestOpenWeatherClient_Fetch_ByName_Integration(t *testing.T) {
	cfg := testhelpers.GetIntegrationConfig(t)
	c := testhelpers.SetupIntegrationClient(t, cfg)

	resp, err := c.Fetch(context.Background(), models.WeatherQuery{
		Location: models.NameQuery{City: "Springboro", State: "OH", Country: "US"},
		Units:    models.UnitsImperial,
	})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("StatusCode = %d, body = %s", resp.StatusCode, resp.Body)
	}

	var report models.Report
	if err := json.Unmarshal(resp.Body, &report); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if report.Main.Temp == nil {
		t.Error("main.temp missing from live response")
	}
}

func TestOpenWeatherClient_Fetch_ByCoordinates_Integration(t *testing.T) {
	cfg := testhelpers.GetIntegrationConfig(t)
	c := testhelpers.SetupIntegrationClient(t, cfg)

	resp, err := c.Fetch(context.Background(), models.WeatherQuery{
		Location: models.CoordinateQuery{Lat: 39.1, Lon: -84.51},
		Units:    models.UnitsMetric,
	})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("StatusCode = %d, body = %s", resp.StatusCode, resp.Body)
	}
}

func TestProxy_UnknownCityRelaysProviderStatus_Integration(t *testing.T) {
	cfg := testhelpers.GetIntegrationConfig(t)
	router := testhelpers.SetupIntegrationRouter(t, cfg)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api?city=Qwxzzyville&state=ZZ&country=ZZ", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 relayed from provider; body = %s", rec.Code, rec.Body.String())
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("relayed body is not the provider JSON: %v", err)
	}
	if _, ok := body["message"]; !ok {
		t.Errorf("relayed body = %s, want provider message field", rec.Body.String())
	}
}
