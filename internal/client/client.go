package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kjstillabower/weather-proxy/internal/models"
	"github.com/kjstillabower/weather-proxy/internal/observability"
	"github.com/kjstillabower/weather-proxy/internal/reqctx"
)

// WeatherClient issues one current-weather lookup against the upstream provider.
type WeatherClient interface {
	Fetch(ctx context.Context, q models.WeatherQuery) (models.UpstreamResponse, error)
}

// ErrUpstreamUnreachable wraps transport-level failures: DNS, connect, timeout, body read.
var ErrUpstreamUnreachable = errors.New("upstream unreachable")

// OpenWeatherClient calls the OpenWeather current weather endpoint. It never retries and
// never interprets the response: any HTTP answer is returned as-is.
type OpenWeatherClient struct {
	apiKey string
	apiURL *url.URL
	client *http.Client
}

// NewOpenWeatherClient returns a client for apiURL. timeout bounds each call including
// body read; zero leaves the transport defaults in charge.
func NewOpenWeatherClient(apiKey, apiURL string, timeout time.Duration) (*OpenWeatherClient, error) {
	u, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid API URL %q: scheme must be http or https", apiURL)
	}
	return &OpenWeatherClient{
		apiKey: apiKey,
		apiURL: u,
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Fetch sends q upstream and returns the status code and raw body.
func (c *OpenWeatherClient) Fetch(ctx context.Context, q models.WeatherQuery) (models.UpstreamResponse, error) {
	start := time.Now()

	req, err := c.buildRequest(ctx, q)
	if err != nil {
		return models.UpstreamResponse{}, fmt.Errorf("build request: %w", err)
	}

	if corrID := reqctx.CorrelationID(ctx); corrID != "" {
		req.Header.Set("X-Correlation-ID", corrID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.recordFailure(start, err)
		return models.UpstreamResponse{}, fmt.Errorf("%w: %w", ErrUpstreamUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordFailure(start, err)
		return models.UpstreamResponse{}, fmt.Errorf("%w: read response body: %w", ErrUpstreamUnreachable, err)
	}

	status := statusLabel(resp.StatusCode)
	observability.WeatherAPICallsTotal.WithLabelValues(status).Inc()
	observability.WeatherAPIDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())

	return models.UpstreamResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

func (c *OpenWeatherClient) recordFailure(start time.Time, err error) {
	observability.WeatherAPICallsTotal.WithLabelValues("unreachable").Inc()
	observability.WeatherAPIDuration.WithLabelValues("unreachable").Observe(time.Since(start).Seconds())
	observability.WeatherAPIErrorsTotal.WithLabelValues(string(CategorizeError(err))).Inc()
}

// buildRequest encodes q as either lat/lon or q=<text>, never both.
func (c *OpenWeatherClient) buildRequest(ctx context.Context, q models.WeatherQuery) (*http.Request, error) {
	u := *c.apiURL
	params := u.Query()
	switch loc := q.Location.(type) {
	case models.CoordinateQuery:
		params.Set("lat", loc.LatString())
		params.Set("lon", loc.LonString())
	case models.NameQuery:
		params.Set("q", loc.Text())
	default:
		return nil, fmt.Errorf("unsupported location %T", q.Location)
	}
	params.Set("appid", c.apiKey)
	params.Set("units", string(q.Units))
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	return req, nil
}

func statusLabel(statusCode int) string {
	if statusCode >= 200 && statusCode < 300 {
		return "success"
	}
	if statusCode == 429 {
		return "rate_limited"
	}
	if statusCode >= 400 && statusCode < 500 {
		return "client_error"
	}
	if statusCode >= 500 {
		return "server_error"
	}
	return "other"
}
