// Package apiclient calls the proxy's /api endpoint on behalf of command-line clients.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kjstillabower/weather-proxy/internal/models"
)

// DefaultURL is the proxy endpoint used when WEATHER_API_URL is unset.
const DefaultURL = "http://localhost:3001/api"

// Request is what a client asks the proxy for. Empty fields are left out so the
// proxy's configured defaults apply.
type Request struct {
	City        string
	State       string
	Country     string
	Coordinates *models.CoordinateQuery
	Units       models.Units
}

// Values encodes r as /api query parameters. Coordinates, when set, replace the name fields.
func (r Request) Values() url.Values {
	v := url.Values{}
	if r.Coordinates != nil {
		v.Set("lat", r.Coordinates.LatString())
		v.Set("lon", r.Coordinates.LonString())
	} else {
		setIfNotEmpty(v, "city", r.City)
		setIfNotEmpty(v, "state", r.State)
		setIfNotEmpty(v, "country", r.Country)
	}
	setIfNotEmpty(v, "units", string(r.Units))
	return v
}

func setIfNotEmpty(v url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		v.Set(key, value)
	}
}

// HTTPError is a non-2xx answer from the proxy, body included as text.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// Client calls a weather proxy.
type Client struct {
	baseURL *url.URL
	client  *http.Client
}

// New returns a Client for the /api endpoint at baseURL.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid API URL %q: scheme must be http or https", baseURL)
	}
	return &Client{
		baseURL: u,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// URL returns the full request URL for r.
func (c *Client) URL(r Request) string {
	u := *c.baseURL
	params := u.Query()
	for k, vs := range r.Values() {
		params[k] = vs
	}
	u.RawQuery = params.Encode()
	return u.String()
}

// Get fetches current weather. Non-2xx responses become *HTTPError.
func (c *Client) Get(ctx context.Context, r Request) (models.Report, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(r), nil)
	if err != nil {
		return models.Report{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return models.Report{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Report{}, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.Report{}, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var report models.Report
	if err := json.Unmarshal(body, &report); err != nil {
		return models.Report{}, fmt.Errorf("parse response: %w", err)
	}
	return report, nil
}
