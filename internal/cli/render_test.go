package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjstillabower/weather-proxy/internal/models"
)

func decodeReport(t *testing.T, body string) models.Report {
	t.Helper()
	var r models.Report
	require.NoError(t, json.Unmarshal([]byte(body), &r))
	return r
}

func TestRender_ClearSkyWithoutUnits(t *testing.T) {
	r := decodeReport(t, `{"weather":[{"main":"Clear"}],"main":{"temp":72.5,"feels_like":70.1}}`)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, r, ""))

	want := "\nWhat's it like outside?\n" +
		"Description: Clear\n" +
		"Temperature: 72.5\n" +
		"Feels Like: 70.1\n" +
		"Humidity: N/A\n" +
		"Wind Speed: N/A\n"
	assert.Equal(t, want, buf.String())
}

func TestRender_FullReportWithUnits(t *testing.T) {
	r := decodeReport(t, `{"name":"Springboro","sys":{"country":"US"},"weather":[{"main":"Clouds"}],"main":{"temp":18,"feels_like":17.25,"humidity":81},"wind":{"speed":4.1}}`)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, r, models.UnitsMetric))

	out := buf.String()
	assert.Contains(t, out, "Location: Springboro, US\n")
	assert.Contains(t, out, "Description: Clouds\n")
	assert.Contains(t, out, "Temperature: 18 °C\n")
	assert.Contains(t, out, "Feels Like: 17.25 °C\n")
	assert.Contains(t, out, "Humidity: 81%\n")
	assert.Contains(t, out, "Wind Speed: 4.1 m/s\n")
}

func TestRender_MissingFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, models.Report{}, models.UnitsImperial))

	out := buf.String()
	assert.Contains(t, out, "Description: N/A\n")
	assert.Contains(t, out, "Temperature: N/A\n")
	assert.Contains(t, out, "Feels Like: N/A\n")
	assert.NotContains(t, out, "Location:")
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "72.5", formatNumber(72.5))
	assert.Equal(t, "-3", formatNumber(-3))
	assert.Equal(t, "0.1", formatNumber(0.1))
	assert.Equal(t, "1000000", formatNumber(1e6))
}
