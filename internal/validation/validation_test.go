package validation

import (
	"errors"
	"testing"

	"github.com/kjstillabower/weather-proxy/internal/models"
)

// TestParseCoordinates verifies that finite numeric pairs parse and that
// non-numeric or non-finite values are rejected with ErrInvalidCoordinate.
func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		lat     string
		lon     string
		want    models.CoordinateQuery
		wantErr error
	}{
		{"valid", "39.10", "-84.51", models.CoordinateQuery{Lat: 39.1, Lon: -84.51}, nil},
		{"integers", "0", "180", models.CoordinateQuery{Lat: 0, Lon: 180}, nil},
		{"whitespace trimmed", " 12.5 ", "\t-3", models.CoordinateQuery{Lat: 12.5, Lon: -3}, nil},
		{"exponent", "1e1", "2E0", models.CoordinateQuery{Lat: 10, Lon: 2}, nil},
		{"non-numeric lat", "abc", "10", models.CoordinateQuery{}, ErrInvalidCoordinate},
		{"non-numeric lon", "10", "east", models.CoordinateQuery{}, ErrInvalidCoordinate},
		{"NaN", "NaN", "10", models.CoordinateQuery{}, ErrInvalidCoordinate},
		{"infinity", "10", "Inf", models.CoordinateQuery{}, ErrInvalidCoordinate},
		{"overflow", "1e400", "10", models.CoordinateQuery{}, ErrInvalidCoordinate},
		{"trailing junk", "10x", "10", models.CoordinateQuery{}, ErrInvalidCoordinate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCoordinates(tt.lat, tt.lon)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseCoordinates(%q, %q) error = %v, want %v", tt.lat, tt.lon, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCoordinates(%q, %q) unexpected error: %v", tt.lat, tt.lon, err)
			}
			if got != tt.want {
				t.Errorf("ParseCoordinates(%q, %q) = %+v, want %+v", tt.lat, tt.lon, got, tt.want)
			}
		})
	}
}

func TestNormalizeUnits(t *testing.T) {
	if got := NormalizeUnits("  METRIC "); got != models.UnitsMetric {
		t.Errorf("NormalizeUnits = %q, want metric", got)
	}
	if got := NormalizeUnits("Kelvin"); got != "kelvin" {
		t.Errorf("NormalizeUnits passes unknown values through, got %q", got)
	}
}

func TestValidateUnits(t *testing.T) {
	for _, in := range []string{"standard", "Metric", " imperial"} {
		if _, err := ValidateUnits(in); err != nil {
			t.Errorf("ValidateUnits(%q) unexpected error: %v", in, err)
		}
	}
	for _, in := range []string{"", "kelvin", "celsius"} {
		if _, err := ValidateUnits(in); !errors.Is(err, ErrInvalidUnits) {
			t.Errorf("ValidateUnits(%q) error = %v, want ErrInvalidUnits", in, err)
		}
	}
}
