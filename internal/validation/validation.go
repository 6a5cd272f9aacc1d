package validation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kjstillabower/weather-proxy/internal/models"
)

// ErrInvalidCoordinate is returned when lat or lon is not a finite number.
var ErrInvalidCoordinate = errors.New("invalid lat/lon")

// ErrIncompleteCoordinates is returned when only one of lat and lon is given.
var ErrIncompleteCoordinates = errors.New("lat and lon must be given together")

// ErrInvalidUnits is returned when units is not standard, metric or imperial.
var ErrInvalidUnits = errors.New("units must be one of standard, metric, imperial")

// ParseCoordinates parses a lat/lon pair. Surrounding whitespace is ignored;
// NaN and infinities are rejected.
func ParseCoordinates(lat, lon string) (models.CoordinateQuery, error) {
	latNum, err := parseFinite(lat)
	if err != nil {
		return models.CoordinateQuery{}, fmt.Errorf("%w: lat %q", ErrInvalidCoordinate, lat)
	}
	lonNum, err := parseFinite(lon)
	if err != nil {
		return models.CoordinateQuery{}, fmt.Errorf("%w: lon %q", ErrInvalidCoordinate, lon)
	}
	return models.CoordinateQuery{Lat: latNum, Lon: lonNum}, nil
}

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not finite: %v", v)
	}
	return v, nil
}

// NormalizeUnits trims and lower-cases a units value without checking it.
func NormalizeUnits(s string) models.Units {
	return models.Units(strings.ToLower(strings.TrimSpace(s)))
}

// ValidateUnits normalizes s and requires it to be a known unit system.
func ValidateUnits(s string) (models.Units, error) {
	u := NormalizeUnits(s)
	if !u.Known() {
		return "", fmt.Errorf("%w: got %q", ErrInvalidUnits, s)
	}
	return u, nil
}
