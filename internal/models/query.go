package models

import (
	"strconv"
	"strings"
)

// Units is the unit system requested from the upstream provider.
type Units string

const (
	UnitsStandard Units = "standard"
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// Known reports whether u is one of the three unit systems the provider documents.
func (u Units) Known() bool {
	switch u {
	case UnitsStandard, UnitsMetric, UnitsImperial:
		return true
	}
	return false
}

// TemperatureSymbol returns the display suffix for temperatures in u, or "" when u is unknown.
func (u Units) TemperatureSymbol() string {
	switch u {
	case UnitsStandard:
		return "K"
	case UnitsMetric:
		return "°C"
	case UnitsImperial:
		return "°F"
	}
	return ""
}

// SpeedSymbol returns the display suffix for wind speed in u, or "" when u is unknown.
func (u Units) SpeedSymbol() string {
	switch u {
	case UnitsStandard, UnitsMetric:
		return "m/s"
	case UnitsImperial:
		return "mph"
	}
	return ""
}

// Location is either a CoordinateQuery or a NameQuery.
type Location interface {
	// Kind is a stable label ("coordinates" or "name") used for logs and metrics.
	Kind() string
	isLocation()
}

// CoordinateQuery locates weather by latitude and longitude.
type CoordinateQuery struct {
	Lat float64
	Lon float64
}

func (CoordinateQuery) Kind() string { return "coordinates" }
func (CoordinateQuery) isLocation()  {}

// LatString formats Lat in its shortest round-trip form.
func (q CoordinateQuery) LatString() string { return formatCoordinate(q.Lat) }

// LonString formats Lon in its shortest round-trip form.
func (q CoordinateQuery) LonString() string { return formatCoordinate(q.Lon) }

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// NameQuery locates weather by free-text place name.
type NameQuery struct {
	City    string
	State   string
	Country string
}

func (NameQuery) Kind() string { return "name" }
func (NameQuery) isLocation()  {}

// Text returns the provider search string "<city>, <state>, <country>".
func (q NameQuery) Text() string {
	return strings.Join([]string{q.City, q.State, q.Country}, ", ")
}

// WeatherQuery is a resolved request for current weather.
type WeatherQuery struct {
	Location Location
	Units    Units
}
