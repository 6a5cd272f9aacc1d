package service

import (
	"net/url"
	"strings"

	"github.com/kjstillabower/weather-proxy/internal/models"
	"github.com/kjstillabower/weather-proxy/internal/validation"
)

// Defaults fill in whatever the caller left out of a name lookup.
type Defaults struct {
	City    string
	State   string
	Country string
	Units   string
}

// ResolveQuery turns request parameters into a WeatherQuery.
//
// A non-empty lat and lon always produce a CoordinateQuery and the name fields are
// dropped. Otherwise city, state and country fall back to d; city and state must end up
// non-empty. Units fall back to d.Units and are never validated here.
func ResolveQuery(params url.Values, d Defaults) (models.WeatherQuery, error) {
	units := validation.NormalizeUnits(firstNonEmpty(params.Get("units"), d.Units))

	lat, lon := strings.TrimSpace(params.Get("lat")), strings.TrimSpace(params.Get("lon"))
	if lat != "" && lon != "" {
		coords, err := validation.ParseCoordinates(lat, lon)
		if err != nil {
			return models.WeatherQuery{}, ErrInvalidCoordinate.wrap(err)
		}
		return models.WeatherQuery{Location: coords, Units: units}, nil
	}

	name := models.NameQuery{
		City:    firstNonEmpty(params.Get("city"), d.City),
		State:   firstNonEmpty(params.Get("state"), d.State),
		Country: firstNonEmpty(params.Get("country"), d.Country),
	}
	if name.City == "" || name.State == "" {
		return models.WeatherQuery{}, ErrMissingLocation
	}
	return models.WeatherQuery{Location: name, Units: units}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
