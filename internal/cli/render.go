package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kjstillabower/weather-proxy/internal/models"
)

const notAvailable = "N/A"

// Render prints a report. Unit symbols are added only when units is known.
func Render(w io.Writer, r models.Report, units models.Units) error {
	var b strings.Builder

	b.WriteString("\nWhat's it like outside?\n")
	if place := placeName(r); place != "" {
		fmt.Fprintf(&b, "Location: %s\n", place)
	}

	condition := r.Condition()
	if condition == "" {
		condition = notAvailable
	}
	fmt.Fprintf(&b, "Description: %s\n", condition)
	fmt.Fprintf(&b, "Temperature: %s\n", withSymbol(r.Main.Temp, units.TemperatureSymbol()))
	fmt.Fprintf(&b, "Feels Like: %s\n", withSymbol(r.Main.FeelsLike, units.TemperatureSymbol()))

	if r.Main.Humidity != nil {
		fmt.Fprintf(&b, "Humidity: %s%%\n", formatNumber(*r.Main.Humidity))
	} else {
		fmt.Fprintf(&b, "Humidity: %s\n", notAvailable)
	}
	fmt.Fprintf(&b, "Wind Speed: %s\n", withSymbol(r.Wind.Speed, units.SpeedSymbol()))

	_, err := io.WriteString(w, b.String())
	return err
}

func placeName(r models.Report) string {
	if r.Name != "" && r.Sys.Country != "" {
		return r.Name + ", " + r.Sys.Country
	}
	return r.Name
}

func withSymbol(v *float64, symbol string) string {
	if v == nil {
		return notAvailable
	}
	if symbol == "" {
		return formatNumber(*v)
	}
	return formatNumber(*v) + " " + symbol
}

// formatNumber prints the shortest representation that round-trips.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
