// Package cli implements the weather command-line client.
package cli

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kjstillabower/weather-proxy/internal/apiclient"
	"github.com/kjstillabower/weather-proxy/internal/validation"
)

type options struct {
	city    string
	state   string
	country string
	lat     string
	lon     string
	units   string
	url     string
	timeout time.Duration
	verbose bool
}

// NewRootCommand builds the weather command. Output goes to out, diagnostics to errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "weather [city [state [country]]]",
		Short: "Print current weather from a weather proxy",
		Long: `Ask a weather proxy for current conditions and print them.

With no location the proxy's configured default location is used.
--lat and --lon take precedence over any city, state or country.`,
		Args:          cobra.MaximumNArgs(3),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd, opts, args, out, errOut)
		},
	}

	cmd.SetOut(out)
	cmd.SetErr(errOut)

	defaultURL := os.Getenv("WEATHER_API_URL")
	if defaultURL == "" {
		defaultURL = apiclient.DefaultURL
	}

	f := cmd.Flags()
	f.StringVar(&opts.city, "city", "", "City name")
	f.StringVar(&opts.state, "state", "", "State or region")
	f.StringVar(&opts.country, "country", "", "Country code")
	f.StringVar(&opts.lat, "lat", "", "Latitude (requires --lon)")
	f.StringVar(&opts.lon, "lon", "", "Longitude (requires --lat)")
	f.StringVarP(&opts.units, "units", "u", "", "Units: standard, metric or imperial (default: proxy setting)")
	f.StringVar(&opts.url, "url", defaultURL, "Proxy /api URL (env WEATHER_API_URL)")
	f.DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Log request details to stderr")

	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, opts *options, args []string, out, errOut io.Writer) error {
	req, err := buildRequest(opts, args, cmd.Flags().Changed)
	if err != nil {
		return err
	}

	client, err := apiclient.New(opts.url, opts.timeout)
	if err != nil {
		return err
	}

	logger := newLogger(opts.verbose, errOut)
	defer func() { _ = logger.Sync() }()

	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	logger.Debug("requesting weather", zap.String("url", client.URL(req)))
	report, err := client.Get(ctx, req)
	if err != nil {
		logger.Debug("request failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return err
	}
	logger.Debug("request complete", zap.Duration("duration", time.Since(start)))

	return Render(out, report, req.Units)
}

// buildRequest applies positional arguments to location fields whose flags were not set,
// then validates units and coordinates.
func buildRequest(opts *options, args []string, changed func(string) bool) (apiclient.Request, error) {
	req := apiclient.Request{City: opts.city, State: opts.state, Country: opts.country}

	positional := []struct {
		flag string
		dst  *string
	}{
		{"city", &req.City},
		{"state", &req.State},
		{"country", &req.Country},
	}
	for i, arg := range args {
		if !changed(positional[i].flag) {
			*positional[i].dst = arg
		}
	}

	if strings.TrimSpace(opts.units) != "" {
		units, err := validation.ValidateUnits(opts.units)
		if err != nil {
			return apiclient.Request{}, err
		}
		req.Units = units
	}

	hasLat := strings.TrimSpace(opts.lat) != ""
	hasLon := strings.TrimSpace(opts.lon) != ""
	switch {
	case hasLat && hasLon:
		coords, err := validation.ParseCoordinates(opts.lat, opts.lon)
		if err != nil {
			return apiclient.Request{}, err
		}
		req.Coordinates = &coords
	case hasLat || hasLon:
		return apiclient.Request{}, validation.ErrIncompleteCoordinates
	}

	return req, nil
}

func newLogger(verbose bool, w io.Writer) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}

// Execute runs the weather command with os.Args and the process streams.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx)
}
