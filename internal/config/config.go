package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultWeatherAPIURL is the OpenWeather current weather endpoint.
const DefaultWeatherAPIURL = "https://api.openweathermap.org/data/2.5/weather"

// Config holds service configuration loaded from YAML, .env and the environment.
// It is read once at startup and passed by value; nothing mutates it afterwards.
type Config struct {
	ServerPort string

	WeatherAPIKey     string
	WeatherAPIURL     string
	WeatherAPITimeout time.Duration

	DefaultCity    string
	DefaultState   string
	DefaultCountry string
	DefaultUnits   string

	ShutdownTimeout               time.Duration
	ShutdownInFlightTimeout       time.Duration
	ShutdownInFlightCheckInterval time.Duration

	// DegradedWindow and DegradedErrorPct drive the /health degraded check.
	// Either at zero disables it.
	DegradedWindow   time.Duration
	DegradedErrorPct int
}

// HasCredential reports whether an upstream API key is configured.
func (c Config) HasCredential() bool {
	return c.WeatherAPIKey != ""
}

type fileConfig struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	WeatherAPI struct {
		URL     string `yaml:"url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"weather_api"`

	Defaults struct {
		City    string `yaml:"city"`
		State   string `yaml:"state"`
		Country string `yaml:"country"`
		Units   string `yaml:"units"`
	} `yaml:"defaults"`

	Shutdown struct {
		Timeout               string `yaml:"timeout"`
		InFlightTimeout       string `yaml:"in_flight_timeout"`
		InFlightCheckInterval string `yaml:"in_flight_check_interval"`
	} `yaml:"shutdown"`

	Lifecycle struct {
		DegradedWindow   string `yaml:"degraded_window"`
		DegradedErrorPct int    `yaml:"degraded_error_pct"`
	} `yaml:"lifecycle"`
}

type secretsFile struct {
	OpenWeatherAPIKey string `yaml:"openweather_api_key"`
}

// Load reads .env, config/{ENV_NAME}.yaml (default dev) and config/secrets.yaml from the
// working directory. Environment variables win over both files. A missing API key is not
// an error: the service starts and reports itself misconfigured. Call from project root.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("config: get working directory: %w", err)
	}

	if err := godotenv.Load(filepath.Join(cwd, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read .env file: %w", err)
	}

	env, explicitEnv := os.LookupEnv("ENV_NAME")
	env = strings.TrimSpace(env)
	if env == "" {
		env = "dev"
		explicitEnv = false
	}

	var fc fileConfig
	configPath := filepath.Join(cwd, "config", env+".yaml")
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	case os.IsNotExist(err):
		if explicitEnv {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}
	default:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	cfg.ServerPort = firstNonEmpty(os.Getenv("PORT"), fc.Server.Port, "3001")

	cfg.WeatherAPIKey = strings.TrimSpace(os.Getenv("OPENWEATHER_API_KEY"))
	if cfg.WeatherAPIKey == "" {
		secretsPath := filepath.Join(cwd, "config", "secrets.yaml")
		secretsData, err := os.ReadFile(secretsPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read secrets file: %w", err)
			}
		} else {
			var sec secretsFile
			if err := yaml.Unmarshal(secretsData, &sec); err != nil {
				return nil, fmt.Errorf("parse secrets file: %w", err)
			}
			cfg.WeatherAPIKey = strings.TrimSpace(sec.OpenWeatherAPIKey)
		}
	}

	cfg.WeatherAPIURL = firstNonEmpty(os.Getenv("OPENWEATHER_API_URL"), fc.WeatherAPI.URL, DefaultWeatherAPIURL)
	cfg.WeatherAPITimeout = parseDurationOrZero(fc.WeatherAPI.Timeout, 10*time.Second)

	cfg.DefaultCity = firstNonEmpty(os.Getenv("CITY"), fc.Defaults.City)
	cfg.DefaultState = firstNonEmpty(os.Getenv("STATE"), fc.Defaults.State)
	cfg.DefaultCountry = firstNonEmpty(os.Getenv("COUNTRY"), fc.Defaults.Country, "US")
	cfg.DefaultUnits = strings.ToLower(firstNonEmpty(os.Getenv("UNITS"), fc.Defaults.Units, "imperial"))

	cfg.ShutdownTimeout = parseDuration(fc.Shutdown.Timeout, 10*time.Second)
	cfg.ShutdownInFlightTimeout = parseDuration(fc.Shutdown.InFlightTimeout, 5*time.Second)
	cfg.ShutdownInFlightCheckInterval = parseDuration(fc.Shutdown.InFlightCheckInterval, 100*time.Millisecond)

	cfg.DegradedWindow = parseDurationOrZero(fc.Lifecycle.DegradedWindow, 60*time.Second)
	cfg.DegradedErrorPct = fc.Lifecycle.DegradedErrorPct

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// firstNonEmpty returns the first argument that is non-empty after trimming whitespace.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// parseDuration parses a duration string and returns defaultVal if parsing fails or result is <= 0.
func parseDuration(s string, defaultVal time.Duration) time.Duration {
	d := parseDurationOrZero(s, defaultVal)
	if d <= 0 {
		return defaultVal
	}
	return d
}

// parseDurationOrZero parses a duration string, returning defaultVal on empty string or parse error.
// Returns zero or negative durations as-is (caller should handle fallback).
func parseDurationOrZero(s string, defaultVal time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultVal
	}
	return d
}

// validate performs post-load validation of configuration values.
// Default units are not checked: the upstream provider decides what it accepts.
func validate(cfg *Config) error {
	if cfg.WeatherAPITimeout < 0 {
		return fmt.Errorf("weather_api.timeout must not be negative")
	}
	port, err := strconv.Atoi(cfg.ServerPort)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("server.port must be a TCP port number, got %q", cfg.ServerPort)
	}
	if cfg.DegradedErrorPct < 0 || cfg.DegradedErrorPct > 100 {
		return fmt.Errorf("lifecycle.degraded_error_pct must be between 0 and 100, got %d", cfg.DegradedErrorPct)
	}
	if cfg.DegradedWindow < 0 {
		return fmt.Errorf("lifecycle.degraded_window must not be negative")
	}
	return nil
}
