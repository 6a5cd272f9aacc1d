package service

import (
	"context"
	"errors"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/weather-proxy/internal/client"
	"github.com/kjstillabower/weather-proxy/internal/config"
	"github.com/kjstillabower/weather-proxy/internal/degraded"
	"github.com/kjstillabower/weather-proxy/internal/models"
	"github.com/kjstillabower/weather-proxy/internal/observability"
	"github.com/kjstillabower/weather-proxy/internal/reqctx"
)

// WeatherService resolves caller parameters into one upstream lookup and hands back
// the upstream answer untouched. Its only mutable state is the reachability tracker
// read by /health.
type WeatherService struct {
	client   client.WeatherClient
	hasKey   bool
	defaults Defaults
	outcomes *degraded.Tracker
	policy   degraded.Policy
}

// NewWeatherService captures the credential presence, location defaults and degraded
// policy from cfg.
func NewWeatherService(client client.WeatherClient, cfg config.Config) *WeatherService {
	policy := degraded.Policy{Window: cfg.DegradedWindow, ErrorPct: cfg.DegradedErrorPct}
	return &WeatherService{
		client: client,
		hasKey: cfg.HasCredential(),
		defaults: Defaults{
			City:    cfg.DefaultCity,
			State:   cfg.DefaultState,
			Country: cfg.DefaultCountry,
			Units:   cfg.DefaultUnits,
		},
		outcomes: degraded.NewTracker(policy.Window),
		policy:   policy,
	}
}

// Configured reports whether an upstream credential is present.
func (s *WeatherService) Configured() bool {
	return s.hasKey
}

// Degraded reports whether upstream has been unreachable often enough in the recent
// window to trip the configured policy.
func (s *WeatherService) Degraded() bool {
	return s.outcomes.Degraded(s.policy)
}

// Lookup performs one proxied weather lookup. Errors are *Error values; any HTTP
// response from upstream, whatever its status, is a successful return.
func (s *WeatherService) Lookup(ctx context.Context, params url.Values) (models.UpstreamResponse, error) {
	logger := reqctx.Logger(ctx)

	if !s.hasKey {
		observability.RecordQueryError(CodeServerMisconfigured)
		return models.UpstreamResponse{}, ErrServerMisconfigured
	}

	q, err := ResolveQuery(params, s.defaults)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) {
			observability.RecordQueryError(apiErr.Code)
		}
		logger.Debug("query rejected", zap.Error(err))
		return models.UpstreamResponse{}, err
	}
	observability.RecordWeatherQuery(q.Location.Kind())

	// Callers hanging up do not cancel the upstream call; the client timeout bounds it.
	start := time.Now()
	resp, err := s.client.Fetch(context.WithoutCancel(ctx), q)
	if err != nil {
		logger.Warn("error fetching OpenWeather",
			zap.String("kind", q.Location.Kind()),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		s.outcomes.RecordError()
		return models.UpstreamResponse{}, ErrUpstreamUnreachable.wrap(err)
	}
	s.outcomes.RecordSuccess()

	logger.Debug("upstream response",
		zap.String("kind", q.Location.Kind()),
		zap.String("units", string(q.Units)),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(resp.Body)),
		zap.Duration("duration", time.Since(start)))
	return resp, nil
}
