package openweather

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"github.com/vzahanych/zipweather/internal/config"
	"github.com/vzahanych/zipweather/pkg/telemetry"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	GeoEndpoint     = "/geo/1.0/zip"
	WeatherEndpoint = "/data/3.0/onecall"

	userAgent = "zipweather/1.0"
)

var errServerStatus = errors.New("server error status")

// Client is the shared OpenWeatherMap transport used by Geocoder and WeatherFetcher.
// Each call makes exactly one HTTP request: there are no retries.
type Client struct {
	http    *resty.Client
	baseURL string
	apiKey  string
	units   string
	timeout time.Duration
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
	tele    *telemetry.Telemetry
}

func NewClient(cfg config.OpenWeatherConfig, logger *zap.Logger, tele *telemetry.Telemetry) *Client {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	timeout := cfg.TimeoutDuration()
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	units := cfg.Units
	if units == "" {
		units = config.UnitsImperial
	}

	c := &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		units:   units,
		timeout: timeout,
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger.With(zap.String("component", "openweather")),
		tele:    tele,
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "openweather",
		Timeout: time.Duration(cfg.BreakerTimeout) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return cfg.BreakerFailures > 0 && counts.ConsecutiveFailures >= uint32(cfg.BreakerFailures)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	c.http = resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout).
		SetRetryCount(0).
		SetLogger(c.logger.Sugar())

	c.http.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		path := ""
		if resp.Request != nil && resp.Request.RawRequest != nil {
			path = resp.Request.RawRequest.URL.Path
		}
		c.logger.Debug("OpenWeather response",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode()),
			zap.Duration("duration", resp.Time()),
			zap.Int("body_size", len(resp.Body())))
		return nil
	})

	return c
}

// get issues one GET bounded by the client timeout. Statuses >= 500 are
// reported as ErrUpstreamUnavailable; other statuses are returned to the caller
// so the body can be inspected.
func (c *Client) get(ctx context.Context, path string, params map[string]string) (*resty.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRateLimited, path, err)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParams(params).
			SetQueryParam("appid", c.apiKey).
			Get(path)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode() >= http.StatusInternalServerError {
			return nil, fmt.Errorf("%w: %d", errServerStatus, resp.StatusCode())
		}
		return resp, nil
	})
	if err != nil {
		return nil, classifyTransportError(path, err)
	}

	resp, ok := result.(*resty.Response)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected result type from circuit breaker", ErrUpstreamUnavailable)
	}

	return resp, nil
}

func classifyTransportError(path string, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %s: circuit open: %v", ErrUpstreamUnavailable, path, err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %v", ErrUpstreamTimeout, path, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %s: %v", ErrUpstreamTimeout, path, err)
	}

	return fmt.Errorf("%w: %s: %v", ErrUpstreamUnavailable, path, err)
}
