package forecast

import (
	"context"
	"time"

	"github.com/vzahanych/zipweather/internal/models"
	"github.com/vzahanych/zipweather/internal/openweather"
	"github.com/vzahanych/zipweather/pkg/logger"
	"github.com/vzahanych/zipweather/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const cacheType = "forecast"

type Geocoder interface {
	Geocode(ctx context.Context, address models.Address) (*models.Location, error)
}

type Fetcher interface {
	Fetch(ctx context.Context, location models.Location) (*openweather.Response, error)
}

// MetricsRecorder interface for recording metrics
type MetricsRecorder interface {
	RecordCacheHit(ctx context.Context, cacheType string)
	RecordCacheMiss(ctx context.Context, cacheType string)
	RecordLookupError(ctx context.Context, kind string)
}

// Result is a forecast ready for rendering. Cached reports whether it was served from the cache.
type Result struct {
	Location models.Location
	Forecast *openweather.Response
	Cached   bool
}

type Service struct {
	geocoder Geocoder
	fetcher  Fetcher
	cache    *Cache
	logger   *zap.Logger
	tele     *telemetry.Telemetry
	metrics  MetricsRecorder
}

func NewService(geocoder Geocoder, fetcher Fetcher, cache *Cache, logger *zap.Logger, tele *telemetry.Telemetry) *Service {
	return &Service{
		geocoder: geocoder,
		fetcher:  fetcher,
		cache:    cache,
		logger:   logger,
		tele:     tele,
	}
}

// SetMetricsRecorder sets the metrics recorder for the service
func (s *Service) SetMetricsRecorder(metrics MetricsRecorder) {
	s.metrics = metrics
}

func (s *Service) Cache() *Cache {
	return s.cache
}

// Lookup geocodes the address, then serves the forecast from the cache or
// fetches and stores it. Every failure is returned as a *LookupError.
func (s *Service) Lookup(ctx context.Context, city, state, country, zip string) (*Result, error) {
	tracer := s.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "forecast.Lookup")
	defer span.End()

	reqLogger := logger.ForContext(ctx, s.logger)
	address := models.NewAddress(city, state, country, zip)

	span.SetAttributes(
		attribute.String("zip", address.Zip),
		attribute.String("country", address.Country),
	)

	location, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		return nil, s.fail(ctx, reqLogger, classify(err), address)
	}
	if location == nil {
		return nil, s.fail(ctx, reqLogger, noCoordinatesError(), address)
	}

	cacheKey := CacheKey(address, *location)
	span.SetAttributes(attribute.String("cache_key", cacheKey))

	if cached, hit := s.cache.Get(cacheKey); hit {
		reqLogger.Debug("Cache hit", zap.String("cache_key", cacheKey))
		span.SetAttributes(attribute.Bool("cache_hit", true))

		if s.metrics != nil {
			s.metrics.RecordCacheHit(ctx, cacheType)
		}

		return &Result{Location: *location, Forecast: cached, Cached: true}, nil
	}

	span.SetAttributes(attribute.Bool("cache_hit", false))

	if s.metrics != nil {
		s.metrics.RecordCacheMiss(ctx, cacheType)
	}

	reqLogger.Info("Cache miss, fetching fresh forecast",
		zap.String("cache_key", cacheKey),
		zap.Float64("lat", location.Lat),
		zap.Float64("lon", location.Lon))

	start := time.Now()
	response, err := s.fetcher.Fetch(ctx, *location)
	if err != nil {
		return nil, s.fail(ctx, reqLogger, classify(err), address)
	}

	if response.Error() {
		// Not cached so the next request tries again.
		reqLogger.Warn("Forecast payload is empty", zap.String("cache_key", cacheKey))
	} else {
		s.cache.Put(cacheKey, response, s.cache.TTL())
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("days", len(response.Daily())),
	)

	reqLogger.Info("Forecast fetched",
		zap.String("cache_key", cacheKey),
		zap.Duration("fetch_duration", time.Since(start)),
		zap.Int("days", len(response.Daily())))

	return &Result{Location: *location, Forecast: response, Cached: false}, nil
}

func (s *Service) fail(ctx context.Context, reqLogger *zap.Logger, lookupErr *LookupError, address models.Address) error {
	fields := []zap.Field{
		zap.String("kind", string(lookupErr.Kind)),
		zap.String("zip", address.Zip),
		zap.String("country", address.Country),
	}
	if lookupErr.Err != nil {
		fields = append(fields, zap.Error(lookupErr.Err))
	}

	switch lookupErr.Kind {
	case KindAddressRejected, KindNoCoordinates:
		reqLogger.Info("Address could not be resolved", fields...)
	default:
		reqLogger.Error("Forecast lookup failed", fields...)
	}

	s.tele.RecordError(ctx, lookupErr, map[string]interface{}{"kind": lookupErr.Kind})
	if s.metrics != nil {
		s.metrics.RecordLookupError(ctx, string(lookupErr.Kind))
	}

	return lookupErr
}
