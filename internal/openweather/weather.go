package openweather

import (
	"context"
	"strconv"

	"github.com/vzahanych/zipweather/internal/models"
	"go.opentelemetry.io/otel/attribute"
)

// WeatherFetcher retrieves current conditions and the daily forecast for a coordinate pair.
type WeatherFetcher struct {
	client *Client
}

func NewWeatherFetcher(client *Client) *WeatherFetcher {
	return &WeatherFetcher{client: client}
}

func (f *WeatherFetcher) Fetch(ctx context.Context, location models.Location) (*Response, error) {
	return f.FetchCoordinates(ctx, location.Lat, location.Lon)
}

func (f *WeatherFetcher) FetchCoordinates(ctx context.Context, lat, lon float64) (*Response, error) {
	tracer := f.client.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "openweather.FetchForecast")
	defer span.End()

	span.SetAttributes(
		attribute.Float64("lat", lat),
		attribute.Float64("lon", lon),
		attribute.String("units", f.client.units),
	)

	resp, err := f.client.get(ctx, WeatherEndpoint, map[string]string{
		"lat":   strconv.FormatFloat(lat, 'f', -1, 64),
		"lon":   strconv.FormatFloat(lon, 'f', -1, 64),
		"units": f.client.units,
	})
	if err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, err
	}

	response, err := NewResponse(resp)
	if err != nil {
		span.SetAttributes(attribute.Bool("success", false), attribute.Int("status", resp.StatusCode()))
		return nil, err
	}

	span.SetAttributes(attribute.Bool("success", true))
	return response, nil
}
