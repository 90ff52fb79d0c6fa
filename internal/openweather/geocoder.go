package openweather

import (
	"context"
	"fmt"
	"net/url"

	"github.com/vzahanych/zipweather/internal/models"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const successCode = 200

// Geocoder resolves a zip code to coordinates using the zip geocoding endpoint.
// Results are not cached.
type Geocoder struct {
	client *Client
}

func NewGeocoder(client *Client) *Geocoder {
	return &Geocoder{client: client}
}

func (g *Geocoder) queryParams(address models.Address) map[string]string {
	return map[string]string{
		"zip": address.QueryFormat(),
	}
}

// Query returns the geocoding URL for address with the credential redacted.
func (g *Geocoder) Query(address models.Address) string {
	u, err := url.Parse(g.client.baseURL + GeoEndpoint)
	if err != nil {
		return ""
	}

	q := u.Query()
	for k, v := range g.queryParams(address) {
		q.Set(k, v)
	}
	q.Set("appid", "REDACTED")
	u.RawQuery = q.Encode()

	return u.String()
}

// Geocode returns the location for address. A provider error payload yields
// *AddressRejectedError; an empty payload yields (nil, nil).
func (g *Geocoder) Geocode(ctx context.Context, address models.Address) (_ *models.Location, err error) {
	tracer := g.client.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "openweather.Geocode")
	defer span.End()

	defer func() {
		if err != nil {
			g.client.logger.Debug("Geocode failed",
				zap.String("query", g.Query(address)),
				zap.Error(err))
		}
	}()

	span.SetAttributes(
		attribute.String("zip", address.Zip),
		attribute.String("country", address.Country),
	)

	resp, err := g.client.get(ctx, GeoEndpoint, g.queryParams(address))
	if err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, err
	}

	data, err := decodeObject(resp.Body())
	if err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		if !resp.IsSuccess() {
			return nil, fmt.Errorf("%w: geocode status %d", ErrUpstreamUnavailable, resp.StatusCode())
		}
		return nil, err
	}

	if code, present := data["cod"]; present && !isSuccessCode(code) {
		message, _ := data["message"].(string)
		span.SetAttributes(attribute.Bool("success", false), attribute.Bool("rejected", true))
		return nil, &AddressRejectedError{Code: fmt.Sprint(code), Message: message}
	}

	if !resp.IsSuccess() {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, fmt.Errorf("%w: geocode status %d", ErrUpstreamUnavailable, resp.StatusCode())
	}

	if len(data) == 0 {
		span.SetAttributes(attribute.Bool("found", false))
		return nil, nil
	}

	lat := floatAt(data, "lat")
	lon := floatAt(data, "lon")
	if lat == nil || lon == nil {
		g.client.logger.Debug("Geocode payload without coordinates",
			zap.String("zip", address.Zip),
			zap.Int("fields", len(data)))
		span.SetAttributes(attribute.Bool("found", false))
		return nil, nil
	}

	location := models.NewLocation(*lat, *lon, address.Zip)
	span.SetAttributes(
		attribute.Bool("found", true),
		attribute.Float64("lat", location.Lat),
		attribute.Float64("lon", location.Lon),
	)

	return &location, nil
}

func isSuccessCode(code interface{}) bool {
	n, ok := toInt(code)
	return ok && n == successCode
}
