package openweather

import (
	"errors"
	"fmt"
)

var (
	// ErrUpstreamUnavailable covers connection failures, non-success statuses and an open circuit.
	ErrUpstreamUnavailable = errors.New("openweather: upstream unavailable")
	ErrUpstreamTimeout     = errors.New("openweather: upstream timeout")
	// ErrMalformedPayload is returned only when a body cannot be decoded as a JSON object at all.
	ErrMalformedPayload = errors.New("openweather: malformed upstream payload")
	// ErrUnsuccessfulResponse is the ForecastResponse construction precondition failure.
	ErrUnsuccessfulResponse = fmt.Errorf("%w: unable to retrieve weather data", ErrUpstreamUnavailable)
	// ErrRateLimited means the local request quota was exhausted; the provider was not called.
	ErrRateLimited       = fmt.Errorf("%w: local rate limit exceeded", ErrUpstreamUnavailable)
	ErrInvalidIconSource = errors.New("openweather: icon source must be a condition code or an entity exposing one")
)

// AddressRejectedError is a provider-side geocoding error carrying the provider's message.
type AddressRejectedError struct {
	Code    string
	Message string
}

func (e *AddressRejectedError) Error() string {
	return fmt.Sprintf("openweather: address rejected (cod %s): %s", e.Code, e.Message)
}
