package forecast

import (
	"errors"
	"fmt"

	"github.com/vzahanych/zipweather/internal/openweather"
)

type ErrorKind string

const (
	KindAddressRejected     ErrorKind = "ADDRESS_REJECTED"
	KindNoCoordinates       ErrorKind = "NO_COORDINATES"
	KindUpstreamUnavailable ErrorKind = "UPSTREAM_UNAVAILABLE"
	KindUpstreamTimeout     ErrorKind = "UPSTREAM_TIMEOUT"
	KindMalformedPayload    ErrorKind = "MALFORMED_PAYLOAD"
)

const (
	msgAddressRejected     = "Address rejected by weather provider"
	msgNoCoordinates       = "Unable to geocode address"
	msgUpstreamUnavailable = "Weather service is unavailable"
	msgRateLimited         = "Weather lookups are rate limited locally, try again shortly"
	msgUpstreamTimeout     = "Weather service timed out"
	msgMalformedPayload    = "Weather service returned an unreadable response"
)

// LookupError is the only error type Service.Lookup returns. Message is safe to show to users.
type LookupError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *LookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a LookupError, or "" for any other error.
func KindOf(err error) ErrorKind {
	var lookupErr *LookupError
	if errors.As(err, &lookupErr) {
		return lookupErr.Kind
	}
	return ""
}

func noCoordinatesError() *LookupError {
	return &LookupError{Kind: KindNoCoordinates, Message: msgNoCoordinates}
}

// classify maps geocoder and fetcher errors onto the lookup error kinds.
func classify(err error) *LookupError {
	var rejected *openweather.AddressRejectedError
	switch {
	case errors.As(err, &rejected):
		message := rejected.Message
		if message == "" {
			message = msgAddressRejected
		}
		return &LookupError{Kind: KindAddressRejected, Message: message, Err: err}
	case errors.Is(err, openweather.ErrUpstreamTimeout):
		return &LookupError{Kind: KindUpstreamTimeout, Message: msgUpstreamTimeout, Err: err}
	case errors.Is(err, openweather.ErrRateLimited):
		return &LookupError{Kind: KindUpstreamUnavailable, Message: msgRateLimited, Err: err}
	case errors.Is(err, openweather.ErrMalformedPayload):
		return &LookupError{Kind: KindMalformedPayload, Message: msgMalformedPayload, Err: err}
	default:
		return &LookupError{Kind: KindUpstreamUnavailable, Message: msgUpstreamUnavailable, Err: err}
	}
}
