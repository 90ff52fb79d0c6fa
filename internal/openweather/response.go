package openweather

import (
	"fmt"
	"sync"
)

const unknownConditions = "Unknown"

// TransportResponse is the part of an HTTP response a Response is built from.
// *resty.Response satisfies it.
type TransportResponse interface {
	IsSuccess() bool
	StatusCode() int
	Body() []byte
}

// CurrentConditions is the current-weather summary. Nil fields were absent upstream.
type CurrentConditions struct {
	Temperature *int     `json:"temperature"`
	Conditions  string   `json:"conditions"`
	ConditionID *int     `json:"condition_id"`
	Humidity    *int     `json:"humidity"`
	WindSpeed   *float64 `json:"wind_speed"`
	Icon        string   `json:"icon,omitempty"`
	IconURL     string   `json:"icon_url"`
}

// Response wraps a decoded one-call payload. Accessors never fail: missing or
// mistyped fields are reported as absent.
type Response struct {
	raw map[string]interface{}

	dailyOnce sync.Once
	daily     []*Day
}

// NewResponse fails when the transport call was not successful; no parsing happens in that case.
func NewResponse(resp TransportResponse) (*Response, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: no response", ErrUnsuccessfulResponse)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: status %d", ErrUnsuccessfulResponse, resp.StatusCode())
	}
	return ParseResponse(resp.Body())
}

func ParseResponse(body []byte) (*Response, error) {
	raw, err := decodeObject(body)
	if err != nil {
		return nil, err
	}
	return &Response{raw: raw}, nil
}

func (r *Response) payload() map[string]interface{} {
	if r == nil {
		return nil
	}
	return r.raw
}

func (r *Response) Temperature() (int, bool) {
	if n := intAt(r.payload(), "current", "temp"); n != nil {
		return *n, true
	}
	return 0, false
}

// Conditions returns the current weather description, or "Unknown".
func (r *Response) Conditions() string {
	if s, ok := stringAt(r.payload(), "current", "weather", 0, "description"); ok {
		return s
	}
	return unknownConditions
}

func (r *Response) ConditionID() (int, bool) {
	if n := intAt(r.payload(), "current", "weather", 0, "id"); n != nil {
		return *n, true
	}
	return 0, false
}

func (r *Response) Humidity() (int, bool) {
	if n := intAt(r.payload(), "current", "humidity"); n != nil {
		return *n, true
	}
	return 0, false
}

func (r *Response) WindSpeed() (float64, bool) {
	if f := floatAt(r.payload(), "current", "wind_speed"); f != nil {
		return *f, true
	}
	return 0, false
}

// Parse collects the current conditions.
func (r *Response) Parse() CurrentConditions {
	current := CurrentConditions{
		Temperature: intAt(r.payload(), "current", "temp"),
		Conditions:  r.Conditions(),
		ConditionID: intAt(r.payload(), "current", "weather", 0, "id"),
		Humidity:    intAt(r.payload(), "current", "humidity"),
		WindSpeed:   floatAt(r.payload(), "current", "wind_speed"),
	}

	if current.ConditionID != nil {
		current.Icon, _ = IconCode(*current.ConditionID)
	}
	current.IconURL = iconURL(current.Icon)

	return current
}

// Daily returns the per-day forecast in payload order. It is built once; a
// payload without a daily block yields an empty slice.
func (r *Response) Daily() []*Day {
	if r == nil {
		return []*Day{}
	}

	r.dailyOnce.Do(func() {
		r.daily = []*Day{}

		entries, ok := dig(r.raw, "daily")
		if !ok {
			return
		}
		list, ok := entries.([]interface{})
		if !ok {
			return
		}

		for _, entry := range list {
			if m, ok := entry.(map[string]interface{}); ok {
				r.daily = append(r.daily, NewDay(m))
			}
		}
	})

	return r.daily
}

// Error reports whether the payload is absent or empty. It is evaluated on every call.
func (r *Response) Error() bool {
	return len(r.payload()) == 0
}
