package openweather

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	success bool
	status  int
	body    string
}

func (f fakeTransport) IsSuccess() bool { return f.success }
func (f fakeTransport) StatusCode() int { return f.status }
func (f fakeTransport) Body() []byte    { return []byte(f.body) }

const responseBody = `{
  "current": {
    "temp": 298.15,
    "weather": [{"id": 800, "description": "clear sky"}],
    "humidity": 50,
    "wind_speed": 5.14
  },
  "daily": [
    {"temp": {"day": 300.15}, "weather": [{"id": 801, "description": "few clouds"}]},
    {"temp": {"day": 295.32}, "weather": [{"id": 802, "description": "scattered clouds"}]}
  ]
}`

func newTestResponse(t *testing.T, body string) *Response {
	t.Helper()
	response, err := NewResponse(fakeTransport{success: true, status: 200, body: body})
	require.NoError(t, err)
	return response
}

func TestNewResponseRejectsUnsuccessfulTransport(t *testing.T) {
	response, err := NewResponse(fakeTransport{success: false, status: 401, body: "not json at all"})

	assert.Nil(t, response)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsuccessfulResponse))
	assert.True(t, errors.Is(err, ErrUpstreamUnavailable))
	assert.False(t, errors.Is(err, ErrMalformedPayload), "no parsing happens after a failed transport check")
}

func TestNewResponseMalformedBody(t *testing.T) {
	_, err := NewResponse(fakeTransport{success: true, status: 200, body: "<html>oops</html>"})
	assert.True(t, errors.Is(err, ErrMalformedPayload))

	_, err = NewResponse(fakeTransport{success: true, status: 200, body: `[1,2,3]`})
	assert.True(t, errors.Is(err, ErrMalformedPayload))
}

func TestResponseCurrentAccessors(t *testing.T) {
	response := newTestResponse(t, responseBody)

	temp, ok := response.Temperature()
	require.True(t, ok)
	assert.Equal(t, 298, temp)

	assert.Equal(t, "clear sky", response.Conditions())

	id, ok := response.ConditionID()
	require.True(t, ok)
	assert.Equal(t, 800, id)

	humidity, ok := response.Humidity()
	require.True(t, ok)
	assert.Equal(t, 50, humidity)

	wind, ok := response.WindSpeed()
	require.True(t, ok)
	assert.Equal(t, 5.14, wind)

	assert.False(t, response.Error())
}

func TestResponseMissingFieldsAreAbsent(t *testing.T) {
	response := newTestResponse(t, `{"current": {"weather": []}}`)

	_, ok := response.Temperature()
	assert.False(t, ok)
	assert.Equal(t, "Unknown", response.Conditions())
	_, ok = response.ConditionID()
	assert.False(t, ok)
	_, ok = response.Humidity()
	assert.False(t, ok)
	_, ok = response.WindSpeed()
	assert.False(t, ok)
}

func TestResponseMistypedFieldsAreAbsent(t *testing.T) {
	response := newTestResponse(t, `{"current": {"temp": "warm", "humidity": {"v": 1}, "wind_speed": true, "weather": [{"id": "n/a", "description": 7}]}}`)

	_, ok := response.Temperature()
	assert.False(t, ok)
	_, ok = response.ConditionID()
	assert.False(t, ok)
	_, ok = response.Humidity()
	assert.False(t, ok)
	_, ok = response.WindSpeed()
	assert.False(t, ok)
	assert.Equal(t, "Unknown", response.Conditions())
}

func TestResponseNumericStringsAreCoerced(t *testing.T) {
	response := newTestResponse(t, `{"current": {"temp": "72", "weather": [{"id": "500"}]}}`)

	temp, ok := response.Temperature()
	require.True(t, ok)
	assert.Equal(t, 72, temp)

	id, ok := response.ConditionID()
	require.True(t, ok)
	assert.Equal(t, 500, id)
}

func TestResponseParse(t *testing.T) {
	current := newTestResponse(t, responseBody).Parse()

	require.NotNil(t, current.Temperature)
	assert.Equal(t, 298, *current.Temperature)
	assert.Equal(t, "clear sky", current.Conditions)
	require.NotNil(t, current.Humidity)
	assert.Equal(t, 50, *current.Humidity)
	require.NotNil(t, current.WindSpeed)
	assert.Equal(t, 5.14, *current.WindSpeed)
	assert.Equal(t, "01d", current.Icon)
	assert.Equal(t, "https://openweathermap.org/img/wn/01d@2x.png", current.IconURL)

	empty := newTestResponse(t, `{"lat": 1}`).Parse()
	assert.Nil(t, empty.Temperature)
	assert.Nil(t, empty.ConditionID)
	assert.Equal(t, "Unknown", empty.Conditions)
	assert.Equal(t, "https://openweathermap.org/img/wn/@2x.png", empty.IconURL)
}

func TestResponseDaily(t *testing.T) {
	response := newTestResponse(t, responseBody)

	daily := response.Daily()
	require.Len(t, daily, 2)

	require.NotNil(t, daily[0].TempDay)
	assert.Equal(t, 300.15, *daily[0].TempDay)
	assert.Equal(t, "few clouds", daily[0].Description)
	icon, ok := daily[0].Icon()
	require.True(t, ok)
	assert.Equal(t, "02d", icon)

	require.NotNil(t, daily[1].TempDay)
	assert.Equal(t, 295.32, *daily[1].TempDay)
	icon, ok = daily[1].Icon()
	require.True(t, ok)
	assert.Equal(t, "03d", icon)

	again := response.Daily()
	assert.Same(t, daily[0], again[0], "daily forecast is built once")
}

func TestResponseDailyMissing(t *testing.T) {
	response := newTestResponse(t, `{"current": {"temp": 70}}`)

	daily := response.Daily()
	assert.NotNil(t, daily)
	assert.Empty(t, daily)

	malformed := newTestResponse(t, `{"daily": {"not": "a list"}}`)
	assert.Empty(t, malformed.Daily())
}

func TestResponseErrorIsLive(t *testing.T) {
	response := newTestResponse(t, responseBody)
	assert.False(t, response.Error())

	response.raw = nil
	assert.True(t, response.Error())

	response.raw = map[string]interface{}{}
	assert.True(t, response.Error())

	assert.True(t, newTestResponse(t, `{}`).Error())
	assert.True(t, newTestResponse(t, `null`).Error())

	var nilResponse *Response
	assert.True(t, nilResponse.Error())
	assert.Empty(t, nilResponse.Daily())
}
