package openweather

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIconCodeRanges(t *testing.T) {
	ranges := []struct {
		from, to int
		icon     string
	}{
		{200, 232, "11d"},
		{300, 321, "09d"},
		{500, 504, "10d"},
		{511, 511, "13d"},
		{520, 531, "09d"},
		{600, 622, "13d"},
		{701, 781, "50d"},
		{800, 800, "01d"},
		{801, 801, "02d"},
		{802, 802, "03d"},
		{803, 804, "04d"},
	}

	for _, r := range ranges {
		for code := r.from; code <= r.to; code++ {
			icon, ok := IconCode(code)
			require.True(t, ok, "code %d should map to an icon", code)
			assert.Equal(t, r.icon, icon, "code %d", code)
		}
	}
}

func TestIconCodeUnmapped(t *testing.T) {
	for _, code := range []int{-1, 0, 199, 233, 299, 322, 505, 510, 512, 519, 532, 599, 623, 700, 782, 799, 805, 999} {
		icon, ok := IconCode(code)
		assert.False(t, ok, "code %d should not map", code)
		assert.Empty(t, icon)
	}
}

func TestIconURLRawCode(t *testing.T) {
	url, err := IconURL(RawCode(800))
	require.NoError(t, err)
	assert.Equal(t, "https://openweathermap.org/img/wn/01d@2x.png", url)

	url, err = IconURL(RawCode(801))
	require.NoError(t, err)
	assert.Equal(t, "https://openweathermap.org/img/wn/02d@2x.png", url)
}

func TestIconURLUnmappedCodeKeepsEmptySegment(t *testing.T) {
	url, err := IconURL(RawCode(999))
	require.NoError(t, err)
	assert.Equal(t, "https://openweathermap.org/img/wn/@2x.png", url)
}

func TestIconURLEntityRef(t *testing.T) {
	response, err := ParseResponse([]byte(`{"current":{"weather":[{"id":800,"description":"clear sky"}]}}`))
	require.NoError(t, err)

	url, err := IconURL(EntityRef{Entity: response})
	require.NoError(t, err)
	assert.Equal(t, "https://openweathermap.org/img/wn/01d@2x.png", url)

	day := NewDay(map[string]interface{}{"weather": []interface{}{map[string]interface{}{"id": 211.0}}})
	url, err = IconURL(EntityRef{Entity: day})
	require.NoError(t, err)
	assert.Equal(t, "https://openweathermap.org/img/wn/11d@2x.png", url)
}

func TestIconURLEntityWithoutCondition(t *testing.T) {
	response, err := ParseResponse([]byte(`{"current":{}}`))
	require.NoError(t, err)

	url, err := IconURL(EntityRef{Entity: response})
	require.NoError(t, err)
	assert.Equal(t, "https://openweathermap.org/img/wn/@2x.png", url)
}

func TestIconURLInvalidSource(t *testing.T) {
	_, err := IconURL(nil)
	assert.True(t, errors.Is(err, ErrInvalidIconSource))

	_, err = IconURL(EntityRef{})
	assert.True(t, errors.Is(err, ErrInvalidIconSource))
}
