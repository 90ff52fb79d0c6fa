package openweather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzahanych/zipweather/internal/config"
	"github.com/vzahanych/zipweather/pkg/telemetry"
	"go.uber.org/zap/zaptest"
)

const testAPIKey = "test-key"

func newTestClient(t *testing.T, baseURL string, mutate ...func(*config.OpenWeatherConfig)) *Client {
	t.Helper()

	cfg := config.NewDefaultConfig().OpenWeather
	cfg.BaseURL = baseURL
	cfg.APIKey = testAPIKey
	cfg.RateLimit = 0
	for _, m := range mutate {
		m(&cfg)
	}

	return NewClient(cfg, zaptest.NewLogger(t), &telemetry.Telemetry{})
}

func TestClientSendsCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, testAPIKey, r.URL.Query().Get("appid"))
		assert.Equal(t, "v", r.URL.Query().Get("k"))
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	resp, err := newTestClient(t, srv.URL).get(context.Background(), "/anything", map[string]string{"k": "v"})
	require.NoError(t, err)
	assert.True(t, resp.IsSuccess())
}

func TestClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	client.timeout = 50 * time.Millisecond

	_, err := client.get(context.Background(), WeatherEndpoint, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpstreamTimeout), "got %v", err)
}

func TestClientConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(t, url).get(context.Background(), WeatherEndpoint, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpstreamUnavailable))
}

func TestClientCircuitBreakerOpens(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, func(cfg *config.OpenWeatherConfig) {
		cfg.BreakerFailures = 2
		cfg.BreakerTimeout = 60
	})

	for i := 0; i < 3; i++ {
		_, err := client.get(context.Background(), WeatherEndpoint, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUpstreamUnavailable))
	}

	assert.Equal(t, int32(2), hits.Load(), "the open circuit short-circuits the third call")
}

func TestClientClientErrorsDoNotTripBreaker(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"cod":"404","message":"not found"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, func(cfg *config.OpenWeatherConfig) {
		cfg.BreakerFailures = 1
	})

	for i := 0; i < 3; i++ {
		resp, err := client.get(context.Background(), GeoEndpoint, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	}
	assert.Equal(t, int32(3), hits.Load())
}

func TestClientRateLimitIsNotATimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, func(cfg *config.OpenWeatherConfig) {
		cfg.RateLimit = 0.001
		cfg.Burst = 1
	})
	client.timeout = 100 * time.Millisecond

	_, err := client.get(context.Background(), WeatherEndpoint, nil)
	require.NoError(t, err)

	_, err = client.get(context.Background(), WeatherEndpoint, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRateLimited))
	assert.True(t, errors.Is(err, ErrUpstreamUnavailable))
	assert.False(t, errors.Is(err, ErrUpstreamTimeout))
}
