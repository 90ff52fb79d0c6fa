package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/zipweather/internal/forecast"
	"github.com/vzahanych/zipweather/internal/server/utils"
	"github.com/vzahanych/zipweather/pkg/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	CacheHeader     = "X-Cache"
	defaultCountry  = "US"
	codeInvalidArgs = "INVALID_PARAMS"
)

type ForecastLookup interface {
	Lookup(ctx context.Context, city, state, country, zip string) (*forecast.Result, error)
}

type WeatherHandler struct {
	service ForecastLookup
	logger  *zap.Logger
}

func NewWeatherHandler(service ForecastLookup, logger *zap.Logger) *WeatherHandler {
	return &WeatherHandler{
		service: service,
		logger:  logger,
	}
}

func (h *WeatherHandler) GetWeather(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)
	reqLogger := logger.ForContext(ctx, h.logger)

	var req WeatherRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		reqLogger.Warn("Invalid request parameters", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request parameters",
			Code:    codeInvalidArgs,
			Details: err.Error(),
		})
		return
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		reqLogger.Warn("Request validation failed", zap.Any("errors", errs))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request parameters",
			Code:    codeInvalidArgs,
			Details: errs,
		})
		return
	}
	if req.Country == "" {
		req.Country = defaultCountry
	}

	reqLogger.Info("Processing weather request",
		zap.String("zip", req.Zip),
		zap.String("country", req.Country))

	result, err := h.service.Lookup(ctx, req.City, req.State, req.Country, req.Zip)
	if err != nil {
		status, body := errorResponse(err)
		c.JSON(status, body)
		return
	}

	utils.GetSpanFromGinContext(c).SetAttributes(attribute.Bool("cache.hit", result.Cached))

	if result.Cached {
		c.Header(CacheHeader, "HIT")
	} else {
		c.Header(CacheHeader, "MISS")
	}

	response := NewWeatherResponse(result)
	reqLogger.Info("Weather request completed successfully",
		zap.Bool("cached", result.Cached),
		zap.Int("days", len(response.Daily)))

	c.JSON(http.StatusOK, response)
}

// errorResponse maps a lookup failure onto an HTTP status. Upstream details stay in the logs.
func errorResponse(err error) (int, ErrorResponse) {
	var lookupErr *forecast.LookupError
	if !errors.As(err, &lookupErr) {
		return http.StatusInternalServerError, ErrorResponse{Error: "Internal error", Code: "INTERNAL"}
	}

	body := ErrorResponse{Error: lookupErr.Message, Code: string(lookupErr.Kind)}

	switch lookupErr.Kind {
	case forecast.KindAddressRejected, forecast.KindNoCoordinates:
		return http.StatusUnprocessableEntity, body
	case forecast.KindUpstreamTimeout:
		return http.StatusGatewayTimeout, body
	default:
		return http.StatusBadGateway, body
	}
}

// NewWeatherResponse renders a lookup result the way /weather returns it.
func NewWeatherResponse(result *forecast.Result) WeatherResponse {
	days := result.Forecast.Daily()
	daily := make([]DayView, 0, len(days))
	for _, day := range days {
		icon, _ := day.Icon()
		daily = append(daily, DayView{
			Day:     day,
			Date:    day.Date(),
			Icon:    icon,
			IconURL: day.IconURL(),
		})
	}

	return WeatherResponse{
		Location: result.Location,
		Current:  result.Forecast.Parse(),
		Daily:    daily,
		Cached:   result.Cached,
	}
}
