package handlers

import (
	"github.com/vzahanych/zipweather/internal/models"
	"github.com/vzahanych/zipweather/internal/openweather"
)

// WeatherRequest is the address a forecast is requested for. Country defaults to US.
type WeatherRequest struct {
	Zip     string `form:"zip" json:"zip" validate:"required,zipcode" binding:"required"`
	Country string `form:"country" json:"country" validate:"omitempty,country_code"`
	City    string `form:"city" json:"city" validate:"max=100"`
	State   string `form:"state" json:"state" validate:"max=100"`
}

type WeatherResponse struct {
	Location models.Location               `json:"location"`
	Current  openweather.CurrentConditions `json:"current"`
	Daily    []DayView                     `json:"daily"`
	Cached   bool                          `json:"cached"`
}

// DayView adds the derived date and icon fields to a forecast day.
type DayView struct {
	*openweather.Day
	Date    string `json:"date"`
	Icon    string `json:"icon,omitempty"`
	IconURL string `json:"icon_url"`
}

type ErrorResponse struct {
	Error   string      `json:"error" validate:"required,min=1,max=500"`
	Code    string      `json:"code,omitempty" validate:"omitempty,min=1,max=50"`
	Details interface{} `json:"details,omitempty"`
}

type HealthResponse struct {
	Status    string                 `json:"status" validate:"required,oneof=ok alive ready"`
	Uptime    string                 `json:"uptime" validate:"required"`
	Timestamp string                 `json:"timestamp,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
}
