package openweather

import "time"

const dateLayout = "2006-01-02"

// Day is one calendar day of the daily forecast. Timestamps are UTC; nil
// pointers mean the field was absent.
type Day struct {
	Time      *time.Time `json:"dt"`
	Sunrise   *time.Time `json:"sunrise"`
	Sunset    *time.Time `json:"sunset"`
	Moonrise  *time.Time `json:"moonrise"`
	Moonset   *time.Time `json:"moonset"`
	MoonPhase *float64   `json:"moon_phase"`
	Summary   string    `json:"summary,omitempty"`

	TempDay   *float64 `json:"temp_day"`
	TempMin   *float64 `json:"temp_min"`
	TempMax   *float64 `json:"temp_max"`
	TempNight *float64 `json:"temp_night"`
	TempEve   *float64 `json:"temp_eve"`
	TempMorn  *float64 `json:"temp_morn"`

	FeelsLikeDay   *float64 `json:"feels_like_day"`
	FeelsLikeNight *float64 `json:"feels_like_night"`

	Pressure    *int     `json:"pressure"`
	Humidity    *int     `json:"humidity"`
	DewPoint    *float64 `json:"dew_point"`
	WindSpeed   *float64 `json:"wind_speed"`
	WindDeg     *int     `json:"wind_deg"`
	WindGust    *float64 `json:"wind_gust"`
	Clouds      *int     `json:"clouds"`
	Pop         *float64 `json:"pop"`
	UVI         *float64 `json:"uvi"`
	Description string   `json:"conditions"`
	Condition   *int     `json:"condition_id"`

	icon    string
	hasIcon bool
}

// NewDay builds a Day from one element of the payload's daily array.
// The icon code is resolved here and never recomputed.
func NewDay(data map[string]interface{}) *Day {
	d := &Day{
		Time:      timeAt(data, "dt"),
		Sunrise:   timeAt(data, "sunrise"),
		Sunset:    timeAt(data, "sunset"),
		Moonrise:  timeAt(data, "moonrise"),
		Moonset:   timeAt(data, "moonset"),
		MoonPhase: floatAt(data, "moon_phase"),

		TempDay:   floatAt(data, "temp", "day"),
		TempMin:   floatAt(data, "temp", "min"),
		TempMax:   floatAt(data, "temp", "max"),
		TempNight: floatAt(data, "temp", "night"),
		TempEve:   floatAt(data, "temp", "eve"),
		TempMorn:  floatAt(data, "temp", "morn"),

		FeelsLikeDay:   floatAt(data, "feels_like", "day"),
		FeelsLikeNight: floatAt(data, "feels_like", "night"),

		Pressure:  intAt(data, "pressure"),
		Humidity:  intAt(data, "humidity"),
		DewPoint:  floatAt(data, "dew_point"),
		WindSpeed: floatAt(data, "wind_speed"),
		WindDeg:   intAt(data, "wind_deg"),
		WindGust:  floatAt(data, "wind_gust"),
		Clouds:    intAt(data, "clouds"),
		Pop:       floatAt(data, "pop"),
		UVI:       floatAt(data, "uvi"),
		Condition: intAt(data, "weather", 0, "id"),
	}

	d.Summary, _ = stringAt(data, "summary")
	d.Description, _ = stringAt(data, "weather", 0, "description")

	if d.Condition != nil {
		d.icon, d.hasIcon = IconCode(*d.Condition)
	}

	return d
}

func (d *Day) ConditionID() (int, bool) {
	if d == nil || d.Condition == nil {
		return 0, false
	}
	return *d.Condition, true
}

// Date formats the forecast day as YYYY-MM-DD, or "" when dt was absent.
func (d *Day) Date() string {
	if d.Time == nil {
		return ""
	}
	return d.Time.Format(dateLayout)
}

func (d *Day) Icon() (string, bool) {
	return d.icon, d.hasIcon
}

func (d *Day) IconURL() string {
	return iconURL(d.icon)
}
