package entities

import (
	"time"
)

// RawForecastBundle mirrors the Open-Meteo /v1/forecast payload. Pointer
// fields distinguish an absent value from a zero reading.
type RawForecastBundle struct {
	Latitude             float64            `json:"latitude"`
	Longitude            float64            `json:"longitude"`
	Timezone             string             `json:"timezone"`
	TimezoneAbbreviation string             `json:"timezone_abbreviation"`
	UTCOffsetSeconds     int                `json:"utc_offset_seconds"`
	Current              *CurrentConditions `json:"current"`
	Hourly               *HourlySeries      `json:"hourly"`
}

type CurrentConditions struct {
	Time                string   `json:"time"`
	Temperature         *float64 `json:"temperature_2m"`
	ApparentTemperature *float64 `json:"apparent_temperature"`
	RelativeHumidity    *float64 `json:"relative_humidity_2m"`
	SurfacePressure     *float64 `json:"surface_pressure"`
	WindSpeed           *float64 `json:"wind_speed_10m"`
	Precipitation       *float64 `json:"precipitation"`
	Rain                *float64 `json:"rain"`
	Snowfall            *float64 `json:"snowfall"`
	WeatherCode         *int     `json:"weather_code"`
	IsDay               *int     `json:"is_day"`
}

// HourlySeries holds parallel arrays sharing the Time axis. Individual
// entries may be null.
type HourlySeries struct {
	Time                     []string   `json:"time"`
	Temperature              []*float64 `json:"temperature_2m"`
	PrecipitationProbability []*float64 `json:"precipitation_probability"`
	Rain                     []*float64 `json:"rain"`
	Snowfall                 []*float64 `json:"snowfall"`
	WeatherCode              []*int     `json:"weather_code"`
}

// IsDaytime reports the provider's day/night flag. A missing flag counts as day.
func (b *RawForecastBundle) IsDaytime() bool {
	if b == nil || b.Current == nil || b.Current.IsDay == nil {
		return true
	}
	return *b.Current.IsDay == 1
}

// Location returns the zone the provider localized the hourly axis to.
func (b *RawForecastBundle) Location() *time.Location {
	if b.Timezone != "" {
		if loc, err := time.LoadLocation(b.Timezone); err == nil {
			return loc
		}
	}
	name := b.TimezoneAbbreviation
	if name == "" {
		name = "UTC"
	}
	return time.FixedZone(name, b.UTCOffsetSeconds)
}

type HourlySample struct {
	Time                     time.Time `json:"time"`
	Temperature              float64   `json:"temperature"`
	PrecipitationProbability float64   `json:"precipitation_probability"`
	Rain                     float64   `json:"rain"`
	Snow                     float64   `json:"snow"`
	WeatherCode              int       `json:"weather_code"`
}

// ForecastSummary is unit-agnostic: every temperature is in degrees Celsius
// and left unrounded. Wind speed is the only value rounded at this stage.
type ForecastSummary struct {
	Temperature   float64        `json:"temperature"`
	FeelsLike     float64        `json:"feels_like"`
	WeatherCode   int            `json:"weather_code"`
	Description   string         `json:"description"`
	Humidity      float64        `json:"humidity"`
	WindSpeed     int            `json:"wind_speed"`
	Pressure      float64        `json:"pressure"`
	Precipitation float64        `json:"precipitation"`
	RainChance    float64        `json:"rain_chance"`
	SnowChance    float64        `json:"snow_chance"`
	Hourly        []HourlySample `json:"hourly"`
}
