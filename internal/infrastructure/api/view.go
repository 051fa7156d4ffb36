package api

import (
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/domain/entities"
)

const (
	MapZoom    = 10
	MapTileURL = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"

	dateLayout = "Monday, January 2, 2006"
	hourLayout = "15:04"
)

// DashboardView is the render-ready form of a dashboard. Temperatures are
// already converted to Unit; everything else is metric.
type DashboardView struct {
	ID            string       `json:"id"`
	Location      string       `json:"location"`
	City          string       `json:"city"`
	Country       string       `json:"country,omitempty"`
	Date          string       `json:"date"`
	Status        string       `json:"status,omitempty"`
	IsDay         bool         `json:"is_day"`
	Theme         string       `json:"theme"`
	Icon          string       `json:"icon"`
	Description   string       `json:"description"`
	Unit          string       `json:"unit"`
	Temperature   int          `json:"temperature"`
	FeelsLike     int          `json:"feels_like"`
	Humidity      float64      `json:"humidity"`
	WindSpeed     int          `json:"wind_speed"`
	Pressure      float64      `json:"pressure"`
	Precipitation float64      `json:"precipitation"`
	RainChance    float64      `json:"rain_chance"`
	SnowChance    float64      `json:"snow_chance"`
	Hourly        []HourlyView `json:"hourly"`
	Map           MapView      `json:"map"`
}

type HourlyView struct {
	Time                     string  `json:"time"`
	Icon                     string  `json:"icon"`
	Temperature              int     `json:"temperature"`
	PrecipitationProbability float64 `json:"precipitation_probability"`
}

type MapView struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      int     `json:"zoom"`
	TileURL   string  `json:"tile_url"`
}

// BuildDashboardView renders d in unit. The date is shown in the forecast's
// own timezone when hourly data carries one. Hourly icons always use the
// day variant.
func BuildDashboardView(d entities.Dashboard, unit entities.TemperatureUnit) DashboardView {
	s := d.Summary

	fetchedAt := d.LocalFetchedAt()

	theme := "night"
	if d.IsDay {
		theme = "day"
	}

	hourly := make([]HourlyView, len(s.Hourly))
	for i, sample := range s.Hourly {
		hourly[i] = HourlyView{
			Time:                     sample.Time.Format(hourLayout),
			Icon:                     entities.WeatherIcon(sample.WeatherCode, true),
			Temperature:              unit.Display(sample.Temperature),
			PrecipitationProbability: sample.PrecipitationProbability,
		}
	}

	return DashboardView{
		ID:            d.ID,
		Location:      d.Location.DisplayName(),
		City:          d.Location.CityName,
		Country:       d.Location.CountryName,
		Date:          fetchedAt.Format(dateLayout),
		Status:        d.Status,
		IsDay:         d.IsDay,
		Theme:         theme,
		Icon:          entities.WeatherIcon(s.WeatherCode, d.IsDay),
		Description:   s.Description,
		Unit:          string(unit),
		Temperature:   unit.Display(s.Temperature),
		FeelsLike:     unit.Display(s.FeelsLike),
		Humidity:      s.Humidity,
		WindSpeed:     s.WindSpeed,
		Pressure:      s.Pressure,
		Precipitation: s.Precipitation,
		RainChance:    s.RainChance,
		SnowChance:    s.SnowChance,
		Hourly:        hourly,
		Map: MapView{
			Latitude:  d.Location.Latitude,
			Longitude: d.Location.Longitude,
			Zoom:      MapZoom,
			TileURL:   MapTileURL,
		},
	}
}
