package testutils

import (
	"time"

	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/domain/entities"
)

const HourlyLayout = "2006-01-02T15:04"

var FixtureStart = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func Float(v float64) *float64 { return &v }
func Int(v int) *int           { return &v }

func Floats(values ...float64) []*float64 {
	out := make([]*float64, len(values))
	for i := range values {
		out[i] = Float(values[i])
	}
	return out
}

// ForecastBundle builds a dry, overcast bundle with the given number of
// hourly entries. Hourly temperature at index i is 10+i.
func ForecastBundle(hours int) *entities.RawForecastBundle {
	series := &entities.HourlySeries{
		Time:                     make([]string, hours),
		Temperature:              make([]*float64, hours),
		PrecipitationProbability: make([]*float64, hours),
		Rain:                     make([]*float64, hours),
		Snowfall:                 make([]*float64, hours),
		WeatherCode:              make([]*int, hours),
	}

	for i := 0; i < hours; i++ {
		series.Time[i] = FixtureStart.Add(time.Duration(i) * time.Hour).Format(HourlyLayout)
		series.Temperature[i] = Float(10 + float64(i))
		series.PrecipitationProbability[i] = Float(0)
		series.Rain[i] = Float(0)
		series.Snowfall[i] = Float(0)
		series.WeatherCode[i] = Int(3)
	}

	return &entities.RawForecastBundle{
		Latitude:             51.5,
		Longitude:            -0.12,
		Timezone:             "",
		TimezoneAbbreviation: "UTC",
		UTCOffsetSeconds:     0,
		Current: &entities.CurrentConditions{
			Time:                FixtureStart.Format(HourlyLayout),
			Temperature:         Float(12.3),
			ApparentTemperature: Float(10.1),
			RelativeHumidity:    Float(70),
			SurfacePressure:     Float(1012.4),
			WindSpeed:           Float(14.6),
			Precipitation:       Float(0),
			Rain:                Float(0),
			Snowfall:            Float(0),
			WeatherCode:         Int(3),
			IsDay:               Int(1),
		},
		Hourly: series,
	}
}
