package application

import (
	"fmt"
	"time"

	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/domain/entities"
)

const (
	// HourlyWindow is the number of samples in every summary.
	HourlyWindow = 24

	DefaultLookaheadHours     = 6
	DefaultPrecipitationFloor = 80.0

	maxProbability = 100.0
)

var hourlyTimeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

type AggregatorOptions struct {
	// LookaheadHours bounds the scan for near-term rain and snow.
	LookaheadHours int
	// PrecipitationFloor is the minimum chance reported while precipitation
	// is already falling. Nil means DefaultPrecipitationFloor; zero disables it.
	PrecipitationFloor *float64
}

// Aggregator turns a provider bundle into a ForecastSummary. It holds only
// its options and is safe for concurrent use.
type Aggregator struct {
	lookaheadHours     int
	precipitationFloor float64
}

func NewAggregator(opts AggregatorOptions) *Aggregator {
	lookahead := opts.LookaheadHours
	if lookahead <= 0 {
		lookahead = DefaultLookaheadHours
	}

	floor := DefaultPrecipitationFloor
	if opts.PrecipitationFloor != nil {
		floor = *opts.PrecipitationFloor
	}

	return &Aggregator{
		lookaheadHours:     lookahead,
		precipitationFloor: clampProbability(floor),
	}
}

func (a *Aggregator) Aggregate(bundle *entities.RawForecastBundle) (entities.ForecastSummary, error) {
	if err := validateBundle(bundle); err != nil {
		return entities.ForecastSummary{}, err
	}

	current := bundle.Current
	hourly, err := buildHourly(bundle)
	if err != nil {
		return entities.ForecastSummary{}, err
	}

	currentRain := deref(current.Rain)
	currentSnow := deref(current.Snowfall)
	rainChance, snowChance := a.precipitationChances(bundle.Hourly, currentRain, currentSnow)

	return entities.ForecastSummary{
		Temperature:   *current.Temperature,
		FeelsLike:     deref(current.ApparentTemperature),
		WeatherCode:   *current.WeatherCode,
		Description:   entities.WeatherDescription(*current.WeatherCode),
		Humidity:      deref(current.RelativeHumidity),
		WindSpeed:     entities.RoundHalfUp(deref(current.WindSpeed)),
		Pressure:      deref(current.SurfacePressure),
		Precipitation: currentRain + currentSnow,
		RainChance:    rainChance,
		SnowChance:    snowChance,
		Hourly:        hourly,
	}, nil
}

// precipitationChances only credits hours that forecast a measurable amount,
// then lifts the result to the floor if it is already raining or snowing.
func (a *Aggregator) precipitationChances(series *entities.HourlySeries, currentRain, currentSnow float64) (float64, float64) {
	var rainChance, snowChance float64

	window := a.lookaheadHours
	if n := len(series.PrecipitationProbability); n < window {
		window = n
	}

	for i := 0; i < window; i++ {
		prob := valueAt(series.PrecipitationProbability, i)
		if valueAt(series.Rain, i) > 0 && prob > rainChance {
			rainChance = prob
		}
		if valueAt(series.Snowfall, i) > 0 && prob > snowChance {
			snowChance = prob
		}
	}

	if currentRain > 0 && rainChance < a.precipitationFloor {
		rainChance = a.precipitationFloor
	}
	if currentSnow > 0 && snowChance < a.precipitationFloor {
		snowChance = a.precipitationFloor
	}

	return clampProbability(rainChance), clampProbability(snowChance)
}

func validateBundle(bundle *entities.RawForecastBundle) error {
	if bundle == nil {
		return &entities.MalformedResponseError{Field: "body"}
	}
	if bundle.Current == nil {
		return &entities.MalformedResponseError{Field: "current"}
	}
	if bundle.Current.Temperature == nil {
		return &entities.MalformedResponseError{Field: "current.temperature_2m"}
	}
	if bundle.Current.WeatherCode == nil {
		return &entities.MalformedResponseError{Field: "current.weather_code"}
	}
	if bundle.Hourly == nil {
		return &entities.MalformedResponseError{Field: "hourly"}
	}

	h := bundle.Hourly
	required := []struct {
		field  string
		length int
		absent bool
	}{
		{"hourly.time", len(h.Time), h.Time == nil},
		{"hourly.temperature_2m", len(h.Temperature), h.Temperature == nil},
		{"hourly.weather_code", len(h.WeatherCode), h.WeatherCode == nil},
	}

	for _, r := range required {
		if r.absent {
			return &entities.MalformedResponseError{Field: r.field}
		}
	}
	for _, r := range required {
		if r.length < HourlyWindow {
			return &entities.InsufficientDataError{Field: r.field, Got: r.length, Required: HourlyWindow}
		}
	}

	return nil
}

func buildHourly(bundle *entities.RawForecastBundle) ([]entities.HourlySample, error) {
	h := bundle.Hourly
	loc := bundle.Location()

	samples := make([]entities.HourlySample, 0, HourlyWindow)
	for i := 0; i < HourlyWindow; i++ {
		ts, err := parseHourlyTime(h.Time[i], loc)
		if err != nil {
			return nil, &entities.MalformedResponseError{Field: fmt.Sprintf("hourly.time[%d]", i), Err: err}
		}

		code := 0
		if h.WeatherCode[i] != nil {
			code = *h.WeatherCode[i]
		}

		samples = append(samples, entities.HourlySample{
			Time:                     ts,
			Temperature:              valueAt(h.Temperature, i),
			PrecipitationProbability: valueAt(h.PrecipitationProbability, i),
			Rain:                     valueAt(h.Rain, i),
			Snow:                     valueAt(h.Snowfall, i),
			WeatherCode:              code,
		})
	}

	return samples, nil
}

func parseHourlyTime(value string, loc *time.Location) (time.Time, error) {
	var lastErr error
	for _, layout := range hourlyTimeLayouts {
		ts, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func valueAt(values []*float64, i int) float64 {
	if i < 0 || i >= len(values) {
		return 0
	}
	return deref(values[i])
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func clampProbability(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > maxProbability {
		return maxProbability
	}
	return v
}
