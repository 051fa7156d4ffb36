package application

import (
	"errors"
	"testing"
	"time"

	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/domain/entities"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregator_Aggregate(t *testing.T) {
	aggregator := NewAggregator(AggregatorOptions{})

	t.Run("current values pass through", func(t *testing.T) {
		summary, err := aggregator.Aggregate(testutils.ForecastBundle(48))
		require.NoError(t, err)

		assert.Equal(t, 12.3, summary.Temperature)
		assert.Equal(t, 10.1, summary.FeelsLike)
		assert.Equal(t, 70.0, summary.Humidity)
		assert.Equal(t, 1012.4, summary.Pressure)
		assert.Equal(t, 15, summary.WindSpeed)
		assert.Equal(t, 3, summary.WeatherCode)
		assert.Equal(t, "Overcast", summary.Description)
		assert.Equal(t, 0.0, summary.Precipitation)
	})

	t.Run("exactly 24 samples in source order", func(t *testing.T) {
		bundle := testutils.ForecastBundle(48)
		bundle.Hourly.PrecipitationProbability[5] = testutils.Float(35)
		bundle.Hourly.Rain[7] = testutils.Float(0.4)
		bundle.Hourly.Snowfall[9] = testutils.Float(1.2)
		bundle.Hourly.WeatherCode[11] = testutils.Int(61)

		summary, err := aggregator.Aggregate(bundle)
		require.NoError(t, err)
		require.Len(t, summary.Hourly, HourlyWindow)

		for i, sample := range summary.Hourly {
			assert.Equal(t, testutils.FixtureStart.Add(time.Duration(i)*time.Hour), sample.Time.UTC())
			assert.Equal(t, 10+float64(i), sample.Temperature)
		}
		assert.Equal(t, 35.0, summary.Hourly[5].PrecipitationProbability)
		assert.Equal(t, 0.4, summary.Hourly[7].Rain)
		assert.Equal(t, 1.2, summary.Hourly[9].Snow)
		assert.Equal(t, 61, summary.Hourly[11].WeatherCode)
	})

	t.Run("null hourly values default to zero", func(t *testing.T) {
		bundle := testutils.ForecastBundle(24)
		bundle.Hourly.PrecipitationProbability[2] = nil
		bundle.Hourly.Rain[2] = nil
		bundle.Hourly.Snowfall = bundle.Hourly.Snowfall[:3]
		bundle.Hourly.Temperature[4] = nil
		bundle.Hourly.WeatherCode[4] = nil

		summary, err := aggregator.Aggregate(bundle)
		require.NoError(t, err)

		assert.Equal(t, 0.0, summary.Hourly[2].PrecipitationProbability)
		assert.Equal(t, 0.0, summary.Hourly[2].Rain)
		assert.Equal(t, 0.0, summary.Hourly[20].Snow)
		assert.Equal(t, 0.0, summary.Hourly[4].Temperature)
		assert.Equal(t, 0, summary.Hourly[4].WeatherCode)
	})

	t.Run("unknown weather code", func(t *testing.T) {
		bundle := testutils.ForecastBundle(24)
		bundle.Current.WeatherCode = testutils.Int(7)

		summary, err := aggregator.Aggregate(bundle)
		require.NoError(t, err)
		assert.Equal(t, "Unknown", summary.Description)
	})

	t.Run("current precipitation sums rain and snowfall", func(t *testing.T) {
		bundle := testutils.ForecastBundle(24)
		bundle.Current.Rain = testutils.Float(0.5)
		bundle.Current.Snowfall = testutils.Float(0.25)

		summary, err := aggregator.Aggregate(bundle)
		require.NoError(t, err)
		assert.Equal(t, 0.75, summary.Precipitation)
	})

	t.Run("idempotent", func(t *testing.T) {
		bundle := testutils.ForecastBundle(30)
		bundle.Hourly.Rain[1] = testutils.Float(0.3)
		bundle.Hourly.PrecipitationProbability[1] = testutils.Float(40)

		first, err := aggregator.Aggregate(bundle)
		require.NoError(t, err)
		second, err := aggregator.Aggregate(bundle)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

func TestAggregator_PrecipitationChances(t *testing.T) {
	aggregator := NewAggregator(AggregatorOptions{})

	t.Run("floor applies when rain is falling now", func(t *testing.T) {
		bundle := testutils.ForecastBundle(24)
		bundle.Current.Rain = testutils.Float(0.2)
		bundle.Hourly.PrecipitationProbability[0] = testutils.Float(10)
		bundle.Hourly.PrecipitationProbability[1] = testutils.Float(20)
		bundle.Hourly.Rain[1] = testutils.Float(0.1)

		summary, err := aggregator.Aggregate(bundle)
		require.NoError(t, err)
		assert.Equal(t, 80.0, summary.RainChance)
		assert.Equal(t, 0.0, summary.SnowChance)
	})

	t.Run("floor never lowers a higher chance", func(t *testing.T) {
		bundle := testutils.ForecastBundle(24)
		bundle.Current.Rain = testutils.Float(1.5)
		bundle.Hourly.PrecipitationProbability[3] = testutils.Float(95)
		bundle.Hourly.Rain[3] = testutils.Float(2)

		summary, err := aggregator.Aggregate(bundle)
		require.NoError(t, err)
		assert.Equal(t, 95.0, summary.RainChance)
	})

	t.Run("probability without measurable rain is ignored", func(t *testing.T) {
		bundle := testutils.ForecastBundle(24)
		for i := 0; i < 6; i++ {
			bundle.Hourly.PrecipitationProbability[i] = testutils.Float(60)
		}

		summary, err := aggregator.Aggregate(bundle)
		require.NoError(t, err)
		assert.Equal(t, 0.0, summary.RainChance)
		assert.Equal(t, 0.0, summary.SnowChance)
	})

	t.Run("only the lookahead window counts", func(t *testing.T) {
		bundle := testutils.ForecastBundle(24)
		bundle.Hourly.PrecipitationProbability[6] = testutils.Float(90)
		bundle.Hourly.Rain[6] = testutils.Float(3)
		bundle.Hourly.PrecipitationProbability[2] = testutils.Float(30)
		bundle.Hourly.Rain[2] = testutils.Float(0.2)

		summary, err := aggregator.Aggregate(bundle)
		require.NoError(t, err)
		assert.Equal(t, 30.0, summary.RainChance)
	})

	t.Run("snow tracked separately", func(t *testing.T) {
		bundle := testutils.ForecastBundle(24)
		bundle.Hourly.PrecipitationProbability[0] = testutils.Float(45)
		bundle.Hourly.Snowfall[0] = testutils.Float(0.7)
		bundle.Hourly.PrecipitationProbability[4] = testutils.Float(25)
		bundle.Hourly.Rain[4] = testutils.Float(0.1)
		bundle.Current.Snowfall = testutils.Float(0.1)

		summary, err := aggregator.Aggregate(bundle)
		require.NoError(t, err)
		assert.Equal(t, 80.0, summary.SnowChance)
		assert.Equal(t, 25.0, summary.RainChance)
	})

	t.Run("short probability array bounds the scan", func(t *testing.T) {
		bundle := testutils.ForecastBundle(24)
		bundle.Hourly.PrecipitationProbability = testutils.Floats(50, 70)
		bundle.Hourly.Rain[1] = testutils.Float(0.2)
		bundle.Hourly.Rain[3] = testutils.Float(0.2)

		summary, err := aggregator.Aggregate(bundle)
		require.NoError(t, err)
		assert.Equal(t, 70.0, summary.RainChance)
	})

	t.Run("out of range probabilities are clamped", func(t *testing.T) {
		bundle := testutils.ForecastBundle(24)
		bundle.Hourly.PrecipitationProbability[0] = testutils.Float(140)
		bundle.Hourly.Rain[0] = testutils.Float(4)

		summary, err := aggregator.Aggregate(bundle)
		require.NoError(t, err)
		assert.Equal(t, 100.0, summary.RainChance)
	})

	t.Run("configurable window and floor", func(t *testing.T) {
		custom := NewAggregator(AggregatorOptions{LookaheadHours: 8, PrecipitationFloor: testutils.Float(60)})

		bundle := testutils.ForecastBundle(24)
		bundle.Hourly.PrecipitationProbability[7] = testutils.Float(40)
		bundle.Hourly.Rain[7] = testutils.Float(1)
		bundle.Current.Snowfall = testutils.Float(0.3)

		summary, err := custom.Aggregate(bundle)
		require.NoError(t, err)
		assert.Equal(t, 40.0, summary.RainChance)
		assert.Equal(t, 60.0, summary.SnowChance)
	})

	t.Run("zero floor keeps the hourly chance", func(t *testing.T) {
		noFloor := NewAggregator(AggregatorOptions{LookaheadHours: 6, PrecipitationFloor: testutils.Float(0)})

		bundle := testutils.ForecastBundle(24)
		bundle.Current.Rain = testutils.Float(0.5)

		summary, err := noFloor.Aggregate(bundle)
		require.NoError(t, err)
		assert.Equal(t, 0.0, summary.RainChance)

		bundle.Hourly.PrecipitationProbability[2] = testutils.Float(35)
		bundle.Hourly.Rain[2] = testutils.Float(0.4)

		summary, err = noFloor.Aggregate(bundle)
		require.NoError(t, err)
		assert.Equal(t, 35.0, summary.RainChance)
	})
}

func TestAggregator_Errors(t *testing.T) {
	aggregator := NewAggregator(AggregatorOptions{})

	t.Run("fewer than 24 hourly entries", func(t *testing.T) {
		summary, err := aggregator.Aggregate(testutils.ForecastBundle(23))

		var insufficient *entities.InsufficientDataError
		require.True(t, errors.As(err, &insufficient))
		assert.Equal(t, "hourly.time", insufficient.Field)
		assert.Equal(t, 23, insufficient.Got)
		assert.Equal(t, 24, insufficient.Required)
		assert.Empty(t, summary.Hourly)
	})

	t.Run("one short parallel array", func(t *testing.T) {
		bundle := testutils.ForecastBundle(24)
		bundle.Hourly.WeatherCode = bundle.Hourly.WeatherCode[:10]

		_, err := aggregator.Aggregate(bundle)

		var insufficient *entities.InsufficientDataError
		require.True(t, errors.As(err, &insufficient))
		assert.Equal(t, "hourly.weather_code", insufficient.Field)
	})

	testCases := []struct {
		name   string
		mutate func(b *entities.RawForecastBundle) *entities.RawForecastBundle
		field  string
	}{
		{"nil bundle", func(b *entities.RawForecastBundle) *entities.RawForecastBundle { return nil }, "body"},
		{"missing current", func(b *entities.RawForecastBundle) *entities.RawForecastBundle { b.Current = nil; return b }, "current"},
		{"missing hourly", func(b *entities.RawForecastBundle) *entities.RawForecastBundle { b.Hourly = nil; return b }, "hourly"},
		{"missing current temperature", func(b *entities.RawForecastBundle) *entities.RawForecastBundle {
			b.Current.Temperature = nil
			return b
		}, "current.temperature_2m"},
		{"missing current weather code", func(b *entities.RawForecastBundle) *entities.RawForecastBundle {
			b.Current.WeatherCode = nil
			return b
		}, "current.weather_code"},
		{"missing hourly time", func(b *entities.RawForecastBundle) *entities.RawForecastBundle {
			b.Hourly.Time = nil
			return b
		}, "hourly.time"},
		{"missing hourly temperature", func(b *entities.RawForecastBundle) *entities.RawForecastBundle {
			b.Hourly.Temperature = nil
			return b
		}, "hourly.temperature_2m"},
		{"unparsable timestamp", func(b *entities.RawForecastBundle) *entities.RawForecastBundle {
			b.Hourly.Time[3] = "yesterday"
			return b
		}, "hourly.time[3]"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := aggregator.Aggregate(tc.mutate(testutils.ForecastBundle(24)))

			var malformed *entities.MalformedResponseError
			require.True(t, errors.As(err, &malformed), "got %v", err)
			assert.Equal(t, tc.field, malformed.Field)
		})
	}
}

func TestNewAggregator_Defaults(t *testing.T) {
	aggregator := NewAggregator(AggregatorOptions{LookaheadHours: -1, PrecipitationFloor: testutils.Float(250)})

	assert.Equal(t, DefaultLookaheadHours, aggregator.lookaheadHours)
	assert.Equal(t, 100.0, aggregator.precipitationFloor)

	unset := NewAggregator(AggregatorOptions{})
	assert.Equal(t, DefaultPrecipitationFloor, unset.precipitationFloor)
}
