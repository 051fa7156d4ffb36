package http

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/domain/entities"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/domain/ports"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/pkg/logger"
)

var (
	currentFields = []string{
		"temperature_2m",
		"relative_humidity_2m",
		"apparent_temperature",
		"is_day",
		"precipitation",
		"rain",
		"snowfall",
		"weather_code",
		"surface_pressure",
		"wind_speed_10m",
	}
	hourlyFields = []string{
		"temperature_2m",
		"precipitation_probability",
		"rain",
		"snowfall",
		"weather_code",
	}
)

// healthCheckCoordinates is central London.
var healthCheckCoordinates = entities.Coordinates{Latitude: 51.5074, Longitude: -0.1278}

type ForecastOptions struct {
	Timezone     string
	ForecastDays int
	Timeout      time.Duration
}

type OpenMeteoForecastClient struct {
	client       *http.Client
	baseURL      string
	timezone     string
	forecastDays int
	logger       logger.Logger
}

var _ ports.ForecastProvider = (*OpenMeteoForecastClient)(nil)

func NewOpenMeteoForecastClient(baseURL string, opts ForecastOptions, log logger.Logger) *OpenMeteoForecastClient {
	if opts.Timezone == "" {
		opts.Timezone = "auto"
	}
	if opts.ForecastDays <= 0 {
		opts.ForecastDays = 2
	}
	if log == nil {
		log = logger.Discard()
	}
	return &OpenMeteoForecastClient{
		client:       newHTTPClient(opts.Timeout),
		baseURL:      strings.TrimRight(baseURL, "/"),
		timezone:     opts.Timezone,
		forecastDays: opts.ForecastDays,
		logger:       log.WithField("component", "openmeteo_forecast"),
	}
}

func (c *OpenMeteoForecastClient) FetchForecast(ctx context.Context, coords entities.Coordinates) (*entities.RawForecastBundle, error) {
	c.logger.Debugf("Fetching forecast for %s", coords)

	var bundle entities.RawForecastBundle
	if err := getJSON(ctx, c.client, c.forecastURL(coords, c.forecastDays, currentFields, hourlyFields), &bundle); err != nil {
		return nil, err
	}

	c.logger.Debugf("Fetched forecast for %s (timezone %s)", coords, bundle.Timezone)
	return &bundle, nil
}

// HealthCheck asks for a one-day forecast with a single current field.
func (c *OpenMeteoForecastClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.forecastURL(healthCheckCoordinates, 1, []string{"temperature_2m"}, nil), nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute health check: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API health check failed with status: %d", resp.StatusCode)
	}

	c.logger.Debug("Open-Meteo API health check passed")
	return nil
}

func (c *OpenMeteoForecastClient) forecastURL(coords entities.Coordinates, days int, current, hourly []string) string {
	query := url.Values{}
	query.Set("latitude", formatCoordinate(coords.Latitude))
	query.Set("longitude", formatCoordinate(coords.Longitude))
	query.Set("current", strings.Join(current, ","))
	if len(hourly) > 0 {
		query.Set("hourly", strings.Join(hourly, ","))
	}
	query.Set("timezone", c.timezone)
	query.Set("forecast_days", strconv.Itoa(days))
	return c.baseURL + "?" + query.Encode()
}
