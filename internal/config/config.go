package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App             AppConfig
	OpenMeteo       OpenMeteoConfig
	ReverseGeocoder ReverseGeocoderConfig `mapstructure:"reverse_geocoder"`
	HTTP            HTTPConfig
	Dashboard       DashboardConfig
	Kafka           KafkaConfig
	Scheduler       SchedulerConfig
	API             APIConfig
	HealthCheck     HealthCheckConfig
}

type AppConfig struct {
	Name            string        `mapstructure:"name"`
	Env             string        `mapstructure:"env"`
	LogLevel        string        `mapstructure:"log_level"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type OpenMeteoConfig struct {
	ForecastURL  string `mapstructure:"forecast_url"`
	GeocodingURL string `mapstructure:"geocoding_url"`
	ForecastDays int    `mapstructure:"forecast_days"`
	Timezone     string `mapstructure:"timezone"`
	Language     string `mapstructure:"language"`
}

type ReverseGeocoderConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	Language string `mapstructure:"language"`
}

// HTTPConfig applies to every upstream call. A zero timeout means none.
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type DashboardConfig struct {
	DefaultCity        string  `mapstructure:"default_city"`
	LookaheadHours     int     `mapstructure:"lookahead_hours"`
	PrecipitationFloor float64 `mapstructure:"precipitation_floor"`
}

type KafkaConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Broker       string `mapstructure:"broker"`
	Topic        string `mapstructure:"topic"`
	RequiredAcks int16  `mapstructure:"required_acks"`
	MaxRetries   int    `mapstructure:"max_retries"`
}

type SchedulerConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type APIConfig struct {
	BasePath           string   `mapstructure:"base_path"`
	EnableSwagger      bool     `mapstructure:"enable_swagger"`
	CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type HealthCheckConfig struct {
	APITimeout    time.Duration `mapstructure:"api_timeout"`
	KafkaTimeout  time.Duration `mapstructure:"kafka_timeout"`
	RetryInterval time.Duration `mapstructure:"retry_interval"`
	MaxRetries    int           `mapstructure:"max_retries"`
}

func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/weather-dashboard/")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := overrideFromEnv(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "weather-dashboard")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.shutdown_timeout", "30s")

	v.SetDefault("openmeteo.forecast_url", "https://api.open-meteo.com/v1/forecast")
	v.SetDefault("openmeteo.geocoding_url", "https://geocoding-api.open-meteo.com/v1/search")
	v.SetDefault("openmeteo.forecast_days", 2)
	v.SetDefault("openmeteo.timezone", "auto")
	v.SetDefault("openmeteo.language", "en")

	v.SetDefault("reverse_geocoder.base_url", "https://api.bigdatacloud.net/data/reverse-geocode-client")
	v.SetDefault("reverse_geocoder.language", "en")

	v.SetDefault("http.timeout", "0s")

	v.SetDefault("dashboard.default_city", "London")
	v.SetDefault("dashboard.lookahead_hours", 6)
	v.SetDefault("dashboard.precipitation_floor", 80)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.broker", "kafka:9093")
	v.SetDefault("kafka.topic", "weather-dashboard-events")
	v.SetDefault("kafka.required_acks", 1)
	v.SetDefault("kafka.max_retries", 3)

	v.SetDefault("scheduler.enabled", false)
	v.SetDefault("scheduler.interval", "15m")
	v.SetDefault("scheduler.timeout", "1m")

	v.SetDefault("api.base_path", "/api/v1")
	v.SetDefault("api.enable_swagger", true)
	v.SetDefault("api.cors_allowed_origins", []string{"*"})

	v.SetDefault("healthcheck.api_timeout", "5s")
	v.SetDefault("healthcheck.kafka_timeout", "5s")
	v.SetDefault("healthcheck.retry_interval", "2s")
	v.SetDefault("healthcheck.max_retries", 5)
}

func overrideFromEnv(v *viper.Viper) error {
	if env := os.Getenv("APP_ENV"); env != "" {
		v.Set("app.env", env)
	}
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		v.Set("app.log_level", logLevel)
	}
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		v.Set("app.port", p)
	}

	if forecastURL := os.Getenv("OPENMETEO_FORECAST_URL"); forecastURL != "" {
		v.Set("openmeteo.forecast_url", forecastURL)
	}
	if geocodingURL := os.Getenv("OPENMETEO_GEOCODING_URL"); geocodingURL != "" {
		v.Set("openmeteo.geocoding_url", geocodingURL)
	}
	if reverseURL := os.Getenv("REVERSE_GEOCODER_URL"); reverseURL != "" {
		v.Set("reverse_geocoder.base_url", reverseURL)
	}
	if city := os.Getenv("DEFAULT_CITY"); city != "" {
		v.Set("dashboard.default_city", city)
	}

	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		v.Set("kafka.broker", broker)
	}
	if topic := os.Getenv("KAFKA_DASHBOARD_TOPIC"); topic != "" {
		v.Set("kafka.topic", topic)
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		list := strings.Split(origins, ",")
		for i, origin := range list {
			list[i] = strings.TrimSpace(origin)
		}
		v.Set("api.cors_allowed_origins", list)
	}

	return nil
}

func validateConfig(cfg *Config) error {
	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		return fmt.Errorf("app port must be between 1 and 65535")
	}

	for name, raw := range map[string]string{
		"openmeteo forecast url":    cfg.OpenMeteo.ForecastURL,
		"openmeteo geocoding url":   cfg.OpenMeteo.GeocodingURL,
		"reverse geocoder base url": cfg.ReverseGeocoder.BaseURL,
	} {
		if raw == "" {
			return fmt.Errorf("%s cannot be empty", name)
		}
		if u, err := url.ParseRequestURI(raw); err != nil || u.Host == "" {
			return fmt.Errorf("%s is not an absolute URL: %q", name, raw)
		}
	}

	if cfg.HTTP.Timeout < 0 {
		return fmt.Errorf("http timeout cannot be negative")
	}

	if strings.TrimSpace(cfg.Dashboard.DefaultCity) == "" {
		return fmt.Errorf("default city cannot be empty")
	}
	if cfg.Dashboard.LookaheadHours <= 0 || cfg.Dashboard.LookaheadHours > 24 {
		return fmt.Errorf("lookahead hours must be between 1 and 24")
	}
	if cfg.Dashboard.PrecipitationFloor < 0 || cfg.Dashboard.PrecipitationFloor > 100 {
		return fmt.Errorf("precipitation floor must be between 0 and 100")
	}

	if cfg.Kafka.Enabled {
		if cfg.Kafka.Broker == "" {
			return fmt.Errorf("kafka broker cannot be empty")
		}
		if cfg.Kafka.Topic == "" {
			return fmt.Errorf("kafka topic cannot be empty")
		}
	}

	if cfg.Scheduler.Enabled {
		if !cfg.Kafka.Enabled {
			return fmt.Errorf("scheduler requires kafka to be enabled")
		}
		if cfg.Scheduler.Interval <= 0 {
			return fmt.Errorf("scheduler interval must be positive")
		}
	}

	return nil
}
