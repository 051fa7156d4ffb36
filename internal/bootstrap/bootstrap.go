package bootstrap

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/application"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/config"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/domain/ports"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/infrastructure/api"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/infrastructure/excel"
	httpclient "github.com/k-shtanenko/weather-app/weather-dashboard/internal/infrastructure/http"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/infrastructure/messaging"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/infrastructure/scheduler"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/pkg/logger"
)

const refreshJobName = "refresh-default-city"

type Bootstrap struct {
	config *config.Config
	logger logger.Logger
}

// dependencies is everything Run wires together. publisher and scheduler
// are nil when disabled.
type dependencies struct {
	forecast  *httpclient.OpenMeteoForecastClient
	publisher ports.DashboardPublisher
	scheduler ports.Scheduler
	service   *application.DashboardService
	server    *api.APIServer
}

func NewBootstrap() (*Bootstrap, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.App.LogLevel, cfg.App.Env).WithField("service", cfg.App.Name)
	return NewBootstrapWithConfig(cfg, log), nil
}

func NewBootstrapWithConfig(cfg *config.Config, log logger.Logger) *Bootstrap {
	if log == nil {
		log = logger.Discard()
	}
	return &Bootstrap{config: cfg, logger: log}
}

// Run serves until SIGINT, SIGTERM or ctx cancellation.
func (b *Bootstrap) Run(ctx context.Context) error {
	b.logger.Info("Starting weather-dashboard service")
	b.PrintConfigInfo()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := b.initDependencies()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer b.closePublisher(deps.publisher)

	b.logger.Info("Performing initial health checks...")
	if err := b.newHealthChecker(deps).CheckAll(ctx); err != nil {
		return fmt.Errorf("initial health checks failed: %w", err)
	}

	if deps.scheduler != nil {
		if err := deps.scheduler.Schedule(ctx, refreshJobName, b.config.Scheduler.Interval, deps.service.RefreshDefault); err != nil {
			deps.scheduler.Stop()
			return fmt.Errorf("failed to schedule refresh: %w", err)
		}
		defer deps.scheduler.Stop()
	}

	serverErr := deps.server.Start()

	select {
	case <-ctx.Done():
		b.logger.Info("Shutdown signal received")
	case err, ok := <-serverErr:
		if ok && err != nil {
			return err
		}
	}

	if err := deps.server.Stop(context.Background()); err != nil {
		return err
	}

	b.logger.Info("Service stopped gracefully")
	return nil
}

func (b *Bootstrap) initDependencies() (*dependencies, error) {
	b.logger.Info("Initializing dependencies...")
	cfg := b.config

	forecast := httpclient.NewOpenMeteoForecastClient(cfg.OpenMeteo.ForecastURL, httpclient.ForecastOptions{
		Timezone:     cfg.OpenMeteo.Timezone,
		ForecastDays: cfg.OpenMeteo.ForecastDays,
		Timeout:      cfg.HTTP.Timeout,
	}, b.logger)
	geocoder := httpclient.NewOpenMeteoGeocoder(cfg.OpenMeteo.GeocodingURL, cfg.OpenMeteo.Language, cfg.HTTP.Timeout, b.logger)
	reverse := httpclient.NewBigDataCloudGeocoder(cfg.ReverseGeocoder.BaseURL, cfg.ReverseGeocoder.Language, cfg.HTTP.Timeout, b.logger)
	b.logger.Info("Open-Meteo and BigDataCloud clients initialized")

	deps := &dependencies{forecast: forecast}

	if cfg.Kafka.Enabled {
		publisher, err := messaging.NewKafkaPublisher(messaging.PublisherConfig{
			Broker:       cfg.Kafka.Broker,
			Topic:        cfg.Kafka.Topic,
			RequiredAcks: cfg.Kafka.RequiredAcks,
			MaxRetries:   cfg.Kafka.MaxRetries,
		}, b.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
		}
		deps.publisher = publisher
		b.logger.Infof("Kafka publisher initialized for topic: %s", cfg.Kafka.Topic)
	}

	resolver := application.NewLocationResolver(geocoder, cfg.Dashboard.DefaultCity, b.logger)
	floor := cfg.Dashboard.PrecipitationFloor
	aggregator := application.NewAggregator(application.AggregatorOptions{
		LookaheadHours:     cfg.Dashboard.LookaheadHours,
		PrecipitationFloor: &floor,
	})
	deps.service = application.NewDashboardService(forecast, reverse, resolver, aggregator, deps.publisher, b.logger)

	if cfg.Scheduler.Enabled {
		deps.scheduler = scheduler.NewCronScheduler(cfg.Scheduler.Timeout, b.logger)
		b.logger.Info("Scheduler initialized")
	}

	middleware := api.NewMiddleware(cfg.API.CorsAllowedOrigins, b.logger)
	deps.server = api.NewAPIServer(deps.service, excel.NewReportGenerator(b.logger), middleware, cfg, b.logger)

	return deps, nil
}

func (b *Bootstrap) newHealthChecker(deps *dependencies) *HealthChecker {
	probes := []Probe{{
		Name:    "Open-Meteo API",
		Timeout: b.config.HealthCheck.APITimeout,
		Check:   deps.forecast.HealthCheck,
	}}
	if deps.publisher != nil {
		probes = append(probes, Probe{
			Name:    "Kafka",
			Timeout: b.config.HealthCheck.KafkaTimeout,
			Check:   deps.publisher.HealthCheck,
		})
	}

	return NewHealthChecker(probes, b.config.HealthCheck.RetryInterval, b.config.HealthCheck.MaxRetries, b.logger)
}

func (b *Bootstrap) closePublisher(publisher ports.DashboardPublisher) {
	if publisher == nil {
		return
	}
	if err := publisher.Close(); err != nil {
		b.logger.Warnf("Failed to close publisher: %s", logger.FormatError(err))
	}
}

func (b *Bootstrap) PrintConfigInfo() {
	b.logger.Infof("Service Name: %s", b.config.App.Name)
	b.logger.Infof("Environment: %s", b.config.App.Env)
	b.logger.Infof("Log level: %s", b.config.App.LogLevel)
	b.logger.Infof("Open-Meteo forecast URL: %s", b.config.OpenMeteo.ForecastURL)
	b.logger.Infof("Default city: %s", b.config.Dashboard.DefaultCity)
	b.logger.Infof("Kafka enabled: %t (topic %s)", b.config.Kafka.Enabled, b.config.Kafka.Topic)
	b.logger.Infof("Scheduled refresh enabled: %t (interval %v)", b.config.Scheduler.Enabled, b.config.Scheduler.Interval)

	if logger.IsDebugEnabled(b.logger) {
		b.logger.Debugf("Geocoding URL: %s", b.config.OpenMeteo.GeocodingURL)
		b.logger.Debugf("Reverse geocoding URL: %s", b.config.ReverseGeocoder.BaseURL)
		b.logger.Debugf("Upstream timeout: %v", b.config.HTTP.Timeout)
	}
}
