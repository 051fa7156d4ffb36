package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/domain/entities"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/domain/ports"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/pkg/logger"
)

type DashboardService struct {
	provider   ports.ForecastProvider
	reverse    ports.ReverseGeocoder
	resolver   *LocationResolver
	aggregator *Aggregator
	publisher  ports.DashboardPublisher
	logger     logger.Logger

	now   func() time.Time
	newID func() string
}

// NewDashboardService wires one fetch cycle. publisher may be nil when no
// event feed is configured.
func NewDashboardService(
	provider ports.ForecastProvider,
	reverse ports.ReverseGeocoder,
	resolver *LocationResolver,
	aggregator *Aggregator,
	publisher ports.DashboardPublisher,
	log logger.Logger,
) *DashboardService {
	if log == nil {
		log = logger.Discard()
	}
	return &DashboardService{
		provider:   provider,
		reverse:    reverse,
		resolver:   resolver,
		aggregator: aggregator,
		publisher:  publisher,
		logger:     log.WithField("component", "dashboard_service"),
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
	}
}

// GetDashboard resolves the query and runs forecast, aggregation and
// reverse geocoding in that order. Nothing is kept after it returns.
func (s *DashboardService) GetDashboard(ctx context.Context, q LocationQuery) (entities.Dashboard, error) {
	resolution, err := s.resolver.Resolve(ctx, q)
	if err != nil {
		return entities.Dashboard{}, err
	}

	dashboard, err := s.fetchByCoordinates(ctx, resolution.Coordinates)
	if err != nil {
		return entities.Dashboard{}, err
	}
	dashboard.Status = resolution.Status

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, dashboard); err != nil {
			s.logger.Warnf("Failed to publish dashboard %s: %v", dashboard.ID, err)
		}
	}

	return dashboard, nil
}

// RefreshDefault builds the default city's dashboard and publishes it.
// It is the scheduled job.
func (s *DashboardService) RefreshDefault(ctx context.Context) error {
	city := s.resolver.DefaultCity()
	startTime := s.now()
	s.logger.Infof("Refreshing dashboard for default city %s", city)

	coords, err := s.resolver.FromCityName(ctx, city)
	if err != nil {
		return fmt.Errorf("resolve default city: %w", err)
	}

	dashboard, err := s.fetchByCoordinates(ctx, coords)
	if err != nil {
		return fmt.Errorf("refresh default city: %w", err)
	}

	if s.publisher == nil {
		s.logger.Debug("No publisher configured, refreshed dashboard dropped")
		return nil
	}

	if err := s.publisher.Publish(ctx, dashboard); err != nil {
		return fmt.Errorf("publish dashboard: %w", err)
	}

	s.logger.Infof("Default city dashboard %s published in %v", dashboard.ID, s.now().Sub(startTime))
	return nil
}

func (s *DashboardService) HealthCheck(ctx context.Context) error {
	if err := s.provider.HealthCheck(ctx); err != nil {
		return fmt.Errorf("forecast provider health check failed: %w", err)
	}
	if s.publisher != nil {
		if err := s.publisher.HealthCheck(ctx); err != nil {
			return fmt.Errorf("publisher health check failed: %w", err)
		}
	}
	return nil
}

func (s *DashboardService) fetchByCoordinates(ctx context.Context, coords entities.Coordinates) (entities.Dashboard, error) {
	s.logger.Debugf("Fetching forecast for %s", coords)

	bundle, err := s.provider.FetchForecast(ctx, coords)
	if err != nil {
		return entities.Dashboard{}, fmt.Errorf("fetch forecast: %w", err)
	}

	summary, err := s.aggregator.Aggregate(bundle)
	if err != nil {
		return entities.Dashboard{}, fmt.Errorf("aggregate forecast: %w", err)
	}

	label, err := s.reverse.Reverse(ctx, coords)
	if err != nil {
		return entities.Dashboard{}, fmt.Errorf("reverse geocode: %w", err)
	}

	return entities.Dashboard{
		ID: s.newID(),
		Location: entities.Location{
			Latitude:    coords.Latitude,
			Longitude:   coords.Longitude,
			CityName:    label.CityName(),
			CountryName: label.CountryName,
		},
		Summary:   summary,
		IsDay:     bundle.IsDaytime(),
		FetchedAt: s.now(),
	}, nil
}
