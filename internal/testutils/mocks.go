package testutils

import (
	"context"

	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/domain/entities"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/domain/ports"
	"github.com/stretchr/testify/mock"
)

type MockForecastProvider struct {
	mock.Mock
}

func (m *MockForecastProvider) FetchForecast(ctx context.Context, coords entities.Coordinates) (*entities.RawForecastBundle, error) {
	args := m.Called(ctx, coords)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RawForecastBundle), args.Error(1)
}

func (m *MockForecastProvider) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Search(ctx context.Context, name string) ([]entities.GeocodeCandidate, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.GeocodeCandidate), args.Error(1)
}

type MockReverseGeocoder struct {
	mock.Mock
}

func (m *MockReverseGeocoder) Reverse(ctx context.Context, coords entities.Coordinates) (entities.PlaceLabel, error) {
	args := m.Called(ctx, coords)
	return args.Get(0).(entities.PlaceLabel), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, dashboard entities.Dashboard) error {
	args := m.Called(ctx, dashboard)
	return args.Error(0)
}

func (m *MockPublisher) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockReportGenerator struct {
	mock.Mock
}

func (m *MockReportGenerator) GenerateDashboardReport(ctx context.Context, dashboard entities.Dashboard, unit entities.TemperatureUnit) ([]byte, error) {
	args := m.Called(ctx, dashboard, unit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

var (
	_ ports.ForecastProvider   = (*MockForecastProvider)(nil)
	_ ports.Geocoder           = (*MockGeocoder)(nil)
	_ ports.ReverseGeocoder    = (*MockReverseGeocoder)(nil)
	_ ports.DashboardPublisher = (*MockPublisher)(nil)
	_ ports.ReportGenerator    = (*MockReportGenerator)(nil)
)
