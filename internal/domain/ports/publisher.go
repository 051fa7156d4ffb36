package ports

import (
	"context"

	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/domain/entities"
)

// DashboardPublisher pushes finished dashboards to downstream consumers.
type DashboardPublisher interface {
	Publish(ctx context.Context, dashboard entities.Dashboard) error
	HealthCheck(ctx context.Context) error
	Close() error
}

type ReportGenerator interface {
	GenerateDashboardReport(ctx context.Context, dashboard entities.Dashboard, unit entities.TemperatureUnit) ([]byte, error)
}
