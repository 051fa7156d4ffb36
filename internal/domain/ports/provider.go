package ports

import (
	"context"

	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/domain/entities"
)

type ForecastProvider interface {
	FetchForecast(ctx context.Context, coords entities.Coordinates) (*entities.RawForecastBundle, error)
	HealthCheck(ctx context.Context) error
}

type Geocoder interface {
	Search(ctx context.Context, name string) ([]entities.GeocodeCandidate, error)
}

type ReverseGeocoder interface {
	Reverse(ctx context.Context, coords entities.Coordinates) (entities.PlaceLabel, error)
}
