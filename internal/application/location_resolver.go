package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/domain/entities"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/domain/ports"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/pkg/logger"
)

const DefaultCity = "London"

// LocationQuery carries whatever the client could provide. Coordinates win
// over City; when both are nil the client had no position, either because
// it was refused or because GeolocationUnsupported.
type LocationQuery struct {
	Coordinates            *entities.Coordinates
	City                   *string
	GeolocationUnsupported bool
}

func CoordinatesQuery(lat, lon float64) LocationQuery {
	return LocationQuery{Coordinates: &entities.Coordinates{Latitude: lat, Longitude: lon}}
}

func CityQuery(name string) LocationQuery {
	return LocationQuery{City: &name}
}

type Resolution struct {
	Coordinates entities.Coordinates
	Status      string
}

type LocationResolver struct {
	geocoder    ports.Geocoder
	defaultCity string
	logger      logger.Logger
}

func NewLocationResolver(geocoder ports.Geocoder, defaultCity string, log logger.Logger) *LocationResolver {
	if defaultCity == "" {
		defaultCity = DefaultCity
	}
	if log == nil {
		log = logger.Discard()
	}
	return &LocationResolver{
		geocoder:    geocoder,
		defaultCity: defaultCity,
		logger:      log.WithField("component", "location_resolver"),
	}
}

func (r *LocationResolver) Resolve(ctx context.Context, q LocationQuery) (Resolution, error) {
	switch {
	case q.Coordinates != nil:
		if err := q.Coordinates.Validate(); err != nil {
			return Resolution{}, err
		}
		return Resolution{Coordinates: *q.Coordinates, Status: entities.StatusCurrentLocation}, nil

	case q.City != nil:
		coords, err := r.FromCityName(ctx, *q.City)
		if err != nil {
			return Resolution{}, err
		}
		return Resolution{Coordinates: coords}, nil
	}

	return r.fallback(ctx, &entities.PermissionDeniedError{
		Reason:      "no coordinates supplied",
		Unsupported: q.GeolocationUnsupported,
	})
}

// fallback absorbs a denied geolocation by searching the default city.
func (r *LocationResolver) fallback(ctx context.Context, denied *entities.PermissionDeniedError) (Resolution, error) {
	r.logger.Infof("%v, using default city %s", denied, r.defaultCity)

	coords, err := r.FromCityName(ctx, r.defaultCity)
	if err != nil {
		return Resolution{}, fmt.Errorf("default city: %w", err)
	}
	status := entities.StatusDefaultLocation
	if denied.Unsupported {
		status = entities.StatusUnsupported
	}
	return Resolution{Coordinates: coords, Status: status}, nil
}

// FromCityName geocodes a free-text place name and keeps the first hit.
func (r *LocationResolver) FromCityName(ctx context.Context, name string) (entities.Coordinates, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entities.Coordinates{}, entities.ValidationError{Field: "city", Reason: "please enter a city name"}
	}

	candidates, err := r.geocoder.Search(ctx, name)
	if err != nil {
		return entities.Coordinates{}, fmt.Errorf("geocode %q: %w", name, err)
	}
	if len(candidates) == 0 {
		return entities.Coordinates{}, &entities.LocationNotFoundError{Query: name}
	}

	first := candidates[0]
	r.logger.Debugf("Geocoded %q to %s (%s, %s)", name, first.Coordinates(), first.Name, first.Country)
	return first.Coordinates(), nil
}

func (r *LocationResolver) DefaultCity() string {
	return r.defaultCity
}
