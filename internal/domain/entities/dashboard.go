package entities

import (
	"time"
)

const (
	StatusCurrentLocation = "Using your current location"
	StatusDefaultLocation = "Location access denied - Using default city"
	StatusUnsupported     = "Location not supported - Using default city"
)

// Dashboard is the result of one fetch cycle. It is handed to renderers as
// a value and never kept between requests.
type Dashboard struct {
	ID        string          `json:"id"`
	Location  Location        `json:"location"`
	Summary   ForecastSummary `json:"summary"`
	IsDay     bool            `json:"is_day"`
	Status    string          `json:"status,omitempty"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// LocalFetchedAt is FetchedAt in the forecast's timezone, which the hourly
// samples carry. Without samples it is returned unchanged.
func (d Dashboard) LocalFetchedAt() time.Time {
	if len(d.Summary.Hourly) == 0 {
		return d.FetchedAt
	}
	return d.FetchedAt.In(d.Summary.Hourly[0].Time.Location())
}
