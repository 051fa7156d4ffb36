package entities

import (
	"fmt"
	"math"
)

const UnknownLocationName = "Unknown Location"

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c Coordinates) Validate() error {
	if !isFinite(c.Latitude) {
		return ValidationError{Field: "lat", Reason: "must be a finite number"}
	}
	if !isFinite(c.Longitude) {
		return ValidationError{Field: "lon", Reason: "must be a finite number"}
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		return ValidationError{Field: "lat", Reason: "must be between -90 and 90"}
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return ValidationError{Field: "lon", Reason: "must be between -180 and 180"}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Latitude, c.Longitude)
}

type Location struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	CityName    string  `json:"city_name"`
	CountryName string  `json:"country_name"`
}

func (l Location) Coordinates() Coordinates {
	return Coordinates{Latitude: l.Latitude, Longitude: l.Longitude}
}

// DisplayName renders "City, Country", or just the city when the country
// is unknown.
func (l Location) DisplayName() string {
	if l.CountryName == "" {
		return l.CityName
	}
	return l.CityName + ", " + l.CountryName
}

// PlaceLabel is what the reverse geocoder knows about a coordinate pair.
type PlaceLabel struct {
	City                 string `json:"city"`
	Locality             string `json:"locality"`
	PrincipalSubdivision string `json:"principalSubdivision"`
	CountryName          string `json:"countryName"`
}

// CityName resolves city, then locality, then principal subdivision, then
// UnknownLocationName.
func (p PlaceLabel) CityName() string {
	for _, candidate := range []string{p.City, p.Locality, p.PrincipalSubdivision} {
		if candidate != "" {
			return candidate
		}
	}
	return UnknownLocationName
}

// GeocodeCandidate is one forward-geocoding hit.
type GeocodeCandidate struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (g GeocodeCandidate) Coordinates() Coordinates {
	return Coordinates{Latitude: g.Latitude, Longitude: g.Longitude}
}
