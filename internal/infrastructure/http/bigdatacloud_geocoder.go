package http

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/domain/entities"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/domain/ports"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/pkg/logger"
)

// BigDataCloudGeocoder labels coordinates through the keyless client-side
// reverse geocoding endpoint.
type BigDataCloudGeocoder struct {
	client   *http.Client
	baseURL  string
	language string
	logger   logger.Logger
}

var _ ports.ReverseGeocoder = (*BigDataCloudGeocoder)(nil)

func NewBigDataCloudGeocoder(baseURL, language string, timeout time.Duration, log logger.Logger) *BigDataCloudGeocoder {
	if language == "" {
		language = "en"
	}
	if log == nil {
		log = logger.Discard()
	}
	return &BigDataCloudGeocoder{
		client:   newHTTPClient(timeout),
		baseURL:  strings.TrimRight(baseURL, "/"),
		language: language,
		logger:   log.WithField("component", "bigdatacloud_geocoder"),
	}
}

func (g *BigDataCloudGeocoder) Reverse(ctx context.Context, coords entities.Coordinates) (entities.PlaceLabel, error) {
	query := url.Values{}
	query.Set("latitude", formatCoordinate(coords.Latitude))
	query.Set("longitude", formatCoordinate(coords.Longitude))
	query.Set("localityLanguage", g.language)

	var label entities.PlaceLabel
	if err := getJSON(ctx, g.client, g.baseURL+"?"+query.Encode(), &label); err != nil {
		return entities.PlaceLabel{}, err
	}

	g.logger.Debugf("Reverse geocoded %s to %s", coords, label.CityName())
	return label, nil
}
