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

type OpenMeteoGeocoder struct {
	client   *http.Client
	baseURL  string
	language string
	logger   logger.Logger
}

var _ ports.Geocoder = (*OpenMeteoGeocoder)(nil)

type geocodingResponse struct {
	Results []entities.GeocodeCandidate `json:"results"`
}

func NewOpenMeteoGeocoder(baseURL, language string, timeout time.Duration, log logger.Logger) *OpenMeteoGeocoder {
	if language == "" {
		language = "en"
	}
	if log == nil {
		log = logger.Discard()
	}
	return &OpenMeteoGeocoder{
		client:   newHTTPClient(timeout),
		baseURL:  strings.TrimRight(baseURL, "/"),
		language: language,
		logger:   log.WithField("component", "openmeteo_geocoder"),
	}
}

// Search returns at most one candidate. An absent results field decodes to
// an empty slice.
func (g *OpenMeteoGeocoder) Search(ctx context.Context, name string) ([]entities.GeocodeCandidate, error) {
	query := url.Values{}
	query.Set("name", name)
	query.Set("count", "1")
	query.Set("language", g.language)
	query.Set("format", "json")

	var resp geocodingResponse
	if err := getJSON(ctx, g.client, g.baseURL+"?"+query.Encode(), &resp); err != nil {
		return nil, err
	}

	g.logger.Debugf("Geocoding %q returned %d results", name, len(resp.Results))
	if resp.Results == nil {
		return []entities.GeocodeCandidate{}, nil
	}
	return resp.Results, nil
}
