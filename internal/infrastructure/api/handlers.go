package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/application"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/domain/entities"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/domain/ports"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/infrastructure/excel"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/pkg/logger"
)

// FetchFailedMessage is the only message clients see for upstream failures.
const FetchFailedMessage = "Unable to load weather data"

const Version = "1.0.0"

type DashboardService interface {
	GetDashboard(ctx context.Context, q application.LocationQuery) (entities.Dashboard, error)
	HealthCheck(ctx context.Context) error
}

type APIHandler struct {
	service DashboardService
	reports ports.ReportGenerator
	logger  logger.Logger
	now     func() time.Time
}

func NewAPIHandler(service DashboardService, reports ports.ReportGenerator, log logger.Logger) *APIHandler {
	if log == nil {
		log = logger.Discard()
	}
	return &APIHandler{
		service: service,
		reports: reports,
		logger:  log.WithField("component", "api_handler"),
		now:     time.Now,
	}
}

// GetWeather godoc
// @Summary Get the weather dashboard
// @Description Resolves the location from lat/lon, then city, then the default city, and returns current conditions with a 24 hour forecast.
// @Tags weather
// @Produce json
// @Param lat query number false "Latitude"
// @Param lon query number false "Longitude"
// @Param city query string false "City name"
// @Param unit query string false "Temperature unit" Enums(c, f)
// @Param geolocation query string false "Why no coordinates were sent" Enums(denied, unsupported)
// @Success 200 {object} DashboardView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /weather [get]
func (h *APIHandler) GetWeather(c *gin.Context) {
	query, unit, err := parseWeatherQuery(c)
	if err != nil {
		h.respondFetchError(c, err)
		return
	}

	dashboard, err := h.service.GetDashboard(c.Request.Context(), query)
	if err != nil {
		h.respondFetchError(c, err)
		return
	}

	c.JSON(http.StatusOK, BuildDashboardView(dashboard, unit))
}

// ExportWeather godoc
// @Summary Export the weather dashboard
// @Description Same location resolution as /weather, returned as an Excel workbook.
// @Tags weather
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param lat query number false "Latitude"
// @Param lon query number false "Longitude"
// @Param city query string false "City name"
// @Param unit query string false "Temperature unit" Enums(c, f)
// @Param geolocation query string false "Why no coordinates were sent" Enums(denied, unsupported)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /weather/export [get]
func (h *APIHandler) ExportWeather(c *gin.Context) {
	ctx := c.Request.Context()

	query, unit, err := parseWeatherQuery(c)
	if err != nil {
		h.respondFetchError(c, err)
		return
	}

	dashboard, err := h.service.GetDashboard(ctx, query)
	if err != nil {
		h.respondFetchError(c, err)
		return
	}

	data, err := h.reports.GenerateDashboardReport(ctx, dashboard, unit)
	if err != nil {
		_ = c.Error(err)
		h.respondError(c, http.StatusInternalServerError, "Failed to generate report")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", excel.ReportFileName(dashboard)))
	c.Data(http.StatusOK, excel.ContentType, data)
}

// HealthCheck godoc
// @Summary Health check
// @Description Reports the forecast provider and event feed status
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *APIHandler) HealthCheck(c *gin.Context) {
	healthStatus := HealthResponse{
		Status:  "healthy",
		Version: Version,
		Time:    h.now(),
		Services: map[string]string{
			"api":       "healthy",
			"dashboard": "healthy",
		},
	}

	if err := h.service.HealthCheck(c.Request.Context()); err != nil {
		healthStatus.Status = "degraded"
		healthStatus.Services["dashboard"] = fmt.Sprintf("unhealthy: %v", err)
	}

	c.JSON(http.StatusOK, healthStatus)
}

// parseWeatherQuery reads lat/lon, city and unit. Coordinates need both
// halves; a present but empty city still counts as a city search.
func parseWeatherQuery(c *gin.Context) (application.LocationQuery, entities.TemperatureUnit, error) {
	unit, err := entities.ParseTemperatureUnit(c.Query("unit"))
	if err != nil {
		return application.LocationQuery{}, "", err
	}

	latRaw, hasLat := c.GetQuery("lat")
	lonRaw, hasLon := c.GetQuery("lon")
	if hasLat || hasLon {
		if !hasLat {
			return application.LocationQuery{}, "", entities.ValidationError{Field: "lat", Reason: "required together with lon"}
		}
		if !hasLon {
			return application.LocationQuery{}, "", entities.ValidationError{Field: "lon", Reason: "required together with lat"}
		}

		lat, err := strconv.ParseFloat(latRaw, 64)
		if err != nil {
			return application.LocationQuery{}, "", entities.ValidationError{Field: "lat", Reason: "must be a number"}
		}
		lon, err := strconv.ParseFloat(lonRaw, 64)
		if err != nil {
			return application.LocationQuery{}, "", entities.ValidationError{Field: "lon", Reason: "must be a number"}
		}
		query := application.CoordinatesQuery(lat, lon)
		if err := query.Coordinates.Validate(); err != nil {
			return application.LocationQuery{}, "", err
		}
		return query, unit, nil
	}

	if city, ok := c.GetQuery("city"); ok {
		return application.CityQuery(city), unit, nil
	}

	switch c.Query("geolocation") {
	case "", "denied":
		return application.LocationQuery{}, unit, nil
	case "unsupported":
		return application.LocationQuery{GeolocationUnsupported: true}, unit, nil
	}
	return application.LocationQuery{}, "", entities.ValidationError{Field: "geolocation", Reason: "must be denied or unsupported"}
}

// respondFetchError hides upstream detail behind FetchFailedMessage.
// Validation errors keep their reason since the client can fix them.
func (h *APIHandler) respondFetchError(c *gin.Context, err error) {
	_ = c.Error(err)

	var validation entities.ValidationError
	var notFound *entities.LocationNotFoundError

	switch {
	case errors.As(err, &validation):
		h.respondError(c, http.StatusBadRequest, validation.Error())
	case errors.As(err, &notFound):
		h.respondError(c, http.StatusNotFound, FetchFailedMessage)
	default:
		h.respondError(c, http.StatusBadGateway, FetchFailedMessage)
	}
}

func (h *APIHandler) respondError(c *gin.Context, status int, message string) {
	h.logger.Debugf("HTTP %d: %s", status, message)
	c.JSON(status, ErrorResponse{
		Error:     http.StatusText(status),
		Message:   message,
		RequestID: c.GetString(requestIDKey),
		Time:      h.now(),
	})
}

type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id,omitempty"`
	Time      time.Time `json:"time"`
}

type HealthResponse struct {
	Status   string            `json:"status"`
	Version  string            `json:"version"`
	Time     time.Time         `json:"time"`
	Services map[string]string `json:"services"`
}
