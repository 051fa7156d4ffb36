package excel

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/domain/entities"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/domain/ports"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/pkg/logger"
	"github.com/xuri/excelize/v2"
)

const (
	SheetDashboard  = "Dashboard"
	SheetHourly     = "Hourly Forecast"
	SheetStatistics = "Statistics"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ReportGenerator struct {
	logger logger.Logger
}

var _ ports.ReportGenerator = (*ReportGenerator)(nil)

func NewReportGenerator(log logger.Logger) *ReportGenerator {
	if log == nil {
		log = logger.Discard()
	}
	return &ReportGenerator{logger: log.WithField("component", "excel_generator")}
}

// GenerateDashboardReport renders a dashboard into an xlsx workbook.
// Temperatures are converted to unit; all other values stay metric.
func (g *ReportGenerator) GenerateDashboardReport(ctx context.Context, dashboard entities.Dashboard, unit entities.TemperatureUnit) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.logger.Infof("Generating dashboard report for %s", dashboard.Location.DisplayName())

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:       fmt.Sprintf("Weather Dashboard - %s", dashboard.Location.DisplayName()),
		Subject:     "Weather Forecast",
		Creator:     "Weather Dashboard",
		Description: fmt.Sprintf("Forecast for %s fetched at %s", dashboard.Location.DisplayName(), dashboard.LocalFetchedAt().Format("2006-01-02 15:04")),
		Identifier:  dashboard.ID,
	}); err != nil {
		return nil, fmt.Errorf("failed to set document properties: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DCE6F1"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SheetDashboard); err != nil {
		return nil, fmt.Errorf("failed to rename default sheet: %w", err)
	}
	if err := g.createDashboardSheet(f, dashboard, unit, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to create dashboard sheet: %w", err)
	}
	if err := g.createHourlySheet(f, dashboard, unit, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to create hourly sheet: %w", err)
	}
	if err := g.createStatisticsSheet(f, dashboard, unit); err != nil {
		return nil, fmt.Errorf("failed to create statistics sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel to buffer: %w", err)
	}

	g.logger.Debugf("Generated dashboard report %s (%d bytes)", dashboard.ID, buf.Len())
	return buf.Bytes(), nil
}

func (g *ReportGenerator) createDashboardSheet(f *excelize.File, d entities.Dashboard, unit entities.TemperatureUnit, headerStyle int) error {
	s := d.Summary
	rows := [][]interface{}{
		{"Weather Report", d.Location.DisplayName()},
		{"Date", d.LocalFetchedAt().Format("Monday, January 2, 2006")},
		{"Status", d.Status},
		{"Latitude", d.Location.Latitude},
		{"Longitude", d.Location.Longitude},
		{},
		{"Condition", s.Description},
		{"Temperature (" + unit.Symbol() + ")", unit.Display(s.Temperature)},
		{"Feels Like (" + unit.Symbol() + ")", unit.Display(s.FeelsLike)},
		{"Humidity (%)", s.Humidity},
		{"Wind Speed (km/h)", s.WindSpeed},
		{"Pressure (hPa)", s.Pressure},
		{"Precipitation (mm)", s.Precipitation},
		{"Rain Chance (%)", s.RainChance},
		{"Snow Chance (%)", s.SnowChance},
	}

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if err := f.SetSheetRow(SheetDashboard, cell(1, i+1), &row); err != nil {
			return err
		}
	}

	if err := f.SetCellStyle(SheetDashboard, "A1", fmt.Sprintf("A%d", len(rows)), headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetDashboard, "A", "A", 22); err != nil {
		return err
	}
	return f.SetColWidth(SheetDashboard, "B", "B", 34)
}

func (g *ReportGenerator) createHourlySheet(f *excelize.File, d entities.Dashboard, unit entities.TemperatureUnit, headerStyle int) error {
	if _, err := f.NewSheet(SheetHourly); err != nil {
		return err
	}

	headers := []interface{}{
		"Time", "Temperature (" + unit.Symbol() + ")", "Precipitation Probability (%)",
		"Rain (mm)", "Snowfall (cm)", "Weather",
	}
	if err := f.SetSheetRow(SheetHourly, "A1", &headers); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetHourly, "A1", cell(len(headers), 1), headerStyle); err != nil {
		return err
	}

	for i, sample := range d.Summary.Hourly {
		row := []interface{}{
			sample.Time.Format("2006-01-02 15:04"),
			unit.Display(sample.Temperature),
			sample.PrecipitationProbability,
			sample.Rain,
			sample.Snow,
			entities.WeatherDescription(sample.WeatherCode),
		}
		if err := f.SetSheetRow(SheetHourly, cell(1, i+2), &row); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(SheetHourly, "A", "A", 18); err != nil {
		return err
	}
	return f.SetColWidth(SheetHourly, "B", colLetter(len(headers)), 16)
}

func (g *ReportGenerator) createStatisticsSheet(f *excelize.File, d entities.Dashboard, unit entities.TemperatureUnit) error {
	hourly := d.Summary.Hourly
	if len(hourly) == 0 {
		return nil
	}

	if _, err := f.NewSheet(SheetStatistics); err != nil {
		return err
	}

	var totalTemp, maxProbability float64
	minTemp, maxTemp := hourly[0].Temperature, hourly[0].Temperature
	conditionCount := make(map[string]int)
	dominant := ""

	for _, sample := range hourly {
		totalTemp += sample.Temperature
		if sample.Temperature < minTemp {
			minTemp = sample.Temperature
		}
		if sample.Temperature > maxTemp {
			maxTemp = sample.Temperature
		}
		if sample.PrecipitationProbability > maxProbability {
			maxProbability = sample.PrecipitationProbability
		}

		desc := entities.WeatherDescription(sample.WeatherCode)
		conditionCount[desc]++
		// first condition to reach the top count wins ties
		if dominant == "" || conditionCount[desc] > conditionCount[dominant] {
			dominant = desc
		}
	}

	stats := []struct {
		label string
		value interface{}
	}{
		{"Hours", len(hourly)},
		{"Average Temperature", fmt.Sprintf("%d %s", unit.Display(totalTemp/float64(len(hourly))), unit.Symbol())},
		{"Min Temperature", fmt.Sprintf("%d %s", unit.Display(minTemp), unit.Symbol())},
		{"Max Temperature", fmt.Sprintf("%d %s", unit.Display(maxTemp), unit.Symbol())},
		{"Max Precipitation Probability", fmt.Sprintf("%.0f %%", maxProbability)},
		{"Dominant Weather", dominant},
	}

	for i, stat := range stats {
		row := i + 1
		if err := f.SetCellValue(SheetStatistics, cell(1, row), stat.label); err != nil {
			return err
		}
		if err := f.SetCellValue(SheetStatistics, cell(2, row), stat.value); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(SheetStatistics, "A", "A", 30); err != nil {
		return err
	}
	return f.SetColWidth(SheetStatistics, "B", "B", 20)
}

var unsafeFileChars = regexp.MustCompile(`[^a-z0-9]+`)

// ReportFileName builds an attachment name such as
// "weather-london-2024-03-01.xlsx".
func ReportFileName(d entities.Dashboard) string {
	slug := strings.Trim(unsafeFileChars.ReplaceAllString(strings.ToLower(d.Location.CityName), "-"), "-")
	if slug == "" {
		slug = "location"
	}
	return fmt.Sprintf("weather-%s-%s.xlsx", slug, d.LocalFetchedAt().Format("2006-01-02"))
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func colLetter(col int) string {
	letter, _ := excelize.ColumnNumberToName(col)
	return letter
}
