package entities

const (
	UnknownWeatherDescription = "Unknown"

	dayFallbackIcon   = "☀️"
	nightFallbackIcon = "🌙"
)

type weatherCondition struct {
	description string
	icon        string
}

// WMO weather interpretation codes as reported by Open-Meteo.
var weatherConditions = map[int]weatherCondition{
	0:  {"Clear sky", "☀️"},
	1:  {"Mainly clear", "🌤️"},
	2:  {"Partly cloudy", "⛅"},
	3:  {"Overcast", "☁️"},
	45: {"Foggy", "🌫️"},
	48: {"Foggy", "🌫️"},
	51: {"Light drizzle", "🌦️"},
	53: {"Drizzle", "🌦️"},
	55: {"Heavy drizzle", "🌧️"},
	61: {"Light rain", "🌧️"},
	63: {"Rain", "🌧️"},
	65: {"Heavy rain", "🌧️"},
	71: {"Light snow", "🌨️"},
	73: {"Snow", "🌨️"},
	75: {"Heavy snow", "🌨️"},
	80: {"Light showers", "🌦️"},
	81: {"Showers", "🌧️"},
	82: {"Heavy showers", "⛈️"},
	95: {"Thunderstorm", "⛈️"},
	96: {"Thunderstorm with hail", "⛈️"},
	99: {"Heavy thunderstorm", "⛈️"},
}

func WeatherDescription(code int) string {
	if c, ok := weatherConditions[code]; ok {
		return c.description
	}
	return UnknownWeatherDescription
}

// WeatherIcon never fails: unmapped codes get a sun or moon glyph.
func WeatherIcon(code int, isDay bool) string {
	if c, ok := weatherConditions[code]; ok {
		return c.icon
	}
	if isDay {
		return dayFallbackIcon
	}
	return nightFallbackIcon
}
