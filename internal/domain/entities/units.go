package entities

import (
	"math"
	"strings"
)

type TemperatureUnit string

const (
	Celsius    TemperatureUnit = "C"
	Fahrenheit TemperatureUnit = "F"
)

func ParseTemperatureUnit(s string) (TemperatureUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "c", "celsius", "metric":
		return Celsius, nil
	case "f", "fahrenheit", "imperial":
		return Fahrenheit, nil
	}
	return "", ValidationError{Field: "unit", Reason: "must be c or f"}
}

// Display converts a Celsius reading for presentation in the unit.
func (u TemperatureUnit) Display(celsius float64) int {
	if u == Fahrenheit {
		return CelsiusToFahrenheit(celsius)
	}
	return RoundHalfUp(celsius)
}

func CelsiusToFahrenheit(celsius float64) int {
	return RoundHalfUp(celsius*9/5 + 32)
}

// RoundHalfUp rounds .5 toward positive infinity, so -2.5 becomes -2.
func RoundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func (u TemperatureUnit) Symbol() string {
	if u == Fahrenheit {
		return "°F"
	}
	return "°C"
}
