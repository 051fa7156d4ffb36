package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/bootstrap"
)

// @title Weather Dashboard API
// @version 1.0.0
// @description Current conditions, a 24 hour forecast and precipitation chances for a location resolved from coordinates, a city name or the default city.
// @BasePath /api/v1
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	app, err := bootstrap.NewBootstrap()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("Application failed: %v", err)
	}
}
