package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/k-shtanenko/weather-app/weather-dashboard/docs"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/config"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/domain/ports"
	"github.com/k-shtanenko/weather-app/weather-dashboard/internal/pkg/logger"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type APIServer struct {
	server     *http.Server
	router     *gin.Engine
	handler    *APIHandler
	middleware *Middleware
	config     *config.Config
	logger     logger.Logger
}

func NewAPIServer(service DashboardService, reports ports.ReportGenerator, middleware *Middleware, cfg *config.Config, log logger.Logger) *APIServer {
	gin.SetMode(gin.ReleaseMode)
	if cfg.App.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}
	if log == nil {
		log = logger.Discard()
	}

	s := &APIServer{
		router:     gin.New(),
		handler:    NewAPIHandler(service, reports, log),
		middleware: middleware,
		config:     cfg,
		logger:     log.WithField("component", "api_server"),
	}
	s.setupRoutes()
	return s
}

func (s *APIServer) setupRoutes() {
	s.router.Use(s.middleware.RequestID())
	s.router.Use(s.middleware.Recovery())
	s.router.Use(s.middleware.Logging())
	s.router.Use(s.middleware.CORS())

	api := s.router.Group(s.config.API.BasePath)

	api.GET("/health", s.handler.HealthCheck)

	weather := api.Group("/weather")
	{
		weather.GET("", s.handler.GetWeather)
		weather.GET("/export", s.handler.ExportWeather)
	}

	if s.config.API.EnableSwagger {
		url := ginSwagger.URL("/swagger/doc.json")
		s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, url))
		s.logger.Info("Swagger documentation enabled at /swagger/index.html")
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not Found",
			"message": fmt.Sprintf("Route %s not found", c.Request.URL.Path),
		})
	})
}

// Handler exposes the router, mainly for tests.
func (s *APIServer) Handler() http.Handler {
	return s.router
}

// Start serves in the background. Listen failures are sent on the
// returned channel.
func (s *APIServer) Start() <-chan error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.App.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("Starting API server on port %d", s.config.App.Port)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start server: %w", err)
		}
		close(errCh)
	}()

	return errCh
}

func (s *APIServer) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	s.logger.Info("Shutting down API server...")

	shutdownCtx := ctx
	if s.config.App.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(ctx, s.config.App.ShutdownTimeout)
		defer cancel()
	}

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server gracefully: %w", err)
	}

	s.logger.Info("API server stopped")
	return nil
}
