package api

import (
	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/followjobs/followjobs/api/handlers"
	"github.com/followjobs/followjobs/api/middleware"
	"github.com/followjobs/followjobs/api/validation"
	"github.com/followjobs/followjobs/config"
	"github.com/followjobs/followjobs/internal/logger"
	"github.com/followjobs/followjobs/internal/tracing"
	"github.com/followjobs/followjobs/services"
)

const AppSource = "followjobs-api"

// RegisterRoutes sets up all API endpoints
func RegisterRoutes(r *gin.Engine, s *services.Services, cfg *config.AppConfig, log logger.Logger) error {
	if s == nil {
		panic("Services cannot be nil")
	}

	if err := validation.RegisterValidators(); err != nil {
		return err
	}

	// outermost recovery renders the 500 body, the jaeger one records the panic and re-panics
	r.Use(middleware.RecoveryMiddleware(log))
	r.Use(tracing.RecoveryWithJaeger(opentracing.GlobalTracer()))
	r.Use(middleware.RequestIdMiddleware())
	r.Use(middleware.RequestLoggerMiddleware(log))
	r.Use(middleware.CORSMiddleware(cfg.CorsAllowedOrigins))

	apiHandlers := handlers.InitHandlers(s, log)

	r.GET("/health", handlers.HealthCheck)

	api := r.Group("/api")
	api.Use(middleware.APIKeyMiddleware(middleware.APIKeyConfig{
		HeaderName:  middleware.APIKeyHeader,
		ValidAPIKey: cfg.APIKey,
	}))
	api.Use(middleware.CustomContextMiddleware(AppSource))
	api.Use(middleware.TracingMiddleware())
	{
		applications := api.Group("/applications")
		{
			applications.GET("", apiHandlers.Applications.List())
			applications.POST("", apiHandlers.Applications.Create())
			applications.GET("/search", apiHandlers.Applications.Search())
			applications.GET("/range", apiHandlers.Applications.ListByDateRange())
			applications.GET("/stale", apiHandlers.Applications.ListStale())
			applications.GET("/stats", apiHandlers.Applications.Stats())
			applications.GET("/stats/portals", apiHandlers.Applications.PortalStats())
			applications.GET("/portal/:portal", apiHandlers.Applications.ListByPortal())
			applications.GET("/status/:status", apiHandlers.Applications.ListByStatus())
			applications.POST("/clean", apiHandlers.Applications.Clean())
			applications.GET("/:id", apiHandlers.Applications.Get())
			applications.PUT("/:id", apiHandlers.Applications.Update())
			applications.PATCH("/:id/status", apiHandlers.Applications.UpdateStatus())
			applications.DELETE("/:id", apiHandlers.Applications.Delete())
		}
	}
	return nil
}
