package router

import (
	"net/http"

	"github.com/NomadCrew/trcs2-health/config"
	_ "github.com/NomadCrew/trcs2-health/docs" // registers the swagger spec
	"github.com/NomadCrew/trcs2-health/handlers"
	"github.com/NomadCrew/trcs2-health/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config        *config.Config
	HealthHandler *handlers.HealthHandler
	// MetricsHandler serves /metrics. Defaults to promhttp.Handler().
	MetricsHandler http.Handler
}

// SetupRouter configures and returns the Gin engine with every route of the
// health API.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	// Global Middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeadersMiddleware(&deps.Config.Server))
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))
	r.Use(middleware.ErrorHandler())

	r.NoRoute(middleware.NotFoundHandler())
	r.NoMethod(middleware.MethodNotAllowedHandler())

	// Health routes, optionally mounted under API_PREFIX
	health := r.Group(deps.Config.Server.APIPrefix)
	{
		health.GET("/health", deps.HealthHandler.Health)
		health.GET("/health/live", deps.HealthHandler.Liveness)
		health.GET("/health/ready", deps.HealthHandler.Readiness)
		health.GET("/health/startup", deps.HealthHandler.Startup)
	}

	metrics := deps.MetricsHandler
	if metrics == nil {
		metrics = promhttp.Handler()
	}
	r.GET("/metrics", gin.WrapH(metrics))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
