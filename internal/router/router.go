package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pageza/mealfeed/backend/internal/api"
	"github.com/pageza/mealfeed/backend/internal/middleware"
)

// Options configures the router beyond the API services.
type Options struct {
	AllowedOrigins []string
	Limiters       api.Limiters
	Health         api.HealthChecker
}

// SetupRouter configures the application routes
func SetupRouter(svc api.Services, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery(), middleware.RequestLogger())
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.NoRoute(middleware.NotFound())

	router.GET("/health", api.HealthCheck(opts.Health))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api.RegisterRoutes(router.Group("/api/v1"), svc, opts.Limiters)

	return router
}
