package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "sample-echo-api/docs"
	"sample-echo-api/internal/config"
	"sample-echo-api/internal/middleware"
)

const (
	ServiceName    = "sample-echo-api"
	ServiceVersion = "1.0.0"
)

// HealthResponse is the body of the health check endpoint
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// NewRouter builds the gin engine serving the echo route with its middleware
func NewRouter(cfg *config.Config, logger logrus.FieldLogger) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.MaxMultipartMemory = cfg.HTTP.MaxMultipartMemory

	SetupMiddleware(router, cfg, logger)
	SetupRoutes(router, cfg)

	return router
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine, cfg *config.Config, logger logrus.FieldLogger) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.StructuredLogger(logger))
	router.Use(middleware.RateLimiter(logger, cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	router.Use(middleware.RequestSizeLimit(cfg.HTTP.MaxBodyBytes))
	router.Use(middleware.ErrorHandler(logger))

	router.NoRoute(middleware.NotFound())
	router.NoMethod(middleware.MethodNotAllowed())
}

// SetupRoutes configures all routes
func SetupRoutes(router *gin.Engine, cfg *config.Config) {
	echoHandler := NewEchoHandler()

	// Only GET and POST are registered. HEAD and OPTIONS are not added
	// implicitly and answer 405 like any other method.
	router.GET(cfg.HTTP.EchoPath, echoHandler.Echo)
	router.POST(cfg.HTTP.EchoPath, echoHandler.Echo)

	router.GET("/health", Health)

	if cfg.EnableSwagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: ServiceName,
		Version: ServiceVersion,
	})
}
