package delivery

import (
	"time"

	"adprofit/internal/delivery/middleware"
	"adprofit/pkg/logger"
	"adprofit/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type HTTPRouter struct {
	handlers       *HTTPHandlers
	logger         *logger.Logger
	metrics        *metrics.Metrics
	requestTimeout time.Duration
	rateLimit      int
}

func NewHTTPRouter(handlers *HTTPHandlers, logger *logger.Logger, metrics *metrics.Metrics, requestTimeout time.Duration, rateLimit int) *HTTPRouter {
	return &HTTPRouter{
		handlers:       handlers,
		logger:         logger,
		metrics:        metrics,
		requestTimeout: requestTimeout,
		rateLimit:      rateLimit,
	}
}

func (r *HTTPRouter) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.Recovery(r.logger))
	router.Use(middleware.Metrics(r.metrics))
	router.Use(middleware.RateLimit(r.rateLimit))
	router.Use(middleware.Timeout(r.requestTimeout))

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Content-Type", "X-Request-ID"}
	config.ExposeHeaders = []string{"X-Request-ID"}

	router.Use(cors.New(config))

	// Health endpoint
	router.GET("/health", r.handlers.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/", r.handlers.GetAPIInfo)
		v1.GET("", r.handlers.GetAPIInfo)

		// Analysis endpoints
		analysis := v1.Group("/analysis")
		{
			analysis.POST("/calculate", r.handlers.CalculateMetrics)
			analysis.POST("/diagnose", r.handlers.DiagnoseCampaign)
			analysis.GET("", r.handlers.GetAnalysisHistory)
			analysis.GET("/:id", r.handlers.GetAnalysis)
		}

		// Report ingestion endpoints
		reports := v1.Group("/reports")
		{
			reports.POST("/performance", r.handlers.IngestPerformanceReport)
			reports.POST("/changes", r.handlers.IngestChangeLog)
		}
	}

	// Prometheus metrics endpoint
	router.GET("/metrics", middleware.PrometheusHandler())

	return router
}
