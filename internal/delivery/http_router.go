package delivery

import (
	"adscope/internal/delivery/middleware"
	"adscope/pkg/config"
	"adscope/pkg/logger"
	"adscope/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type HTTPRouter struct {
	handlers *HTTPHandlers
	cfg      *config.Config
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

func NewHTTPRouter(handlers *HTTPHandlers, cfg *config.Config, logger *logger.Logger, metrics *metrics.Metrics) *HTTPRouter {
	return &HTTPRouter{
		handlers: handlers,
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics,
	}
}

func (r *HTTPRouter) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.Recovery(r.logger))
	router.Use(middleware.Metrics(r.metrics))
	router.Use(middleware.Timeout(r.cfg.Server.RequestTimeout))
	router.Use(middleware.RateLimit(r.cfg.Upload.RateLimitPerSecond, r.cfg.Upload.RateLimitBurst))

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Content-Type", "X-Request-ID"}
	config.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}

	router.Use(cors.New(config))

	// Health endpoint
	router.GET("/health", r.handlers.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/", r.handlers.GetAPIInfo)
		v1.GET("", r.handlers.GetAPIInfo)

		// Upload endpoints
		upload := v1.Group("/upload")
		upload.Use(middleware.MaxBodySize(r.cfg.Upload.MaxUploadBytes))
		{
			upload.POST("/search-term-report", r.handlers.UploadSearchTermReport)
			upload.POST("/bulk-file", r.handlers.UploadBulkFile)
			upload.POST("/validate", r.handlers.ValidateFile)
			upload.DELETE("/session/:id", r.handlers.DeleteSession)
		}

		// Analysis endpoints
		analysis := v1.Group("/analysis")
		{
			analysis.GET("/kpis/:id", r.handlers.GetKPIs)
			analysis.GET("/campaigns/:id", r.handlers.GetCampaignMetrics)
			analysis.GET("/monthly/:id", r.handlers.GetMonthlyData)
			analysis.GET("/filters/:id", r.handlers.GetFilterOptions)
			analysis.POST("/search-terms/:id", r.handlers.AnalyzeSearchTerms)
			analysis.GET("/search-terms/:id/data", r.handlers.GetSearchTermData)
		}

		// Export endpoints
		export := v1.Group("/export")
		{
			export.POST("/negatives", r.handlers.ExportNegatives)
			export.POST("/negatives/preview", r.handlers.PreviewNegatives)
			export.POST("/auto-campaign", r.handlers.ExportAutoCampaign)
			export.POST("/manual-campaign", r.handlers.ExportManualCampaign)
		}
	}

	// Prometheus metrics endpoint
	router.GET("/metrics", middleware.PrometheusHandler())

	return router
}
