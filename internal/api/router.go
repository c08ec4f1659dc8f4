package api

import (
	"github.com/gin-gonic/gin"

	"github.com/hleung/imagehound/internal/api/handler"
	"github.com/hleung/imagehound/internal/api/middleware"
	"github.com/hleung/imagehound/internal/config"
	"github.com/hleung/imagehound/internal/scraper"
)

// SetupRouter configures the Gin router with all routes
func SetupRouter(scrapeService *scraper.Service, cfg *config.Config) *gin.Engine {
	// Set Gin mode
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
	}))

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	scrapeHandler := handler.NewScrapeHandler(scrapeService)

	// Health check
	r.GET("/health", healthHandler.Health)

	// Scrape jobs
	r.POST("/scrape", scrapeHandler.StartScrape)
	r.GET("/status/:jobId", scrapeHandler.GetStatus)
	r.DELETE("/cancel/:jobId", scrapeHandler.CancelJob)

	return r
}
