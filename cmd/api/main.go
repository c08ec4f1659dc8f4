package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hleung/imagehound/internal/api"
	"github.com/hleung/imagehound/internal/browser"
	"github.com/hleung/imagehound/internal/config"
	"github.com/hleung/imagehound/internal/logger"
	"github.com/hleung/imagehound/internal/scraper"
	"github.com/hleung/imagehound/internal/storage"
)

func main() {
	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// Initialize image storage
	store := storage.NewLocalStore(cfg.Scraper.BaseDir)

	// Initialize image fetcher
	fetcher := scraper.NewHTTPFetcher(store, &scraper.FetcherConfig{
		Timeout:       cfg.Scraper.FetchTimeout,
		RetryAttempts: cfg.Scraper.RetryAttempts,
		RetryWait:     cfg.Scraper.RetryWait,
	})

	// Initialize browser launcher
	launcher := browser.NewLauncher(browser.Options{
		Headless:   cfg.Browser.Headless,
		DisableGPU: cfg.Browser.DisableGPU,
		NoSandbox:  cfg.Browser.NoSandbox,
		UserAgent:  cfg.Browser.UserAgent,
		NavTimeout: cfg.Browser.NavTimeout,
	})

	// Initialize scrape service
	scrapeService := scraper.NewService(launcher, fetcher, store, &scraper.Config{
		DefaultNumImages:  cfg.Scraper.DefaultNumImages,
		MinWidth:          cfg.Scraper.MinWidth,
		MinHeight:         cfg.Scraper.MinHeight,
		SettleDelay:       cfg.Scraper.SettleDelay,
		ScrollPause:       cfg.Scraper.ScrollPause,
		MaxScrolls:        cfg.Scraper.MaxScrolls,
		MaxConcurrentJobs: cfg.Scraper.MaxConcurrentJobs,
		JobTTL:            cfg.Scraper.JobTTL,
		SearchEndpoint:    cfg.Search.Endpoint,
	})
	defer scrapeService.Close()

	// Setup router
	router := api.SetupRouter(scrapeService, cfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		appLogger.WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Fatal("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}
