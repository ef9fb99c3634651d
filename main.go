package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seo-optimizer/geoaudit/analyzer"
	"github.com/seo-optimizer/geoaudit/api"
	"github.com/seo-optimizer/geoaudit/config"
	"github.com/seo-optimizer/geoaudit/logging"
	"github.com/seo-optimizer/geoaudit/scraper"
	"github.com/seo-optimizer/geoaudit/stats"
	"github.com/seo-optimizer/geoaudit/storage"
)

func main() {
	cfg := config.Load()

	gin.SetMode(cfg.GinMode)

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	ctx := context.Background()

	store, err := storage.New(ctx, storage.Config{
		Driver: cfg.DBDriver,
		DSN:    cfg.DBDSN,
	})
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	statsStorage, err := stats.NewStorage(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to initialize stats storage: %v", err)
	}
	statsStorage.Cleanup(cfg.StatsRetainMonths)

	scraperConfig := scraper.DefaultConfig()
	scraperConfig.Timeout = cfg.FetchTimeout

	opts := analyzer.DefaultOptions()
	opts.CacheTTL = cfg.CacheTTL
	opts.MaxCacheSize = cfg.MaxCacheSize

	seoAnalyzer := analyzer.New(scraper.New(scraperConfig), store, statsStorage, opts)
	defer func() {
		if err := seoAnalyzer.Shutdown(); err != nil {
			log.Printf("Failed to flush stats: %v", err)
		}
	}()

	usage := logging.New(cfg.StatisticsPath(), cfg.DevMode)

	server := api.NewServer(seoAnalyzer, usage, api.Config{
		Addr:      ":" + cfg.Port,
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
	})

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
