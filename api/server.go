package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seo-optimizer/geoaudit/analyzer"
	"github.com/seo-optimizer/geoaudit/logging"
	"github.com/seo-optimizer/geoaudit/middleware"
	"github.com/seo-optimizer/geoaudit/models"
	"github.com/seo-optimizer/geoaudit/scraper"
	"github.com/seo-optimizer/geoaudit/stats"
	"github.com/seo-optimizer/geoaudit/storage"
)

const (
	defaultReportLimit = 20
	maxReportLimit     = 100
)

// Server represents the API server
type Server struct {
	analyzer *analyzer.Analyzer
	stats    *logging.Statistics
	engine   *gin.Engine
	server   *http.Server
}

// Config contains server configuration
type Config struct {
	Addr      string
	RateLimit float64
	RateBurst int
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Addr:      ":8082",
		RateLimit: 2,
		RateBurst: 5,
	}
}

type urlRequest struct {
	URL string `json:"url" binding:"required,url"`
}

type compareRequest struct {
	URLA string `json:"urlA" binding:"required,url"`
	URLB string `json:"urlB" binding:"required,url"`
}

type analyzeResponse struct {
	models.AuditReport
	AiVisibility models.AiVisibilityAssessment `json:"aiVisibility"`
	Cached       bool                          `json:"cached"`
}

// NewServer creates a new API server
func NewServer(a *analyzer.Analyzer, usage *logging.Statistics, config Config) *Server {
	s := &Server{
		analyzer: a,
		stats:    usage,
		engine:   gin.Default(),
	}

	rateLimiter := middleware.NewRateLimiter(config.RateLimit, config.RateBurst)

	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.ErrorHandler())
	s.engine.Use(cors())
	s.engine.Use(middleware.StatsMiddleware(usage))
	s.engine.Use(rateLimiter.RateLimit())

	s.registerRoutes()

	s.server = &http.Server{
		Addr:         config.Addr,
		Handler:      s.engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// registerRoutes sets up all API routes
func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.GET("/health", s.handleHealth)

		api.POST("/analyze", s.handleAnalyze)
		api.POST("/ai-visibility", s.handleVisibility)
		api.POST("/compare", s.handleCompare)

		api.GET("/reports", s.handleReports)
		api.GET("/reports/:id", s.handleReport)

		api.GET("/statistics", s.handleStatistics)
		api.GET("/cache", s.handleCache)
		api.GET("/cache/history", s.handleCacheHistory)
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start starts the API server
func (s *Server) Start() error {
	log.Printf("Server starting on %s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server and persists statistics
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down API server...")
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	if err := s.stats.Save(); err != nil {
		log.Printf("Failed to save statistics: %v", err)
	}
	return nil
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	log.Printf("Health check request received from: %s", c.ClientIP())
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	log.Printf("Analyze request received from: %s", c.ClientIP())

	var request urlRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid URL provided")
		return
	}
	middleware.TrackAudit(c, logging.KindAnalyze, request.URL)

	cached := s.analyzer.IsCached(request.URL)
	analysis, err := s.analyzer.Analyze(c.Request.Context(), request.URL)
	if err != nil {
		respondAnalysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, analyzeResponse{
		AuditReport:  analysis.Report,
		AiVisibility: analysis.Visibility,
		Cached:       cached,
	})
}

func (s *Server) handleVisibility(c *gin.Context) {
	log.Printf("AI visibility request received from: %s", c.ClientIP())

	var request urlRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid URL provided")
		return
	}
	middleware.TrackAudit(c, logging.KindVisibility, request.URL)

	analysis, err := s.analyzer.Analyze(c.Request.Context(), request.URL)
	if err != nil {
		respondAnalysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis.Visibility)
}

func (s *Server) handleCompare(c *gin.Context) {
	log.Printf("Compare request received from: %s", c.ClientIP())

	var request compareRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, http.StatusBadRequest, "Two valid URLs (urlA, urlB) are required")
		return
	}
	middleware.TrackAudit(c, logging.KindCompare, request.URLA, request.URLB)

	result, err := s.analyzer.Compare(c.Request.Context(), request.URLA, request.URLB)
	if err != nil {
		respondAnalysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleReports(c *gin.Context) {
	if url := c.Query("url"); url != "" {
		report, err := s.analyzer.ReportByURL(c.Request.Context(), url)
		if err != nil {
			respondStorageError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
		return
	}

	limit := defaultReportLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	if limit > maxReportLimit {
		limit = maxReportLimit
	}

	reports, err := s.analyzer.RecentReports(c.Request.Context(), limit)
	if err != nil {
		respondStorageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reports": reports,
		"count":   len(reports),
	})
}

func (s *Server) handleReport(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		respondError(c, http.StatusBadRequest, "invalid report id")
		return
	}

	report, err := s.analyzer.Report(c.Request.Context(), id)
	if err != nil {
		respondStorageError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (s *Server) handleStatistics(c *gin.Context) {
	c.JSON(http.StatusOK, s.stats.GetStatistics())
}

func (s *Server) handleCache(c *gin.Context) {
	c.JSON(http.StatusOK, s.analyzer.GetCacheStats())
}

func (s *Server) handleCacheHistory(c *gin.Context) {
	monthly := s.analyzer.GetStats()
	if monthly == nil {
		c.JSON(http.StatusOK, gin.H{"months": []stats.MonthRecord{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"months": monthly.History()})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"error":     message,
		"requestId": middleware.RequestID(c),
	})
}

func respondAnalysisError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, scraper.ErrInvalidURL):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, analyzer.ErrFetchFailed):
		respondError(c, http.StatusBadGateway, "Failed to analyze URL: "+err.Error())
	default:
		log.Printf("[%s] Analysis failed: %v", middleware.RequestID(c), err)
		respondError(c, http.StatusInternalServerError, "Failed to analyze URL: "+err.Error())
	}
}

func respondStorageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respondError(c, http.StatusNotFound, "report not found")
	case errors.Is(err, analyzer.ErrNoStore):
		respondError(c, http.StatusServiceUnavailable, err.Error())
	default:
		log.Printf("[%s] Report lookup failed: %v", middleware.RequestID(c), err)
		respondError(c, http.StatusInternalServerError, "failed to load reports")
	}
}
