package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kiranjugdar/security-clearance-tracker-api/config"
	"github.com/kiranjugdar/security-clearance-tracker-api/handler"
	"github.com/kiranjugdar/security-clearance-tracker-api/middleware"
	"github.com/kiranjugdar/security-clearance-tracker-api/pkg/logger"
	"github.com/kiranjugdar/security-clearance-tracker-api/pkg/pdf"
	"github.com/kiranjugdar/security-clearance-tracker-api/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully", "mode", cfg.Mode)

	// Select the aggregator implementation once at startup. Mock mode serves
	// deterministic fixtures and never touches the network.
	var aggregator service.CaseAggregator
	if cfg.Mode == config.ModeMock {
		slog.Info("running with mock aggregator, upstream calls disabled")
		aggregator = service.NewMockAggregator()
	} else {
		slog.Info("running with live aggregator", "upstream_base_url", cfg.Upstream.BaseURL)
		aggregator = service.NewAggregator(service.NewUpstreamClient(&cfg.Upstream))
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(cfg)
	clearanceHandler := handler.NewClearanceHandler(aggregator, pdf.NewRenderer())

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New() // Use New() instead of Default() to avoid default middleware

	// Add custom middleware
	router.Use(middleware.RequestID())                 // Request ID for tracing
	router.Use(middleware.Recovery())                  // Panic recovery
	router.Use(middleware.RequestLogger())             // Access logging
	router.Use(corsMiddleware())                       // CORS
	router.Use(middleware.RateLimit(100, time.Minute)) // Rate limiting: 100 requests per minute

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Public routes
	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
	}

	// Protected routes
	protectedAPI := api.Group("/")
	protectedAPI.Use(middleware.AuthMiddleware(&cfg.Auth))
	{
		protectedAPI.GET("/auth/me", authHandler.GetCurrentUser)
	}

	clearance := router.Group("/clearance")
	clearance.Use(middleware.AuthMiddleware(&cfg.Auth))
	{
		clearance.GET("/case-history", clearanceHandler.GetCaseHistory)
		clearance.GET("/case-details-history/:caseId", clearanceHandler.GetCaseDetailsAndHistory)
		clearance.GET("/pdf-download/:caseId", clearanceHandler.DownloadPdf)
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// corsMiddleware handles CORS headers for the front-end origins
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID, Content-Disposition")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
