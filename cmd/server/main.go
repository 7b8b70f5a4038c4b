package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/balzmuri/cvgen/internal/config"
	apierrors "github.com/balzmuri/cvgen/internal/errors"
	"github.com/balzmuri/cvgen/internal/generator"
	"github.com/balzmuri/cvgen/internal/janitor"
	"github.com/balzmuri/cvgen/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.FromConfig(cfg.LogLevel, cfg.LogFormat))

	// Set Gin mode
	log.Info("setting Gin mode", "mode", cfg.GinMode)
	gin.SetMode(cfg.GinMode)

	// Initialize the generation service and its handler.
	service := generator.NewService(cfg, log)
	handler := generator.NewHandler(service, log)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())

	// Add CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.POST("/generate-cv", handler.GenerateCV)
	router.GET("/health", handler.HealthCheck)
	router.GET("/available-templates", handler.AvailableTemplates)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(func(c *gin.Context) {
		apierrors.NotFound(c, "Endpoint not found", nil)
	})

	// Scheduled output cleanup (off unless enabled).
	if cfg.CleanupEnabled {
		j := janitor.New(cfg.OutputDir, cfg.OutputRetentionDays, log)
		if err := j.Start(cfg.CleanupSchedule); err != nil {
			log.Error("failed to start output cleanup", "error", err)
			os.Exit(1)
		}
		defer j.Stop()
	}

	port := ":" + cfg.Port
	log.Info("CV generation server listening on "+port,
		"templates_dir", cfg.TemplatesDir,
		"compiler", cfg.CompilerBin)

	srv := &http.Server{
		Addr:    port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.ServerShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server exited")
}
