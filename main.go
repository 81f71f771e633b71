package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/NomadCrew/trcs2-health/config"
	"github.com/NomadCrew/trcs2-health/handlers"
	"github.com/NomadCrew/trcs2-health/logger"
	"github.com/NomadCrew/trcs2-health/router"
	"github.com/NomadCrew/trcs2-health/services"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// @title TRCS2 Health API
// @version 1.0.0
// @description Liveness, readiness, startup and general health endpoints.
func main() {
	// Initialize logger
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if dump, err := cfg.RedactedYAML(); err == nil {
		log.Debugf("Effective configuration:\n%s", dump)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := []services.HealthServiceOption{
		services.WithDependencyTimeout(cfg.Health.DependencyTimeout()),
	}

	// Optional dependency probes for /health/startup
	if cfg.Database.Enabled() {
		pool, err := config.NewPgxPool(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("Failed to create database pool: %v", err)
		}
		defer pool.Close()
		opts = append(opts, services.WithDatabaseProbe(pool))
		log.Info("Database startup probe enabled")
	}
	if cfg.Redis.Enabled() {
		redisClient := config.NewRedisClient(cfg.Redis)
		defer redisClient.Close()
		opts = append(opts, services.WithCacheProbe(services.NewRedisProbe(redisClient)))
		log.Infow("Redis startup probe enabled", "address", cfg.Redis.Address)
	}

	healthService := services.NewHealthService(cfg.Health.HeapThresholdPercent, opts...)
	r := router.SetupRouter(router.Dependencies{
		Config:        cfg,
		HealthHandler: handlers.NewHealthHandler(healthService),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infow("Starting server", "port", cfg.Server.Port, "version", cfg.Server.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Graceful shutdown failed", "error", err)
		return
	}
	log.Info("Server stopped")
}
