package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Tomlord1122/todo-dashboard/internal/app"
	"github.com/Tomlord1122/todo-dashboard/internal/config"
	"github.com/Tomlord1122/todo-dashboard/internal/logging"
	"github.com/Tomlord1122/todo-dashboard/internal/scheduler"
	"github.com/Tomlord1122/todo-dashboard/internal/server"
)

func gracefulShutdown(apiServer *http.Server, application *app.App, jobs *scheduler.Scheduler, done chan bool) {
	logger := application.Logger

	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	logger.Info("shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	jobs.Stop()

	if err := application.Close(); err != nil {
		logger.Error("error releasing resources", zap.Error(err))
	}

	logger.Info("server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx := context.Background()
	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open storage", zap.Error(err))
	}

	if err := application.Migrate(ctx); err != nil {
		logger.Fatal("failed to migrate storage", zap.Error(err))
	}

	if cfg.SeedDemo {
		if _, err := application.Seed(ctx); err != nil {
			logger.Fatal("failed to seed demo data", zap.Error(err))
		}
	}

	jobs := application.Scheduler()
	if err := jobs.Start(); err != nil {
		logger.Fatal("failed to start scheduler", zap.Error(err))
	}

	apiServer := server.NewServer(cfg, application.ServerDeps(), logger)

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(apiServer, application, jobs, done)

	logger.Info("starting server", zap.String("addr", apiServer.Addr), zap.String("env", cfg.AppEnv))
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("HTTP server ListenAndServe error", zap.Error(err))
	}

	// Wait for the graceful shutdown to complete
	<-done
	logger.Info("graceful shutdown complete")
}
