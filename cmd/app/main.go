package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	_ "github.com/Yuvraj13742/dodo-payments/docs"
	"github.com/Yuvraj13742/dodo-payments/internal/alerts"
	"github.com/Yuvraj13742/dodo-payments/internal/config"
	"github.com/Yuvraj13742/dodo-payments/internal/db"
	"github.com/Yuvraj13742/dodo-payments/internal/logger"
	"github.com/Yuvraj13742/dodo-payments/internal/server"
)

// @title Dodo Payments API
// @version 1.0
// @description Creator monetization ledger: coin purchases, gifts, subscriptions and creator payouts settled against the Dodo payment provider.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {

	logger.Init()
	logger.Info("Starting dodo-payments application")
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Info("Connecting to database...")
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, "migrations"); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	alertWorker := alerts.NewWorker(redisClient)
	go alertWorker.Start(ctx)

	srv := server.New(database, cfg, redisClient)

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Received shutdown signal", "signal", sig.String())
	case err := <-serverErrChan:
		logger.Error("Server error", "error", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during server shutdown", "error", err)
	}

	logger.Info("Server stopped")
}
