package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/diewo77/fibertelecom/auth"
	"github.com/diewo77/fibertelecom/internal/clock"
	"github.com/diewo77/fibertelecom/internal/config"
	"github.com/diewo77/fibertelecom/internal/db"
	"github.com/diewo77/fibertelecom/internal/logging"
	"github.com/diewo77/fibertelecom/internal/receipt"
	"github.com/diewo77/fibertelecom/internal/services"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Run DB seed and exit")
)

func main() {
	flag.Parse()

	// Load configuration from environment (.env merged in)
	cfg := config.Load()

	log, err := logging.New(cfg.App.LogLevel, cfg.App.Dev)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	dbConn, err := db.Open(cfg.Database, log)
	if err != nil {
		return err
	}

	// Handle migrate-only flag
	if *migrateOnlyFlag {
		if err := db.Setup(dbConn, cfg); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		log.Info("migrations completed successfully")
		return nil
	}

	// Handle seed-only flag
	if *seedOnlyFlag {
		if err := db.Seed(dbConn); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
		log.Info("seeding completed successfully")
		return nil
	}

	if err := db.Setup(dbConn, cfg); err != nil {
		return err
	}

	cred, err := auth.NewCredential(cfg.Auth.User, cfg.Auth.PasswordHash, cfg.Auth.Password)
	if err != nil {
		return fmt.Errorf("credential: %w", err)
	}
	if cfg.Auth.SessionSecret != "" {
		auth.SetSecret(cfg.Auth.SessionSecret)
	} else if !cfg.App.Dev {
		log.Warn("SESSION_SECRET not set; sessions are signed with the development secret")
	}

	clk := clock.NewRealClock()
	svc := services.New(dbConn, clk, log)
	business := receipt.Business{Name: cfg.Business.Name, Location: cfg.Business.Location}
	appHandler := NewApp(dbConn, svc, cred, clk, business, log)

	// Create server with config timeouts
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      withLogging(log, appHandler),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			zap.String("port", cfg.Server.Port),
			zap.String("db_driver", cfg.Database.Driver),
			zap.Bool("dev", cfg.App.Dev),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}
	if sqlDB, err := dbConn.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("server stopped gracefully")
	return nil
}
