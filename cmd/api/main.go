package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-tracker-api/internal/auth"
	"github.com/justsurfingit/job-tracker-api/internal/config"
	"github.com/justsurfingit/job-tracker-api/internal/database"
	"github.com/justsurfingit/job-tracker-api/internal/handlers"
	"github.com/justsurfingit/job-tracker-api/internal/logging"
	"github.com/justsurfingit/job-tracker-api/internal/middleware"
	"github.com/justsurfingit/job-tracker-api/internal/services"
	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Load Environment Variables
	loaded, err := config.LoadEnvFile()
	if err != nil {
		logrus.WithError(err).Fatal("Error loading .env file")
	}
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.WithError(err).Fatal("Invalid logging configuration")
	}
	log.WithField("env_file", loaded).Debug("configuration loaded")
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Database Connection
	db, err := database.Connect(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("Database connection failed")
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.WithError(err).Fatal("Database handle unavailable")
	}
	defer sqlDB.Close()

	// 3. Initialize Core Services (Dependencies)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	jobService := services.NewJobService(database.NewJobRepository(db))
	userService := services.NewUserService(database.NewUserRepository(db), tokens)

	// 4. Initialize Handlers
	router := handlers.NewRouter(handlers.RouterDeps{
		Log:            log,
		Metrics:        middleware.NewMetrics(),
		Verifier:       tokens,
		DB:             sqlDB,
		Jobs:           handlers.NewJobHandler(jobService),
		Auth:           handlers.NewAuthHandler(userService),
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})
	if cfg.AllowAllOrigins() {
		log.Warn("CORS allows every origin")
	}

	// 5. Serve until signalled, then drain
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server failed to start")
		}
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
		return
	}
	log.Info("server stopped")
}
