package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fuazim/fitcamp/internal/config"
	"github.com/fuazim/fitcamp/internal/dashboard"
	"github.com/fuazim/fitcamp/internal/db"
	"github.com/fuazim/fitcamp/internal/email"
	"github.com/fuazim/fitcamp/internal/jobs"
	"github.com/fuazim/fitcamp/internal/logger"
	"github.com/fuazim/fitcamp/internal/notify"
	"github.com/fuazim/fitcamp/internal/server"
	"github.com/fuazim/fitcamp/internal/storage"

	"github.com/gin-gonic/gin"
)

// @title FitCamp API
// @version 1.0
// @description Gym membership marketplace API.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("info")
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.LogLevel)
	defer logger.Sync()
	logger.Info("Starting FitCamp application", "env", cfg.Env)

	gin.SetMode(cfg.GinMode)

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	emailService := email.New(email.Options{
		From:          cfg.EmailFrom,
		FromName:      cfg.EmailFromName,
		SMTPHost:      cfg.SMTPHost,
		SMTPPort:      cfg.SMTPPort,
		SMTPUser:      cfg.SMTPUser,
		SMTPPass:      cfg.SMTPPass,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
	})
	defer emailService.Close()

	uploader, err := storage.New(cfg)
	if err != nil {
		logger.Fatalf("Failed to init storage: %v", err)
	}
	logger.Info("Storage initialized", "driver", uploader.Driver())

	notifier, err := notify.New(cfg.TelegramBotToken, cfg.TelegramAdminChatID)
	if err != nil {
		logger.Warn("Telegram notifications disabled", "error", err)
		notifier = notify.Noop{}
	}

	scheduler, err := jobs.New(cfg.StatsCron, dashboard.NewRepository(database), emailService)
	if err != nil {
		logger.Fatalf("Failed to schedule stats refresh: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go emailService.Start(ctx)
	scheduler.Start()

	srv := server.New(database, cfg, emailService, uploader, notifier)

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}
	scheduler.Stop()
	cancel()

	logger.Info("Server stopped")
}
