package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	portssvc "github.com/SscSPs/royalty_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/royalty_settlement_app/internal/core/services"
	"github.com/SscSPs/royalty_settlement_app/internal/handlers"
	"github.com/SscSPs/royalty_settlement_app/internal/middleware"
	"github.com/SscSPs/royalty_settlement_app/internal/notifications"
	"github.com/SscSPs/royalty_settlement_app/internal/observability/metrics"
	"github.com/SscSPs/royalty_settlement_app/internal/platform/config"
	"github.com/SscSPs/royalty_settlement_app/internal/platform/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := storage.Open(ctx, cfg, logger, storage.Options{RunMigrations: true})
	if err != nil {
		logger.Error("Failed to open ledger store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	sender, closeSender := notificationSender(ctx, cfg, logger)
	defer closeSender()

	settlementMetrics := metrics.Settlement()
	dispatcher := notifications.NewDispatcher(sender, notifications.WithDispatchMetrics(settlementMetrics))

	serviceContainer, err := services.NewServiceContainer(cfg, repos, dispatcher, settlementMetrics)
	if err != nil {
		logger.Error("Failed to build services", slog.String("error", err.Error()))
		os.Exit(1)
	}

	uploadLimiter, err := middleware.NewUploadLimiter(cfg.UploadRateLimit)
	if err != nil {
		logger.Error("Invalid UPLOAD_RATE_LIMIT", slog.String("value", cfg.UploadRateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, uploadLimiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
	// Let in-flight notifications finish before the sender goes away.
	if err := dispatcher.Close(shutdownCtx); err != nil {
		logger.Warn("Pending notifications abandoned", slog.String("error", err.Error()))
	}
}

// notificationSender queues on redis when REDIS_URL is set and logs otherwise.
func notificationSender(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portssvc.NotificationSender, func()) {
	if cfg.RedisURL == "" {
		return notifications.LogSender{}, func() {}
	}
	client, err := notifications.Connect(ctx, cfg.RedisURL)
	if err != nil {
		logger.Warn("Redis unavailable, notifications will only be logged", slog.String("error", err.Error()))
		return notifications.LogSender{}, func() {}
	}
	logger.Info("Notification outbox enabled", slog.String("queue", cfg.NotificationQueue))
	return notifications.NewRedisOutbox(client, cfg.NotificationQueue), func() {
		if err := client.Close(); err != nil {
			logger.Error("Error closing redis client", slog.String("error", err.Error()))
		}
	}
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
