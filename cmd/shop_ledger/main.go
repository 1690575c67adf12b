package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/SscSPs/shop_ledger/internal/adapters/amqp"
	"github.com/SscSPs/shop_ledger/internal/adapters/kvstore/memory"
	"github.com/SscSPs/shop_ledger/internal/adapters/kvstore/pgsql"
	"github.com/SscSPs/shop_ledger/internal/adapters/kvstore/sqlite"
	"github.com/SscSPs/shop_ledger/internal/core/ports"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger/internal/core/services"
	"github.com/SscSPs/shop_ledger/internal/handlers"
	"github.com/SscSPs/shop_ledger/internal/middleware"
	"github.com/SscSPs/shop_ledger/internal/platform/config"
	"github.com/SscSPs/shop_ledger/internal/platform/scheduler"
	"github.com/SscSPs/shop_ledger/internal/repositories/ledger"
	"github.com/SscSPs/shop_ledger/pkg/database"
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

	kv, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open ledger store", slog.String("driver", cfg.StoreDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	repos, err := ledger.NewRepositoryProvider(ctx, kv)
	if err != nil {
		logger.Error("Failed to load ledger documents", slog.String("error", err.Error()))
		os.Exit(1)
	}

	publisher, closePublisher := openPublisher(cfg, logger)
	defer closePublisher()

	container := services.NewServiceContainer(repos, publisher, cfg.Categories)

	sched := scheduler.NewScheduler(container.Debt, logger)
	if cfg.ReminderSchedule != "" {
		if err := sched.Start(cfg.ReminderSchedule); err != nil {
			logger.Error("Failed to start reminder scheduler", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() { <-sched.Stop().Done() }()
	}

	r, err := newRouter(cfg, logger, container)
	if err != nil {
		logger.Error("Failed to build router", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

func newRouter(cfg *config.Config, logger *slog.Logger, container *portssvc.ServiceContainer) (*gin.Engine, error) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := handlers.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))

	if cfg.RateLimit != "" {
		lim, err := middleware.NewMemoryLimiter(cfg.RateLimit)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT %q: %w", cfg.RateLimit, err)
		}
		r.Use(middleware.RateLimit(lim))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	handlers.RegisterRoutes(r, container)
	return r, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	return c
}

// openStore returns the storage collaborator selected by STORE_DRIVER and its cleanup.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.KeyValueStore, func(), error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		logger.Info("Running database migrations...")
		applied, err := pgsql.RunMigrations(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if applied {
			logger.Info("Database migrations applied successfully.")
		} else {
			logger.Info("No new migrations to apply.")
		}

		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Database connection pool established.")
		return pgsql.NewKeyValueStore(pool), func() { database.ClosePgxPool(pool) }, nil

	case config.StoreSQLite:
		store, err := sqlite.NewKeyValueStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("SQLite ledger store opened", slog.String("path", cfg.SQLitePath))
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Error("Error closing SQLite store", slog.String("error", err.Error()))
			}
		}, nil

	default:
		logger.Warn("Using in-memory ledger store; data is lost on restart")
		return memory.NewKeyValueStore(), func() {}, nil
	}
}

// openPublisher connects the AMQP reminder publisher, falling back to logging when unavailable.
func openPublisher(cfg *config.Config, logger *slog.Logger) (ports.ReminderPublisher, func()) {
	if cfg.AMQPURL == "" {
		return &amqp.LogPublisher{Logger: logger}, func() {}
	}
	pub, err := amqp.NewReminderPublisher(cfg.AMQPURL, cfg.ReminderExchange, cfg.ReminderRoutingKey)
	if err != nil {
		logger.Error("Failed to connect reminder publisher, reminders will only be logged", slog.String("error", err.Error()))
		return &amqp.LogPublisher{Logger: logger}, func() {}
	}
	logger.Info("Reminder publisher connected", slog.String("exchange", cfg.ReminderExchange))
	return pub, func() {
		if err := pub.Close(); err != nil {
			logger.Error("Error closing reminder publisher", slog.String("error", err.Error()))
		}
	}
}

func parseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo
	}
	return level
}
