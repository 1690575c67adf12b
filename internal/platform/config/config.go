package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/SscSPs/shop_ledger/internal/core/domain"
)

// Storage drivers accepted by STORE_DRIVER.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	LogLevel      string
	StoreDriver   string
	DatabaseURL   string
	SQLitePath    string
	EnableDBCheck bool

	CORSAllowedOrigins []string
	RateLimit          string // ulule/limiter format, e.g. "100-M"; empty disables limiting

	// Reminder channel
	AMQPURL            string
	ReminderExchange   string
	ReminderRoutingKey string
	ReminderSchedule   string // cron spec; empty disables the overdue sweep

	ShutdownTimeout time.Duration

	// Category templates come from the optional YAML file named by CONFIG_FILE.
	Categories []domain.CategoryTemplate
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()
	return loadFrom(viper.New())
}

func loadFrom(v *viper.Viper) (*Config, error) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", StoreMemory)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("SQLITE_PATH", "data/shop_ledger.db")
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("REMINDER_EXCHANGE", "shop_ledger")
	v.SetDefault("REMINDER_ROUTING_KEY", "debt.reminder")
	v.SetDefault("REMINDER_SCHEDULE", "0 9 * * *")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("CONFIG_FILE", "")

	v.AutomaticEnv()

	cfg := &Config{
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		LogLevel:           strings.ToLower(v.GetString("LOG_LEVEL")),
		StoreDriver:        strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		DatabaseURL:        v.GetString("PGSQL_URL"),
		SQLitePath:         v.GetString("SQLITE_PATH"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RateLimit:          strings.TrimSpace(v.GetString("RATE_LIMIT")),
		AMQPURL:            v.GetString("AMQP_URL"),
		ReminderExchange:   v.GetString("REMINDER_EXCHANGE"),
		ReminderRoutingKey: v.GetString("REMINDER_ROUTING_KEY"),
		ReminderSchedule:   strings.TrimSpace(v.GetString("REMINDER_SCHEDULE")),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	shutdownStr := v.GetString("SHUTDOWN_TIMEOUT")
	shutdown, err := time.ParseDuration(shutdownStr)
	if err != nil || shutdown <= 0 {
		shutdown = 10 * time.Second
		log.Printf("Warning: Invalid value for SHUTDOWN_TIMEOUT ('%s'). Defaulting to %s.\n", shutdownStr, shutdown)
	}
	cfg.ShutdownTimeout = shutdown

	switch cfg.StoreDriver {
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("STORE_DRIVER=%s requires PGSQL_URL", StorePostgres)
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.AMQPURL == "" {
		log.Println("Warning: AMQP_URL not set. Reminders will only be logged.")
	}

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
		if err := v.UnmarshalKey("categories", &cfg.Categories); err != nil {
			return nil, fmt.Errorf("failed to decode categories from %s: %w", file, err)
		}
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
