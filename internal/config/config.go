package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string `env:"APP_PORT" env-default:"3000"`
	Environment        string `env:"GO_ENV" env-default:"development"`
	LogFilePath        string `env:"LOG_FILE_PATH" env-default:"app.log"`
	HubLogFilePath     string `env:"HUB_LOG_FILE_PATH" env-default:"hub.log"`
	CorsAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:4200"`
	NatsURL            string `env:"NATS_URL" env-default:""`
	RedisURL           string `env:"REDIS_URL" env-default:""`
	IntegrationTopic   string `env:"INTEGRATION_EVENTS_TOPIC" env-default:"integration_events"`
}

type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite".
	Driver     string `env:"DB_DRIVER" env-default:"postgres"`
	Connection string `env:"DB_CONNECTION_STRING" env-default:""`
	LogSQL     bool   `env:"DB_LOG_SQL" env-default:"false"`
}

type AuthConfig struct {
	JWTSecret       string        `env:"JWT_SECRET" env-default:"change-me"`
	TokenLifetime   time.Duration `env:"JWT_TOKEN_LIFETIME" env-default:"24h"`
	SessionCacheTTL time.Duration `env:"SESSION_CACHE_TTL" env-default:"5m"`
}

type TracingConfig struct {
	Enabled     bool   `env:"OTEL_ENABLED" env-default:"false"`
	Endpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"localhost:4318"`
	ServiceName string `env:"OTEL_SERVICE_NAME" env-default:"notetaking-be"`
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// AllowedOrigins splits the comma separated CORS list.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.App.CorsAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	switch cfg.Database.Driver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
	return &cfg, nil
}
