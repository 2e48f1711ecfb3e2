package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Session SessionConfig
	Catalog CatalogConfig
	Assets  AssetsConfig
	Payment PaymentConfig
	Notify  NotifyConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port string
	Host string
	Env  string
}

type SessionConfig struct {
	Secret string
	Secure bool
}

type CatalogConfig struct {
	Path     string // YAML file; empty uses the built-in catalog
	Currency string
}

type AssetsConfig struct {
	StaticDir string
	BaseURL   string
}

type PaymentConfig struct {
	Provider string // only "simulated" is implemented
}

type NotifyConfig struct {
	NATSURL string
	Subject string
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "localhost"),
			Env:  getEnv("ENV", "development"),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", "your-secret-key-change-in-production"),
			Secure: getEnvAsBool("SESSION_SECURE", false),
		},
		Catalog: CatalogConfig{
			Path:     getEnv("CATALOG_PATH", ""),
			Currency: getEnv("CURRENCY", "R$"),
		},
		Assets: AssetsConfig{
			StaticDir: getEnv("STATIC_DIR", "web/static"),
			BaseURL:   strings.TrimSuffix(getEnv("ASSETS_BASE_URL", "/static"), "/"),
		},
		Payment: PaymentConfig{
			Provider: getEnv("PAYMENT_PROVIDER", "simulated"),
		},
		Notify: NotifyConfig{
			NATSURL: getEnv("NATS_URL", ""),
			Subject: getEnv("NATS_ORDER_SUBJECT", "storefront.orders.completed"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return config, nil
}

// IsDevelopment reports whether the server runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// Addr returns the listen address
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
