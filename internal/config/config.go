package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Live     LiveConfig
	Report   ReportConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds the settings used to verify tokens issued by the
// external auth provider.
type JWTConfig struct {
	Secret        string
	SSEExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// LiveConfig holds the live tracking monitor settings.
type LiveConfig struct {
	RefreshInterval time.Duration
}

// ReportConfig holds report generation settings.
type ReportConfig struct {
	PunctualityCutoffHour int
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "geoattendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:        getEnv("JWT_SECRET_KEY", ""),
		SSEExpiration: getEnv("JWT_SSE_EXPIRATION_TIME", "5m"),
	}

	// Live monitor configuration
	refreshInterval, err := time.ParseDuration(getEnv("LIVE_REFRESH_INTERVAL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid LIVE_REFRESH_INTERVAL: %w", err)
	}
	config.Live = LiveConfig{
		RefreshInterval: refreshInterval,
	}

	// Report configuration
	cutoffHour, err := strconv.Atoi(getEnv("REPORT_PUNCTUALITY_CUTOFF_HOUR", "9"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_PUNCTUALITY_CUTOFF_HOUR: %w", err)
	}
	config.Report = ReportConfig{
		PunctualityCutoffHour: cutoffHour,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Live.RefreshInterval < time.Second {
		return fmt.Errorf("LIVE_REFRESH_INTERVAL must be at least 1s")
	}
	if c.Report.PunctualityCutoffHour < 0 || c.Report.PunctualityCutoffHour > 23 {
		return fmt.Errorf("REPORT_PUNCTUALITY_CUTOFF_HOUR must be between 0 and 23")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
