package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	RabbitMQ RabbitMQConfig
	Data     DataConfig
	Env      string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds the optional PostgreSQL upstream configuration.
// Enabled is false when no host is set; the service then runs in demo mode
// against snapshots and seed data.
type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// RabbitMQConfig holds the optional sync-queue configuration
type RabbitMQConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
}

// DataConfig holds local snapshot storage configuration
type DataConfig struct {
	Dir                string
	SimulatorInterval  time.Duration
	NotificationTTL    time.Duration
	NotificationBuffer int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	dbHost := os.Getenv("POSTGRES_HOST")
	mqHost := os.Getenv("RABBITMQ_HOST")

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Enabled:  dbHost != "",
			Host:     dbHost,
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     getEnv("POSTGRES_USER", "civicboard"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   getEnv("POSTGRES_DB", "civicboard_db"),
		},
		RabbitMQ: RabbitMQConfig{
			Enabled:  mqHost != "",
			Host:     mqHost,
			Port:     getEnv("RABBITMQ_PORT", "5672"),
			User:     getEnv("RABBITMQ_DEFAULT_USER", "guest"),
			Password: getEnv("RABBITMQ_DEFAULT_PASS", "guest"),
		},
		Data: DataConfig{
			Dir:                getEnv("DATA_DIR", "./data"),
			SimulatorInterval:  time.Duration(getEnvAsInt("SIMULATOR_INTERVAL_SECONDS", 60)) * time.Second,
			NotificationTTL:    time.Duration(getEnvAsInt("NOTIFICATION_TTL_SECONDS", 5)) * time.Second,
			NotificationBuffer: getEnvAsInt("NOTIFICATION_BUFFER", 50),
		},
		Env: getEnv("ENV", "development"),
	}

	// A configured database must come with credentials
	if config.Database.Enabled && config.Database.Password == "" {
		return nil, fmt.Errorf("POSTGRES_PASSWORD is required when POSTGRES_HOST is set")
	}

	return config, nil
}

// GetDatabaseDSN returns the PostgreSQL connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

// GetRabbitMQURL returns the RabbitMQ connection URL
func (c *Config) GetRabbitMQURL() string {
	return fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		c.RabbitMQ.User,
		c.RabbitMQ.Password,
		c.RabbitMQ.Host,
		c.RabbitMQ.Port,
	)
}

// DemoMode reports whether the service runs without a configured backend
func (c *Config) DemoMode() bool {
	return !c.Database.Enabled
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// getEnv gets environment variable or returns default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets environment variable as integer or returns default
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
