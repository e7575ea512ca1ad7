package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Admin     AdminConfig
	Analytics AnalyticsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host               string
	Port               int
	User               string
	Password           string
	DBName             string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetime    time.Duration
	SlowQueryThreshold time.Duration
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode + "&prepare_threshold=0"
}

// AdminConfig holds the admin write-surface credentials
type AdminConfig struct {
	// APIKeyHash is the bcrypt hash of the admin API key. Empty disables
	// the write surface entirely.
	APIKeyHash string
}

// AnalyticsConfig holds analytics tuning knobs
type AnalyticsConfig struct {
	HighGasLimit            int
	PerformanceHighGasLimit int
	ActiveWindowDays        int
	TrendLookbackDays       int
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnvAsInt("DB_PORT", 5432),
			User:               getEnv("DB_USER", "postgres"),
			Password:           getEnv("DB_PASSWORD", "postgres"),
			DBName:             getEnv("DB_NAME", "gaswatch"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:       getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime:    getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			SlowQueryThreshold: getEnvAsDuration("DB_SLOW_QUERY_THRESHOLD", 200*time.Millisecond),
		},
		Admin: AdminConfig{
			APIKeyHash: getEnv("ADMIN_API_KEY_HASH", ""),
		},
		Analytics: AnalyticsConfig{
			HighGasLimit:            getEnvAsInt("ANALYTICS_HIGH_GAS_LIMIT", 10),
			PerformanceHighGasLimit: getEnvAsInt("ANALYTICS_PERF_HIGH_GAS_LIMIT", 20),
			ActiveWindowDays:        getEnvAsInt("ANALYTICS_ACTIVE_WINDOW_DAYS", 7),
			TrendLookbackDays:       getEnvAsInt("ANALYTICS_TREND_LOOKBACK_DAYS", 30),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
