package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	Schema             string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	// StatementTimeoutMS is sent to PostgreSQL as statement_timeout and also bounds each adapter call.
	StatementTimeoutMS int
}

// StatementTimeout returns the configured statement timeout as a duration.
func (c DatabaseConfig) StatementTimeout() time.Duration {
	return time.Duration(c.StatementTimeoutMS) * time.Millisecond
}

// MongoConfig holds document store settings.
type MongoConfig struct {
	URI       string
	Database  string
	TimeoutMS int
}

// Timeout returns the per-operation timeout for the document store.
func (c MongoConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// RouterConfig holds dispatch settings shared by the analyzer and the coordinator.
type RouterConfig struct {
	// SchemaName is the known schema name that identifies the relational backend in free text.
	SchemaName  string
	TimeoutSec  int
	SampleLimit int
}

// Timeout returns the dual-dispatch deadline.
func (c RouterConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// BreakerConfig controls the circuit breaker placed in front of each backend adapter.
type BreakerConfig struct {
	Enabled      bool
	MinRequests  int
	FailureRatio float64
	OpenSec      int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port     string
	Timezone string
	LogLevel string
	Database DatabaseConfig
	Mongo    MongoConfig
	MinIO    MinIOConfig
	Router   RouterConfig
	Breaker  BreakerConfig
}

// Location resolves the configured timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port:     getEnv("PORT", "8080"),
		Timezone: getEnv("APP_TIMEZONE", "UTC"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			Schema:             getEnv("DB_SCHEMA", "public"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			StatementTimeoutMS: getEnvInt("DB_STATEMENT_TIMEOUT_MS", 10000),
		},
		Mongo: MongoConfig{
			URI:       getEnv("MONGO_URI", ""),
			Database:  getEnv("MONGO_DATABASE", "dvdrental"),
			TimeoutMS: getEnvInt("MONGO_TIMEOUT_MS", 10000),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Router: RouterConfig{
			SchemaName:  getEnv("SCHEMA_NAME", "dvdrental"),
			TimeoutSec:  getEnvInt("ROUTER_TIMEOUT_SEC", 30),
			SampleLimit: getEnvInt("ROUTER_SAMPLE_LIMIT", 10),
		},
		Breaker: BreakerConfig{
			Enabled:      getEnvBool("BREAKER_ENABLED", true),
			MinRequests:  getEnvInt("BREAKER_MIN_REQUESTS", 5),
			FailureRatio: getEnvFloat("BREAKER_FAILURE_RATIO", 0.8),
			OpenSec:      getEnvInt("BREAKER_OPEN_SEC", 60),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
