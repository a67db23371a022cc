package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Database drivers accepted by DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	SQLitePath    string
	MigrationsDir string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Object storage for review photos
	S3Bucket  string
	AWSRegion string

	LogMode string

	// Recommendations and achievements
	RecommendationLimit    int
	RecommendationCacheTTL time.Duration
	EvaluationLockTTL      time.Duration

	// Rate limiting
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// RedisAddr returns host:port for the Redis client.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{Environment: env}
	if env.readsDotEnv() {
		// A missing .env is fine
		_ = godotenv.Load()
	}

	// Load configuration based on environment
	switch env {
	case CI:
		if err := loadCIConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load CI configuration: %w", err)
		}
	case Development, Test:
		if err := loadDevConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load development configuration: %w", err)
		}
	case Production:
		if err := loadProdConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load production configuration: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := loadTuning(cfg); err != nil {
		return nil, err
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCIConfig loads configuration for CI environment from environment variables only
func loadCIConfig(cfg *Config) error {
	cfg.ServerPort = getEnv("SERVER_PORT", "8080")
	cfg.ServerHost = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.DBDriver = getEnv("DB_DRIVER", DriverPostgres)
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")
	cfg.SQLitePath = getEnv("SQLITE_PATH", "file::memory:?cache=shared")
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.S3Bucket = os.Getenv("S3_BUCKET_NAME")
	cfg.AWSRegion = getEnv("AWS_REGION", "us-east-1")

	// GitHub Actions secrets - use environment variables directly
	cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
	if cfg.DBPassword == "" && cfg.DBDriver == DriverPostgres {
		return fmt.Errorf("TEST_DB_PASSWORD environment variable is required in CI environment")
	}
	cfg.JWTSecret = os.Getenv("TEST_JWT_SECRET")
	cfg.RedisPassword = os.Getenv("TEST_REDIS_PASSWORD")
	cfg.RedisURL = os.Getenv("TEST_REDIS_URL")
	cfg.RedisDB = 0 // This is a constant, not a secret

	return nil
}

// loadDevConfig loads configuration for development and test. Environment
// variables win; Docker secrets fill the gaps; local defaults fill the rest.
func loadDevConfig(cfg *Config) error {
	cfg.ServerPort = lookup("SERVER_PORT", "server_port", "8080")
	cfg.ServerHost = lookup("SERVER_HOST", "server_host", "localhost")
	cfg.DBDriver = lookup("DB_DRIVER", "db_driver", DriverPostgres)
	cfg.DBHost = lookup("DB_HOST", "db_host", "localhost")
	cfg.DBPort = lookup("DB_PORT", "db_port", "5432")
	cfg.DBUser = lookup("DB_USER", "db_user", "postgres")
	cfg.DBPassword = lookup("DB_PASSWORD", "db_password", "postgres")
	cfg.DBName = lookup("DB_NAME", "db_name", "tastemap")
	cfg.DBSSLMode = lookup("DB_SSL_MODE", "db_ssl_mode", "disable")
	cfg.SQLitePath = lookup("SQLITE_PATH", "sqlite_path", "tastemap.db")
	cfg.RedisHost = lookup("REDIS_HOST", "redis_host", "localhost")
	cfg.RedisPort = lookup("REDIS_PORT", "redis_port", "6379")
	cfg.RedisPassword = lookup("REDIS_PASSWORD", "redis_password", "")
	cfg.RedisURL = lookup("REDIS_URL", "redis_url", "")
	cfg.RedisDB = 0 // This is a constant, not a secret
	cfg.JWTSecret = lookup("JWT_SECRET", "jwt_secret", "development-secret-change-me")
	cfg.S3Bucket = lookup("S3_BUCKET_NAME", "s3_bucket_name", "tastemap-review-photos")
	cfg.AWSRegion = lookup("AWS_REGION", "aws_region", "us-east-1")

	return nil
}

// loadProdConfig loads configuration for production environment using ONLY Docker secrets
func loadProdConfig(cfg *Config) error {
	cfg.ServerPort = readSecret("server_port")
	cfg.ServerHost = readSecret("server_host")
	cfg.DBDriver = DriverPostgres
	cfg.DBHost = readSecret("db_host")
	cfg.DBPort = readSecret("db_port")
	cfg.DBUser = readSecret("db_user")
	cfg.DBPassword = readSecret("db_password")
	cfg.DBName = readSecret("db_name")
	cfg.DBSSLMode = readSecret("db_ssl_mode")
	cfg.RedisHost = readSecret("redis_host")
	cfg.RedisPort = readSecret("redis_port")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.RedisDB = 0 // This is a constant, not a secret
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.RedisURL = readSecret("redis_url")
	cfg.S3Bucket = readSecret("s3_bucket_name")
	cfg.AWSRegion = readSecret("aws_region")

	return nil
}

// loadTuning reads the non-secret knobs shared by every environment.
func loadTuning(cfg *Config) error {
	var err error
	cfg.LogMode = getEnv("LOG_MODE", defaultLogMode(cfg.Environment))
	cfg.MigrationsDir = getEnv("MIGRATIONS_DIR", "migrations")
	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "http://localhost:3000"))

	if cfg.RecommendationLimit, err = getInt("RECOMMENDATION_LIMIT", 20); err != nil {
		return err
	}
	if cfg.RateLimitRequests, err = getInt("RATE_LIMIT_REQUESTS", 100); err != nil {
		return err
	}
	if cfg.RecommendationCacheTTL, err = getDuration("RECOMMENDATION_CACHE_TTL", 10*time.Minute); err != nil {
		return err
	}
	if cfg.EvaluationLockTTL, err = getDuration("EVALUATION_LOCK_TTL", 10*time.Second); err != nil {
		return err
	}
	if cfg.RateLimitWindow, err = getDuration("RATE_LIMIT_WINDOW", time.Minute); err != nil {
		return err
	}
	return nil
}

func defaultLogMode(env Environment) string {
	if env.IsProduction() {
		return "production"
	}
	return "development"
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func lookup(envKey, secret, fallback string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	if v := readSecret(secret); v != "" {
		return v
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
