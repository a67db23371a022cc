package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CI", "ENV", "SERVER_PORT", "SERVER_HOST", "DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER",
		"DB_PASSWORD", "DB_NAME", "DB_SSL_MODE", "SQLITE_PATH", "JWT_SECRET", "REDIS_URL",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "RECOMMENDATION_LIMIT", "EVALUATION_LOCK_TTL",
		"RATE_LIMIT_WINDOW", "RATE_LIMIT_REQUESTS", "RECOMMENDATION_CACHE_TTL", "LOG_MODE",
		"CORS_ORIGINS", "S3_BUCKET_NAME", "AWS_REGION",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("SECRETS_DIR", t.TempDir())
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "test")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "tastemap")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "tastemap_test")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("RECOMMENDATION_LIMIT", "15")
	t.Setenv("EVALUATION_LOCK_TTL", "3s")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Environment)
	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "tastemap", cfg.DBUser)
	assert.Equal(t, "secret", cfg.DBPassword)
	assert.Equal(t, "tastemap_test", cfg.DBName)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, 15, cfg.RecommendationLimit)
	assert.Equal(t, 3*time.Second, cfg.EvaluationLockTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, "host=db port=5433 user=tastemap password=secret dbname=tastemap_test sslmode=disable", cfg.DSN())
}

func TestLoadConfigWithDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Development, cfg.Environment)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "tastemap", cfg.DBName)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
	assert.Equal(t, 20, cfg.RecommendationLimit)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, "development", cfg.LogMode)
}

func TestLoadConfigReadsSecrets(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("SECRETS_DIR", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("from-secret-file\n"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-secret-file", cfg.JWTSecret)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"non numeric limit", "RECOMMENDATION_LIMIT", "many"},
		{"limit out of range", "RECOMMENDATION_LIMIT", "500"},
		{"bad duration", "RATE_LIMIT_WINDOW", "soon"},
		{"unknown driver", "DB_DRIVER", "mysql"},
		{"bad port", "SERVER_PORT", "http"},
		{"unknown log mode", "LOG_MODE", "verbose"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestValidateConfigSQLite(t *testing.T) {
	cfg := &Config{
		Environment:         Test,
		ServerPort:          "8080",
		ServerHost:          "localhost",
		DBDriver:            DriverSQLite,
		SQLitePath:          "file::memory:",
		RedisPort:           "6379",
		JWTSecret:           "x",
		LogMode:             "development",
		RecommendationLimit: 10,
		EvaluationLockTTL:   time.Second,
		RateLimitRequests:   5,
		RateLimitWindow:     time.Minute,
	}
	assert.NoError(t, ValidateConfig(cfg))

	cfg.SQLitePath = ""
	assert.Error(t, ValidateConfig(cfg))
}

func TestValidateConfigProductionSecretLength(t *testing.T) {
	cfg := &Config{
		Environment:         Production,
		ServerPort:          "8080",
		ServerHost:          "0.0.0.0",
		DBDriver:            DriverPostgres,
		DBHost:              "db",
		DBPort:              "5432",
		DBUser:              "u",
		DBPassword:          "p",
		DBName:              "n",
		RedisPort:           "6379",
		JWTSecret:           "short",
		S3Bucket:            "photos",
		LogMode:             "production",
		RecommendationLimit: 10,
		EvaluationLockTTL:   time.Second,
		RateLimitRequests:   5,
		RateLimitWindow:     time.Minute,
	}
	assert.Error(t, ValidateConfig(cfg))

	cfg.JWTSecret = "0123456789abcdef0123456789abcdef"
	assert.NoError(t, ValidateConfig(cfg))
}

func TestParseEnvironment(t *testing.T) {
	assert.Equal(t, Production, ParseEnvironment("prod"))
	assert.Equal(t, Production, ParseEnvironment(" Production "))
	assert.Equal(t, Test, ParseEnvironment("test"))
	assert.Equal(t, CI, ParseEnvironment("ci"))
	assert.Equal(t, Development, ParseEnvironment(""))
	assert.Equal(t, Development, ParseEnvironment("staging"))
}

func TestEnvironmentModes(t *testing.T) {
	assert.Equal(t, "release", Production.GinMode())
	assert.Equal(t, "test", CI.GinMode())
	assert.Equal(t, "debug", Development.GinMode())
	assert.True(t, Production.IsProduction())
	assert.False(t, Test.IsProduction())
	assert.True(t, Test.readsDotEnv())
	assert.False(t, CI.readsDotEnv())
}
