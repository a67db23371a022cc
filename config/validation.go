package config

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// minProductionSecretLength guards against placeholder JWT secrets in production.
const minProductionSecretLength = 32

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	postgres := cfg.DBDriver == DriverPostgres
	prod := cfg.Environment.IsProduction()

	return validation.ValidateStruct(cfg,
		validation.Field(&cfg.ServerPort, validation.Required, is.Port),
		validation.Field(&cfg.ServerHost, validation.Required),
		validation.Field(&cfg.DBDriver, validation.Required, validation.In(DriverPostgres, DriverSQLite)),
		validation.Field(&cfg.DBHost, validation.When(postgres, validation.Required)),
		validation.Field(&cfg.DBPort, validation.When(postgres, validation.Required, is.Port)),
		validation.Field(&cfg.DBUser, validation.When(postgres, validation.Required)),
		validation.Field(&cfg.DBPassword, validation.When(postgres, validation.Required)),
		validation.Field(&cfg.DBName, validation.When(postgres, validation.Required)),
		validation.Field(&cfg.SQLitePath, validation.When(!postgres, validation.Required)),
		validation.Field(&cfg.RedisPort, validation.When(cfg.RedisURL == "", validation.Required, is.Port)),
		validation.Field(&cfg.RedisURL, is.RequestURL),
		validation.Field(&cfg.JWTSecret,
			validation.Required,
			validation.When(prod, validation.Length(minProductionSecretLength, 0)),
		),
		validation.Field(&cfg.S3Bucket, validation.When(prod, validation.Required)),
		validation.Field(&cfg.LogMode, validation.In("development", "dev", "production", "prod")),
		validation.Field(&cfg.RecommendationLimit, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&cfg.RecommendationCacheTTL, validation.Min(time.Duration(0))),
		validation.Field(&cfg.EvaluationLockTTL, validation.Required, validation.Min(time.Second)),
		validation.Field(&cfg.RateLimitRequests, validation.Required, validation.Min(1)),
		validation.Field(&cfg.RateLimitWindow, validation.Required, validation.Min(time.Second)),
	)
}
