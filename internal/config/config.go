package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Config holds all configuration for the application
type Config struct {
	Environment     string `validate:"oneof=development production test"`
	Host            string
	Port            string        `validate:"required,numeric"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
	Log             LogConfig
	HTTP            HTTPConfig
	RateLimit       RateLimitConfig
	EnableSwagger   bool
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
	Format string `validate:"oneof=text json"`
}

// HTTPConfig holds router configuration
type HTTPConfig struct {
	EchoPath           string `validate:"required,startswith=/"`
	MaxBodyBytes       int64  `validate:"gt=0"`
	MaxMultipartMemory int64  `validate:"gt=0"`
}

// RateLimitConfig holds the token bucket settings. A zero rate disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `validate:"gte=0"`
	Burst             int     `validate:"gte=0"`
}

// Load loads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("ENVIRONMENT", EnvDevelopment)
	v.SetDefault("HOST", "127.0.0.1")
	v.SetDefault("PORT", "5000")
	v.SetDefault("SHUTDOWN_TIMEOUT", "30s")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("ECHO_PATH", "/foo")
	v.SetDefault("MAX_BODY_BYTES", 10*1024*1024)
	v.SetDefault("MAX_MULTIPART_MEMORY", 32<<20)
	v.SetDefault("RATE_LIMIT_RPS", 0)
	v.SetDefault("RATE_LIMIT_BURST", 0)

	environment := v.GetString("ENVIRONMENT")
	v.SetDefault("ENABLE_SWAGGER", environment == EnvDevelopment)

	config := &Config{
		Environment:     environment,
		Host:            v.GetString("HOST"),
		Port:            v.GetString("PORT"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		HTTP: HTTPConfig{
			EchoPath:           v.GetString("ECHO_PATH"),
			MaxBodyBytes:       v.GetInt64("MAX_BODY_BYTES"),
			MaxMultipartMemory: v.GetInt64("MAX_MULTIPART_MEMORY"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
		EnableSwagger: v.GetBool("ENABLE_SWAGGER"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Default returns the configuration used when no environment is set.
func Default() *Config {
	return &Config{
		Environment:     EnvDevelopment,
		Host:            "127.0.0.1",
		Port:            "5000",
		ShutdownTimeout: 30 * time.Second,
		Log:             LogConfig{Format: "text"},
		HTTP: HTTPConfig{
			EchoPath:           "/foo",
			MaxBodyBytes:       10 * 1024 * 1024,
			MaxMultipartMemory: 32 << 20,
		},
		EnableSwagger: true,
	}
}

// Validate checks the struct constraints of the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Addr returns the listen address of the local server
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// IsDevelopment reports whether verbose error reporting should be enabled
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetEnvAsBool gets an environment variable as boolean with a fallback value
func GetEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
