package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort     string
	ServerHost     string
	AllowedOrigins []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string
	JWTTTL    time.Duration

	// Feed configuration
	CandidateLimit   int
	AnonymousFeedTTL time.Duration

	// Rate limiting
	ReactionRateLimit   int
	ReactionRateWindow  time.Duration
	PublicRatePerSecond float64
	PublicRateBurst     int

	// Logging
	LogLevel  string
	LogFormat string

	// Recipe images
	S3Bucket    string
	AWSRegion   string
	ImageURLTTL time.Duration
}

// secretKeys are the values that may be overridden by Docker secrets.
var secretKeys = []string{
	"db_user",
	"db_password",
	"jwt_secret",
	"redis_password",
	"redis_url",
}

// LoadConfig creates a new Config instance from defaults, an optional config
// file, environment variables and secrets, in increasing precedence.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/mealfeed/")
	v.AutomaticEnv()
	setDefaults(v, env)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Outside CI, sensitive values come from Docker secrets when present.
	// Production reads them from secrets only.
	if env != CI {
		for _, key := range secretKeys {
			if value := readSecret(key); value != "" {
				v.Set(key, value)
			} else if env == Production {
				v.Set(key, "")
			}
		}
	}

	cfg := fromViper(v, env)
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, env Environment) {
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", "8080")
	v.SetDefault("allowed_origins", "http://localhost:3000")

	v.SetDefault("db_driver", "postgres")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_name", "mealfeed")
	v.SetDefault("db_ssl_mode", "disable")
	v.SetDefault("sqlite_path", "file::memory:?cache=shared")

	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_db", 0)

	v.SetDefault("jwt_ttl", "24h")

	v.SetDefault("candidate_limit", 100)
	v.SetDefault("anonymous_feed_ttl", "30s")

	v.SetDefault("reaction_rate_limit", 60)
	v.SetDefault("reaction_rate_window", "1m")
	v.SetDefault("public_rate_per_second", 10.0)
	v.SetDefault("public_rate_burst", 20)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	v.SetDefault("aws_region", "us-east-1")
	v.SetDefault("image_url_ttl", "15m")

	if env == Development || env == Test {
		v.SetDefault("db_password", "postgres")
		v.SetDefault("jwt_secret", "development-secret")
		v.SetDefault("log_format", "console")
	}
}

func fromViper(v *viper.Viper, env Environment) *Config {
	return &Config{
		Environment:    env,
		ServerHost:     v.GetString("server_host"),
		ServerPort:     v.GetString("server_port"),
		AllowedOrigins: splitList(v.GetString("allowed_origins")),

		DBDriver:   strings.ToLower(v.GetString("db_driver")),
		DBHost:     v.GetString("db_host"),
		DBPort:     v.GetString("db_port"),
		DBUser:     v.GetString("db_user"),
		DBPassword: v.GetString("db_password"),
		DBName:     v.GetString("db_name"),
		DBSSLMode:  v.GetString("db_ssl_mode"),
		SQLitePath: v.GetString("sqlite_path"),

		RedisHost:     v.GetString("redis_host"),
		RedisPort:     v.GetString("redis_port"),
		RedisPassword: v.GetString("redis_password"),
		RedisDB:       v.GetInt("redis_db"),
		RedisURL:      v.GetString("redis_url"),

		JWTSecret: v.GetString("jwt_secret"),
		JWTTTL:    v.GetDuration("jwt_ttl"),

		CandidateLimit:   v.GetInt("candidate_limit"),
		AnonymousFeedTTL: v.GetDuration("anonymous_feed_ttl"),

		ReactionRateLimit:   v.GetInt("reaction_rate_limit"),
		ReactionRateWindow:  v.GetDuration("reaction_rate_window"),
		PublicRatePerSecond: v.GetFloat64("public_rate_per_second"),
		PublicRateBurst:     v.GetInt("public_rate_burst"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),

		S3Bucket:    v.GetString("s3_bucket_name"),
		AWSRegion:   v.GetString("aws_region"),
		ImageURLTTL: v.GetDuration("image_url_ttl"),
	}
}

// Address returns host:port for the HTTP listener.
func (c *Config) Address() string {
	return c.ServerHost + ":" + c.ServerPort
}

// PostgresDSN returns the gorm/pgx connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// PostgresURL returns the same connection as a URL, as lib/pq expects it.
func (c *Config) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
