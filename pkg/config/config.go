package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig `mapstructure:"server"`

	// Database configuration
	Database DatabaseConfig `mapstructure:"database"`

	// Redis configuration (quick-insert option store)
	Redis RedisConfig `mapstructure:"redis"`

	// JWT configuration
	JWT JWTConfig `mapstructure:"jwt"`

	// Upstream EMR configuration (remote persistence adapter)
	Upstream UpstreamConfig `mapstructure:"upstream"`

	// Draft session configuration
	Drafts DraftsConfig `mapstructure:"drafts"`

	// Logging configuration
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	IdleTimeout  int    `mapstructure:"idle_timeout"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	SecretKey string `mapstructure:"secret_key"`
	Issuer    string `mapstructure:"issuer"`
	Audience  string `mapstructure:"audience"`
}

// UpstreamConfig holds the remote EMR adapter configuration. When Enabled,
// the rounding service persists through the upstream REST API instead of
// the local patient database.
type UpstreamConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	BaseURL   string `mapstructure:"base_url"`
	APIKey    string `mapstructure:"api_key"`
	TimeoutMs int    `mapstructure:"timeout_ms"`
	Retries   int    `mapstructure:"retries"`
}

// DraftsConfig holds rounding draft session configuration
type DraftsConfig struct {
	// SaveTimeoutMs bounds a single persistence call; a save that exceeds it
	// surfaces as an error status rather than hanging in "saving".
	SaveTimeoutMs int `mapstructure:"save_timeout_ms"`
	// SavedWindowMs is how long the transient "saved" badge is held.
	SavedWindowMs int `mapstructure:"saved_window_ms"`
	// ErrorWindowMs is how long the "error" badge is held.
	ErrorWindowMs int `mapstructure:"error_window_ms"`
	// CarryConcerns carries yesterday's concerns forward instead of clearing.
	CarryConcerns bool `mapstructure:"carry_concerns"`
}

// SaveTimeout returns the per-save timeout as a duration
func (d *DraftsConfig) SaveTimeout() time.Duration {
	return time.Duration(d.SaveTimeoutMs) * time.Millisecond
}

// SavedWindow returns the saved-badge display window as a duration
func (d *DraftsConfig) SavedWindow() time.Duration {
	return time.Duration(d.SavedWindowMs) * time.Millisecond
}

// ErrorWindow returns the error-badge display window as a duration
func (d *DraftsConfig) ErrorWindow() time.Duration {
	return time.Duration(d.ErrorWindowMs) * time.Millisecond
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/vethub")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	overrideWithEnv(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 30)
	viper.SetDefault("server.idle_timeout", 120)

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "vethub")
	viper.SetDefault("database.user", "vethub")
	viper.SetDefault("database.ssl_mode", "require")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", 300)

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.pool_size", 10)

	// JWT defaults
	viper.SetDefault("jwt.issuer", "vethub-emr")
	viper.SetDefault("jwt.audience", "vethub-clinicians")

	// Upstream defaults
	viper.SetDefault("upstream.enabled", false)
	viper.SetDefault("upstream.timeout_ms", 10000)
	viper.SetDefault("upstream.retries", 0)

	// Draft session defaults
	viper.SetDefault("drafts.save_timeout_ms", 10000)
	viper.SetDefault("drafts.saved_window_ms", 2000)
	viper.SetDefault("drafts.error_window_ms", 5000)
	viper.SetDefault("drafts.carry_concerns", false)

	// Logging defaults
	viper.SetDefault("log_level", "info")
}

// overrideWithEnv overrides configuration with environment variables
func overrideWithEnv(config *Config) {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if jwtSecret := os.Getenv("JWT_SECRET_KEY"); jwtSecret != "" {
		config.JWT.SecretKey = jwtSecret
	}

	if upstreamKey := os.Getenv("UPSTREAM_API_KEY"); upstreamKey != "" {
		config.Upstream.APIKey = upstreamKey
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		config.LogLevel = logLevel
	}
}

// validate validates the configuration
func validate(config *Config) error {
	if config.JWT.SecretKey == "" {
		return fmt.Errorf("JWT secret key is required")
	}

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Upstream.Enabled && config.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream base URL is required when upstream is enabled")
	}

	if !config.Upstream.Enabled && config.Database.Password == "" {
		return fmt.Errorf("database password is required")
	}

	if config.Drafts.SaveTimeoutMs <= 0 {
		return fmt.Errorf("drafts save timeout must be positive")
	}

	return nil
}
