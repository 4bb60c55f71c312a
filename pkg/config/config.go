// Package config loads persistence-core configuration from YAML files and
// environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full configuration of the persistence core.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Cleanup  CleanupConfig  `mapstructure:"cleanup"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
}

// DSN returns the connection string for the configured database.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Caller bool   `mapstructure:"caller"`
}

// CleanupConfig holds scheduled-cleanup settings.
type CleanupConfig struct {
	// Schedule is a cron expression (minute hour dom month dow).
	Schedule string `mapstructure:"schedule"`
	// ResetCodeTTL is how long an issued password-reset code stays valid.
	ResetCodeTTL time.Duration `mapstructure:"reset_code_ttl"`
}

// Loader loads configuration from a YAML file and environment variables.
type Loader struct {
	configPath string
}

// NewLoader creates a new configuration loader. An empty path falls back to
// config.yaml in ./config or the working directory.
func NewLoader(configPath string) *Loader {
	return &Loader{configPath: configPath}
}

// Load loads the configuration.
func (l *Loader) Load() (*Config, error) {
	v := viper.New()

	if l.configPath != "" {
		v.SetConfigFile(l.configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// Environment variable support, e.g. AURORA_DATABASE_HOST.
	v.SetEnvPrefix("AURORA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional if all required values are in env.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.database", "aurora")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.max_conn_lifetime", time.Hour)
	v.SetDefault("database.max_conn_idle_time", 30*time.Minute)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.caller", true)

	v.SetDefault("cleanup.schedule", "0 2 * * *")
	v.SetDefault("cleanup.reset_code_ttl", time.Hour)
}

// Validate checks the configuration for values the core cannot run with.
func Validate(cfg *Config) error {
	db := &cfg.Database
	if db.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if db.Port <= 0 || db.Port > 65535 {
		return fmt.Errorf("database.port %d out of range", db.Port)
	}
	if db.Database == "" {
		return fmt.Errorf("database.database is required")
	}
	if db.MaxConns <= 0 {
		return fmt.Errorf("database.max_conns must be positive")
	}
	if db.MinConns < 0 || db.MinConns > db.MaxConns {
		return fmt.Errorf("database.min_conns must be between 0 and max_conns")
	}

	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", cfg.Logging.Level)
	}

	if cfg.Cleanup.ResetCodeTTL <= 0 {
		return fmt.Errorf("cleanup.reset_code_ttl must be positive")
	}

	return nil
}
