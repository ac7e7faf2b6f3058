// Package config provides configuration management for wnbrowser.
//
// This package handles loading configuration from multiple sources:
//   - YAML configuration files
//   - Environment variables (with WB_ prefix)
//   - .env files
//   - Default values
//
// # Configuration Sources Priority
//
// Configuration is loaded in the following order (later sources override earlier ones):
//  1. Default values (hardcoded)
//  2. Configuration files (./config.yaml, ./configs/config.yaml, ~/.wnbrowser/config.yaml, /etc/wnbrowser/config.yaml)
//  3. .env files
//  4. Environment variables (WB_ prefix)
//
// # Usage Example
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Server: %s:%d\n", cfg.Server.Host, cfg.Server.Port)
//
// # Environment Variables
//
// Environment variables override all other configuration sources.
// Use WB_ prefix and underscores for nested keys:
//   - WB_SERVER_PORT=8080
//   - WB_DATABASE_PATH=/var/lib/wnbrowser/wnbrowser.db
//   - WB_CLIENT_API_URL=http://localhost:8080
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config is the root configuration structure for wnbrowser.
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig `mapstructure:"server"`

	// Database contains SQLite database settings
	Database DatabaseConfig `mapstructure:"database"`

	// Security contains rate limiting and CORS settings
	Security SecurityConfig `mapstructure:"security"`

	// Client contains console client settings
	Client ClientConfig `mapstructure:"client"`

	// Loader contains bulk loader settings
	Loader LoaderConfig `mapstructure:"loader"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	// Host is the server bind address (default: localhost)
	Host string `mapstructure:"host" validate:"required"`

	// Port is the server listen port (default: 8080)
	Port int `mapstructure:"port" validate:"min=1,max=65535"`

	// ReadTimeout is the maximum duration for reading requests
	ReadTimeout time.Duration `mapstructure:"read_timeout"`

	// WriteTimeout is the maximum duration for writing responses
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// ShutdownTimeout is the maximum duration for graceful shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// Debug enables debug logging
	Debug bool `mapstructure:"debug"`
}

// DatabaseConfig contains SQLite database settings.
type DatabaseConfig struct {
	// Path is the filesystem path of the SQLite database file.
	// The file and any missing parent directories are created on first open.
	Path string `mapstructure:"path" validate:"required"`
}

// SecurityConfig contains rate limiting and CORS settings.
type SecurityConfig struct {
	// RateLimit is the maximum requests per second per client (0 disables)
	RateLimit int `mapstructure:"rate_limit" validate:"min=0"`

	// AllowedOrigins are the CORS allowed origins
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ClientConfig contains console client settings.
type ClientConfig struct {
	// APIURL is the base URL of the API server the client browses
	APIURL string `mapstructure:"api_url" validate:"required,url"`

	// Timeout is the per-request HTTP timeout
	Timeout time.Duration `mapstructure:"timeout"`
}

// LoaderConfig contains bulk loader settings.
type LoaderConfig struct {
	// Dir is the directory holding the ImageNet flat files
	Dir string `mapstructure:"dir"`
}

var cfg *Config

// Load reads configuration from a file and environment variables.
// If cfgFile is empty, it searches for config.yaml in standard locations.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (WB_ prefix)
//  2. .env file
//  3. Configuration file
//  4. Default values
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.wnbrowser")
		v.AddConfigPath("/etc/wnbrowser")
	}

	if err := v.ReadInConfig(); err != nil {
		if cfgFile != "" {
			// An explicitly named but absent file falls back to defaults;
			// anything else (unreadable, malformed) is fatal.
			if !isFileNotFoundError(err) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		} else {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.MergeInConfig() // Ignore error if .env file doesn't exist

	v.SetEnvPrefix("WB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.debug", false)

	v.SetDefault("database.path", "wnbrowser.db")

	v.SetDefault("security.rate_limit", 100)
	v.SetDefault("security.allowed_origins", []string{"*"})

	v.SetDefault("client.api_url", "http://localhost:8080")
	v.SetDefault("client.timeout", "20s")

	v.SetDefault("loader.dir", "./data")
}

func Get() *Config {
	return cfg
}

// isFileNotFoundError checks if an error is a file not found error.
func isFileNotFoundError(err error) bool {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return errors.Is(pathErr, os.ErrNotExist)
	}
	return false
}
