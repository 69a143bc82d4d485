package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds the settings shared by the foodhub binaries.
// Environment variables are parsed from the FOODHUB_ prefix.
type Config struct {
	// Backend API root, including the version segment
	BaseURL     string        `envconfig:"BASE_URL" default:"http://localhost:3000/v1"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"3s"`

	// Debug dumps every request and response
	Debug    bool   `envconfig:"DEBUG" default:"false"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// MCP server
	MCPAddr          string        `envconfig:"MCP_ADDR" default:":11547"`
	MCPServerName    string        `envconfig:"MCP_SERVER_NAME" default:"foodhub-mcp-server"`
	MCPServerVersion string        `envconfig:"MCP_SERVER_VERSION" default:"0.1.0"`
	ShutdownTimeout  time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Validate checks the values envconfig cannot.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid BASE_URL %q: must be an absolute URL", c.BaseURL)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("invalid HTTP_TIMEOUT %s: must be positive", c.HTTPTimeout)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return nil
}

// Level returns the parsed log level. Debug forces debug level.
func (c *Config) Level() zerolog.Level {
	if c.Debug {
		return zerolog.DebugLevel
	}
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// LoadEnvFile copies the variables in a dotenv file into the process
// environment. Variables that are already set win.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// New creates a new Config by parsing environment variables, after loading
// ./.env when one exists.
// Example: FOODHUB_BASE_URL, FOODHUB_HTTP_TIMEOUT
func New() (*Config, error) {
	var cfg Config

	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
		log.Debug().Msg("No .env file found, using environment variables")
	}

	if err := envconfig.Process("FOODHUB", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("base_url", cfg.BaseURL).
		Dur("http_timeout", cfg.HTTPTimeout).
		Bool("debug", cfg.Debug).
		Str("log_level", cfg.LogLevel).
		Str("mcp_addr", cfg.MCPAddr).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting returns the defaults without reading the environment.
func NewForTesting() *Config {
	return &Config{
		BaseURL:          "http://localhost:3000/v1",
		HTTPTimeout:      3 * time.Second,
		LogLevel:         "info",
		MCPAddr:          ":11547",
		MCPServerName:    "foodhub-mcp-server",
		MCPServerVersion: "test",
		ShutdownTimeout:  time.Second,
	}
}
