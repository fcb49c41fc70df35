package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Langflow  LangflowConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8000"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	H2C             bool          `envconfig:"SERVER_H2C" default:"false"`
	Gzip            bool          `envconfig:"SERVER_GZIP" default:"true"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
}

// LangflowConfig holds flow engine configuration.
// When Enabled is false the gateway answers with the echo relay and URL is
// only reported by the info endpoint.
type LangflowConfig struct {
	URL      string        `envconfig:"LANGFLOW_URL" default:"http://localhost:7860"`
	Enabled  bool          `envconfig:"LANGFLOW_ENABLED" default:"false"`
	FlowID   string        `envconfig:"LANGFLOW_FLOW_ID" default:"zem-flow"`
	APIKey   string        `envconfig:"LANGFLOW_API_KEY"`
	Timeout  time.Duration `envconfig:"LANGFLOW_TIMEOUT" default:"30s"`
	Retries  int           `envconfig:"LANGFLOW_RETRIES" default:"2"`
	Sanitize bool          `envconfig:"LANGFLOW_SANITIZE" default:"true"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Rate limit scopes
const (
	RateLimitPerIP  = "ip"
	RateLimitGlobal = "global"
)

// RateLimitConfig holds inbound rate limiting configuration.
// Scope selects one bucket per client IP or a single shared bucket.
type RateLimitConfig struct {
	RequestsPerSecond int    `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int    `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool   `envconfig:"RATE_LIMIT_ENABLED" default:"false"`
	Scope             string `envconfig:"RATE_LIMIT_SCOPE" default:"ip"`
}

// CORSConfig holds cross-origin configuration. The defaults allow everything.
type CORSConfig struct {
	AllowOrigins     []string `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`
	AllowHeaders     []string `envconfig:"CORS_ALLOW_HEADERS" default:"*"`
	AllowCredentials bool     `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}


// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			Host:            "0.0.0.0",
			H2C:             false,
			Gzip:            true,
			ShutdownTimeout: 10 * time.Second,
		},
		Langflow: LangflowConfig{
			URL:      "http://localhost:7860",
			Enabled:  false,
			FlowID:   "zem-flow",
			Timeout:  30 * time.Second,
			Retries:  2,
			Sanitize: true,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           false,
			Scope:             RateLimitPerIP,
		},
		CORS: CORSConfig{
			AllowOrigins:     []string{"*"},
			AllowHeaders:     []string{"*"},
			AllowCredentials: true,
		},
	}
}

// Validate checks values envconfig cannot check on its own.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Langflow.URL)
	if err != nil {
		return fmt.Errorf("invalid LANGFLOW_URL %q: %w", c.Langflow.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid LANGFLOW_URL %q: scheme must be http or https", c.Langflow.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid LANGFLOW_URL %q: missing host", c.Langflow.URL)
	}
	if c.Langflow.Enabled && c.Langflow.FlowID == "" {
		return fmt.Errorf("LANGFLOW_FLOW_ID is required when LANGFLOW_ENABLED is set")
	}
	if c.Langflow.Timeout <= 0 {
		return fmt.Errorf("LANGFLOW_TIMEOUT must be positive, got %s", c.Langflow.Timeout)
	}
	if c.Langflow.Retries < 0 {
		return fmt.Errorf("LANGFLOW_RETRIES must not be negative, got %d", c.Langflow.Retries)
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerSecond <= 0 {
			return fmt.Errorf("RATE_LIMIT_RPS must be positive, got %d", c.RateLimit.RequestsPerSecond)
		}
		if c.RateLimit.Burst <= 0 {
			return fmt.Errorf("RATE_LIMIT_BURST must be positive, got %d", c.RateLimit.Burst)
		}
		if c.RateLimit.Scope != RateLimitPerIP && c.RateLimit.Scope != RateLimitGlobal {
			return fmt.Errorf("RATE_LIMIT_SCOPE must be %q or %q, got %q", RateLimitPerIP, RateLimitGlobal, c.RateLimit.Scope)
		}
	}
	return nil
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}
