// Package config provides configuration settings for the URL shortener service.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Environment variables read by LoadFromEnv.
const (
	EnvServerAddr      = "TINYURL_ADDR"
	EnvBaseURL         = "TINYURL_BASE_URL"
	EnvCapacity        = "TINYURL_CAPACITY"
	EnvLogLevel        = "TINYURL_LOG_LEVEL"
	EnvRequestTimeout  = "TINYURL_REQUEST_TIMEOUT"
	EnvShutdownTimeout = "TINYURL_SHUTDOWN_TIMEOUT"
)

// Config holds the configuration settings for the application.
type Config struct {
	ServerAddr string
	// BaseURL prefixes every short URL handed to clients. Left empty, the
	// server derives it from the address it actually bound.
	BaseURL         string
	Capacity        int
	LogLevel        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns the default configuration settings.
func DefaultConfig() *Config {
	return &Config{
		ServerAddr:      ":3000",
		BaseURL:         "",
		Capacity:        1000000,
		LogLevel:        "info",
		RequestTimeout:  5 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// SetBaseURL stores the public prefix for short URLs without its trailing
// slashes so that joined short URLs have exactly one "/" before the code.
func (c *Config) SetBaseURL(baseURL string) {
	c.BaseURL = strings.TrimRight(baseURL, "/")
}

// LoadFromEnv overlays environment variables on top of DefaultConfig and
// validates the result.
func LoadFromEnv() (*Config, error) {
	cfg := DefaultConfig()

	cfg.ServerAddr = getEnv(EnvServerAddr, cfg.ServerAddr)
	cfg.SetBaseURL(getEnv(EnvBaseURL, cfg.BaseURL))
	cfg.LogLevel = getEnv(EnvLogLevel, cfg.LogLevel)

	var err error
	if cfg.Capacity, err = getIntEnv(EnvCapacity, cfg.Capacity); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = getDurationEnv(EnvRequestTimeout, cfg.RequestTimeout); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getDurationEnv(EnvShutdownTimeout, cfg.ShutdownTimeout); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration can be used to start the server.
func (c *Config) Validate() error {
	if c.ServerAddr == "" {
		return errors.New("server address cannot be empty")
	}
	if c.Capacity <= 0 {
		return errors.New("capacity must be positive")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}
	if _, err := zap.ParseAtomicLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
