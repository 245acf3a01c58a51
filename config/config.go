// Package config loads transport settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config describes how remote managers reach their service.
type Config struct {
	// Host is the service base URL, e.g. https://api.example.com
	Host string `toml:"host"`
	// Endpoint is the JSON-RPC path relative to Host
	Endpoint string `toml:"endpoint"`
	// WebSocket is an optional ws:// or wss:// URL; when set calls use a persistent socket
	WebSocket string `toml:"websocket"`
	// Strategy is the initial repository strategy (POSTGRES or HYBRID)
	Strategy string `toml:"strategy"`
	// Synced serializes HTTP calls one at a time in submission order
	Synced bool `toml:"synced"`
	// RequestTimeout bounds each network call in seconds; 0 means no bound
	RequestTimeout int `toml:"request_timeout"`
	// Metrics registers prometheus collectors with the default registerer
	Metrics bool `toml:"metrics"`

	Token Token `toml:"token"`
	Log   Log   `toml:"log"`
}

// Token configures the access token interceptor
type Token struct {
	Value string `toml:"value"`
	Type  string `toml:"type"`
	// Secret is a scy secret resource holding basic credentials
	Secret string `toml:"secret"`
	// ID looks up the token in the token store
	ID string `toml:"id"`
	// RedisAddr selects a redis token store; an in-memory store is used otherwise
	RedisAddr   string `toml:"redis_addr"`
	RedisPrefix string `toml:"redis_prefix"`
}

// Log configures logging
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Timeout returns RequestTimeout as a duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// Load reads path over defaults and validates the result. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := Default()
			return &cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()
	return Decode(file)
}

// Decode reads TOML from reader over defaults and validates the result.
func Decode(reader io.Reader) (*Config, error) {
	cfg := Default()
	decoder := toml.NewDecoder(reader)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
