package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/viant/baseclient/interceptor"
	"github.com/viant/baseclient/interceptor/token"
	"go.uber.org/zap/zapcore"
)

func (c *Config) normalize() {
	c.Host = strings.TrimSpace(c.Host)
	c.Endpoint = strings.TrimSpace(c.Endpoint)
	if c.Endpoint == "" {
		c.Endpoint = defaultEndpoint
	}
	c.Strategy = strings.ToUpper(strings.TrimSpace(c.Strategy))
	c.Token.Type = strings.ToUpper(strings.TrimSpace(c.Token.Type))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateHost(); err != nil {
		return err
	}
	if c.Strategy != "" {
		if _, err := interceptor.ParseStrategy(c.Strategy); err != nil {
			return fmt.Errorf("strategy: %w", err)
		}
	}
	if c.RequestTimeout < 0 {
		return errors.New("request_timeout must be >= 0")
	}
	if err := c.validateToken(); err != nil {
		return err
	}
	return c.validateLog()
}

func (c *Config) validateHost() error {
	if c.Host == "" {
		return errors.New("host must be set")
	}
	parsed, err := url.Parse(c.Host)
	if err != nil || parsed.Host == "" {
		return fmt.Errorf("host %q must be an absolute URL", c.Host)
	}
	if c.WebSocket != "" {
		parsed, err = url.Parse(c.WebSocket)
		if err != nil || (parsed.Scheme != "ws" && parsed.Scheme != "wss") {
			return fmt.Errorf("websocket %q must be a ws:// or wss:// URL", c.WebSocket)
		}
	}
	return nil
}

func (c *Config) validateToken() error {
	switch token.Type(c.Token.Type) {
	case "", token.Bearer, token.Basic:
	default:
		return fmt.Errorf("token.type %q must be BEARER or BASIC", c.Token.Type)
	}
	if c.Token.RedisAddr != "" && c.Token.ID == "" {
		return errors.New("token.id is required with token.redis_addr")
	}
	return nil
}

func (c *Config) validateLog() error {
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "console", "json":
		return nil
	}
	return fmt.Errorf("log.format %q must be console or json", c.Log.Format)
}
