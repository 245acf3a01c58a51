package base

import (
	"net/http"
	"time"

	"github.com/viant/baseclient"
	"github.com/viant/baseclient/metrics"
	"github.com/viant/baseclient/transport"
)

// Option configures a Client
type Option func(c *Client)

// WithHTTPClient allows custom http.Client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.HTTPClient = client
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger baseclient.Logger) Option {
	return func(c *Client) {
		c.Logger = logger
	}
}

// WithMetrics sets prometheus collectors
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.Metrics = m
	}
}

// WithInterceptors registers interceptors in the given order
func WithInterceptors(interceptors ...transport.Interceptor) Option {
	return func(c *Client) {
		for _, interceptor := range interceptors {
			c.Chain.Add(interceptor)
		}
	}
}

// WithRequestTimeout bounds every network call; zero disables the bound
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout >= 0 {
			c.RequestTimeout = timeout
		}
	}
}
