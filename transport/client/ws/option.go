package ws

import (
	"github.com/gorilla/websocket"
	"github.com/viant/baseclient"
	"github.com/viant/baseclient/metrics"
	"github.com/viant/baseclient/transport"
)

// Option configures a Client
type Option func(c *Client)

// WithDialer allows custom websocket dialer
func WithDialer(dialer *websocket.Dialer) Option {
	return func(c *Client) {
		if dialer != nil {
			c.dialer = dialer
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger baseclient.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics sets prometheus collectors
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithInterceptors registers interceptors in the given order
func WithInterceptors(interceptors ...transport.Interceptor) Option {
	return func(c *Client) {
		for _, interceptor := range interceptors {
			c.chain.Add(interceptor)
		}
	}
}
