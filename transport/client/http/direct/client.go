package direct

import (
	"context"

	"github.com/google/uuid"
	"github.com/viant/baseclient"
	"github.com/viant/baseclient/transport"
	"github.com/viant/baseclient/transport/client/base"
)

// Kind labels logs and metrics of this transport
const Kind = "direct"

// Client sends every request on the caller's goroutine; concurrent calls may
// be in flight together and complete out of submission order.
type Client struct {
	base *base.Client
}

// SendRequest runs the interceptor chain and one network call
func (c *Client) SendRequest(ctx context.Context, path string, method baseclient.Method, data interface{}, file *baseclient.FileMeta) (*baseclient.Response, error) {
	cortege := c.base.Prepare(path, method, data, file)
	return c.base.Execute(ctx, uuid.New().String(), cortege)
}

// AddInterceptor registers an interceptor
func (c *Client) AddInterceptor(interceptor transport.Interceptor) transport.Transport {
	c.base.AddInterceptor(interceptor)
	return c
}

// RemoveInterceptor unregisters an interceptor
func (c *Client) RemoveInterceptor(interceptor transport.Interceptor) transport.Transport {
	c.base.RemoveInterceptor(interceptor)
	return c
}

// Disconnect releases idle connections
func (c *Client) Disconnect() error {
	return c.base.Disconnect()
}

// Host returns the target host
func (c *Client) Host() string {
	return c.base.Host
}

// New creates a direct HTTP transport for host
func New(host string, options ...base.Option) *Client {
	return &Client{base: base.New(host, Kind, options...)}
}
