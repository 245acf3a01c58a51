package synced

import (
	"context"
	"fmt"

	"github.com/viant/baseclient"
	"github.com/viant/baseclient/transport"
	"github.com/viant/baseclient/transport/client/base"
)

// Kind labels logs and metrics of this transport
const Kind = "synced"

// Client issues HTTP calls strictly one at a time in submission order.
// Transactions wait in a FIFO queue; a single drain worker runs while the queue is non-empty.
// There is no transport-level timeout unless configured, so a hung call blocks
// every transaction queued behind it.
type Client struct {
	base  *base.Client
	queue transport.Queue
}

// SendRequest queues the request and waits for its own outcome.
// If ctx is done first, the caller returns early but the transaction stays
// queued and fails fast once it reaches the head.
func (c *Client) SendRequest(ctx context.Context, path string, method baseclient.Method, data interface{}, file *baseclient.FileMeta) (*baseclient.Response, error) {
	cortege := c.base.Prepare(path, method, data, file)
	transaction := transport.NewTransaction(ctx, cortege)
	if c.queue.Push(transaction) {
		go c.drain(transaction)
	}
	c.base.Metrics.SetQueueDepth(c.base.Kind, c.queue.Len())
	return transaction.Wait(ctx)
}

// drain executes queued transactions until the queue is empty
func (c *Client) drain(transaction *transport.Transaction) {
	for transaction != nil {
		c.run(transaction)
		transaction = c.queue.Advance()
		c.base.Metrics.SetQueueDepth(c.base.Kind, c.queue.Len())
	}
}

// run completes transaction exactly once, whatever happens during execution
func (c *Client) run(transaction *transport.Transaction) {
	defer func() {
		if r := recover(); r != nil {
			transaction.Reject(nil, fmt.Errorf("transaction %v panicked: %v", transaction.ID, r))
		}
	}()
	response, err := c.base.Execute(transaction.Context, transaction.ID, transaction.Cortege)
	if err != nil {
		transaction.Reject(response, err)
		return
	}
	transaction.Resolve(response)
}

// Pending returns number of queued transactions including the running one
func (c *Client) Pending() int {
	return c.queue.Len()
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

// Disconnect releases idle connections; queued transactions still run
func (c *Client) Disconnect() error {
	return c.base.Disconnect()
}

// Host returns the target host
func (c *Client) Host() string {
	return c.base.Host
}

// New creates a synced HTTP transport for host
func New(host string, options ...base.Option) *Client {
	return &Client{base: base.New(host, Kind, options...)}
}
