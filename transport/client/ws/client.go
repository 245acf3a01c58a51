package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/viant/baseclient"
	"github.com/viant/baseclient/metrics"
	"github.com/viant/baseclient/transport"
)

// Kind labels logs and metrics of this transport
const Kind = "ws"

type result struct {
	response *baseclient.RPCResponse
	err      error
}

// Client calls JSON-RPC methods over one persistent WebSocket connection.
// The connection is dialled lazily by the first request; headers set by interceptors
// on that request become the handshake headers. Responses are routed by id, so
// concurrent calls may complete out of order.
type Client struct {
	url     string
	dialer  *websocket.Dialer
	chain   *transport.Chain
	logger  baseclient.Logger
	metrics *metrics.Metrics
	counter atomic.Uint64

	writeMux sync.Mutex
	mux      sync.Mutex
	conn     *websocket.Conn
	pending  map[string]chan *result
	closed   chan struct{}
	once     sync.Once
}

// Request calls method with params and deserializes the result
func (c *Client) Request(ctx context.Context, method string, params []interface{}, deserializer transport.Deserializer) (interface{}, error) {
	id := c.counter.Add(1)
	envelope := baseclient.NewRPCRequest(id, method, params)
	cortege := transport.NewCortege("", baseclient.MethodPost, nil, envelope, envelope, nil)
	intercepted, err := c.chain.Apply(ctx, cortege)
	if err != nil {
		c.metrics.Reject(Kind)
		c.logger.Errorf("[%v] %v: %v", id, cortege.Label(), err)
		return nil, err
	}
	started := time.Now()
	response, err := c.call(ctx, id, intercepted)
	elapsed := time.Since(started)
	c.logger.Debugf("[%v] request: %v took %s", id, intercepted.Label(), elapsed)
	switch {
	case err != nil:
		c.metrics.Observe(Kind, method, metrics.OutcomeNetwork, elapsed)
		c.logger.Errorf("[%v] %v: %v", id, intercepted.Label(), err)
		return nil, err
	case response.Error != nil:
		c.metrics.Observe(Kind, method, metrics.OutcomeStatus, elapsed)
		return nil, response.Error
	}
	c.metrics.Observe(Kind, method, metrics.OutcomeSuccess, elapsed)
	return transport.Deserialize(response.Result, deserializer)
}

func (c *Client) call(ctx context.Context, id uint64, cortege *transport.Cortege) (*baseclient.RPCResponse, error) {
	conn, err := c.connect(ctx, cortege.Headers)
	if err != nil {
		return nil, err
	}
	key := routeKey(id)
	ch, err := c.register(key)
	if err != nil {
		return nil, err
	}
	defer c.unregister(key)

	c.writeMux.Lock()
	err = conn.WriteJSON(cortege.Data)
	c.writeMux.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to write request: %w", err)
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.closed:
		return nil, baseclient.ErrDisconnected
	case ret := <-ch:
		return ret.response, ret.err
	}
}

// connect dials once; a connection lost by the read loop is redialled by the next request
func (c *Client) connect(ctx context.Context, headers *transport.Headers) (*websocket.Conn, error) {
	c.mux.Lock()
	defer c.mux.Unlock()
	select {
	case <-c.closed:
		return nil, baseclient.ErrDisconnected
	default:
	}
	if c.conn != nil {
		return c.conn, nil
	}
	header := http.Header{}
	headers.Range(func(key, value string) bool {
		header.Set(key, value)
		return true
	})
	conn, _, err := c.dialer.DialContext(ctx, c.url, header)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %v: %w", c.url, err)
	}
	c.conn = conn
	go c.readLoop(conn)
	return conn, nil
}

func (c *Client) register(key string) (chan *result, error) {
	c.mux.Lock()
	defer c.mux.Unlock()
	if c.pending == nil {
		return nil, baseclient.ErrDisconnected
	}
	ch := make(chan *result, 1)
	c.pending[key] = ch
	return ch, nil
}

func (c *Client) unregister(key string) {
	c.mux.Lock()
	defer c.mux.Unlock()
	delete(c.pending, key)
}

// readLoop routes responses to waiting callers until the connection fails
func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			c.fail(conn, err)
			return
		}
		response := &baseclient.RPCResponse{}
		if err := json.Unmarshal(message, response); err != nil {
			c.logger.Debugf("ignored message: %s: %v", message, err)
			continue
		}
		c.mux.Lock()
		ch, ok := c.pending[routeKey(response.Id)]
		if ok {
			delete(c.pending, routeKey(response.Id))
		}
		c.mux.Unlock()
		if !ok {
			c.logger.Debugf("ignored response with unknown id: %v", response.Id)
			continue
		}
		ch <- &result{response: response}
	}
}

// fail rejects pending calls after conn broke
func (c *Client) fail(conn *websocket.Conn, cause error) {
	c.mux.Lock()
	defer c.mux.Unlock()
	if c.conn != conn {
		return
	}
	_ = conn.Close()
	c.conn = nil
	for key, ch := range c.pending {
		ch <- &result{err: fmt.Errorf("connection lost: %w", cause)}
		delete(c.pending, key)
	}
}

// Pending returns number of calls waiting for a response
func (c *Client) Pending() int {
	c.mux.Lock()
	defer c.mux.Unlock()
	return len(c.pending)
}

// AddInterceptor registers an interceptor
func (c *Client) AddInterceptor(interceptor transport.Interceptor) transport.RPC {
	c.chain.Add(interceptor)
	return c
}

// RemoveInterceptor unregisters an interceptor
func (c *Client) RemoveInterceptor(interceptor transport.Interceptor) transport.RPC {
	c.chain.Remove(interceptor)
	return c
}

// Disconnect closes the connection; pending and later calls fail with baseclient.ErrDisconnected
func (c *Client) Disconnect() error {
	var err error
	c.once.Do(func() {
		c.mux.Lock()
		defer c.mux.Unlock()
		close(c.closed)
		c.pending = nil
		if c.conn != nil {
			err = c.conn.Close()
			c.conn = nil
		}
	})
	return err
}

// routeKey normalizes ids by their JSON form since decoded numbers are float64
func routeKey(id baseclient.RequestId) string {
	data, err := json.Marshal(id)
	if err != nil {
		return fmt.Sprint(id)
	}
	return string(data)
}

// New creates a WebSocket JSON-RPC client for url (ws:// or wss://)
func New(url string, options ...Option) *Client {
	ret := &Client{
		url:     url,
		dialer:  websocket.DefaultDialer,
		chain:   &transport.Chain{},
		logger:  baseclient.DefaultLogger,
		pending: map[string]chan *result{},
		closed:  make(chan struct{}),
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.logger == nil {
		ret.logger = baseclient.NopLogger
	}
	return ret
}
