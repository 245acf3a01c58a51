package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/viant/baseclient"
	"github.com/viant/baseclient/transport"
)

// Client wraps an HTTP-shaped transport: every call is POSTed to path as a JSON-RPC 2.0 envelope.
type Client struct {
	path      string
	transport transport.Transport
	sequencer transport.Sequencer
	counter   uint64
}

// NextRequestID returns the next request id, starting from 1
func (c *Client) NextRequestID() baseclient.RequestId {
	return atomic.AddUint64(&c.counter, 1)
}

// LastRequestID returns the most recently generated request id
func (c *Client) LastRequestID() baseclient.RequestId {
	return atomic.LoadUint64(&c.counter)
}

// Request calls method with params. The returned payload is the envelope result,
// or the whole body when the server did not answer with an envelope.
func (c *Client) Request(ctx context.Context, method string, params []interface{}, deserializer transport.Deserializer) (interface{}, error) {
	id := c.sequencer.NextRequestID()
	envelope := baseclient.NewRPCRequest(id, method, params)
	response, err := c.transport.SendRequest(ctx, c.path, baseclient.MethodPost, envelope, nil)
	if err != nil {
		if rpcErr := errorOf(response); rpcErr != nil {
			return nil, fmt.Errorf("%w: %w", err, rpcErr)
		}
		return nil, err
	}
	payload, err := c.payload(id, response.Body)
	if err != nil {
		return nil, err
	}
	return transport.Deserialize(payload, deserializer)
}

// Underlying returns the wrapped transport
func (c *Client) Underlying() transport.Transport {
	return c.transport
}

// AddInterceptor registers an interceptor on the underlying transport
func (c *Client) AddInterceptor(interceptor transport.Interceptor) transport.RPC {
	c.transport.AddInterceptor(interceptor)
	return c
}

// RemoveInterceptor unregisters an interceptor from the underlying transport
func (c *Client) RemoveInterceptor(interceptor transport.Interceptor) transport.RPC {
	c.transport.RemoveInterceptor(interceptor)
	return c
}

// Disconnect disconnects the underlying transport
func (c *Client) Disconnect() error {
	return c.transport.Disconnect()
}

// payload unwraps a JSON-RPC response envelope
func (c *Client) payload(id baseclient.RequestId, body []byte) ([]byte, error) {
	if !isEnvelope(body) {
		return body, nil
	}
	response := &baseclient.RPCResponse{}
	if err := json.Unmarshal(body, response); err != nil {
		return nil, fmt.Errorf("%w: invalid jsonrpc response: %v", baseclient.ErrDeserialize, err)
	}
	if response.Error != nil {
		return nil, response.Error
	}
	if response.Id != nil && !sameID(id, response.Id) {
		return nil, fmt.Errorf("jsonrpc response id %v does not match request id %v", response.Id, id)
	}
	return response.Result, nil
}

func isEnvelope(body []byte) bool {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return false
	}
	probe := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &probe); err != nil {
		return false
	}
	_, ok := probe["jsonrpc"]
	return ok
}

// errorOf extracts a JSON-RPC error carried by a failed response
func errorOf(response *baseclient.Response) *baseclient.Error {
	if response == nil || !isEnvelope(response.Body) {
		return nil
	}
	envelope := &baseclient.RPCResponse{}
	if err := json.Unmarshal(response.Body, envelope); err != nil {
		return nil
	}
	return envelope.Error
}

// sameID compares ids by their JSON form since decoded numbers are float64
func sameID(expect, actual baseclient.RequestId) bool {
	expectJSON, err := json.Marshal(expect)
	if err != nil {
		return false
	}
	actualJSON, err := json.Marshal(actual)
	if err != nil {
		return false
	}
	return bytes.Equal(expectJSON, actualJSON)
}

// New creates a JSON-RPC client posting to path (default "/") through underlying
func New(path string, underlying transport.Transport, options ...Option) *Client {
	if path == "" {
		path = "/"
	}
	ret := &Client{path: path, transport: underlying}
	ret.sequencer = ret
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
