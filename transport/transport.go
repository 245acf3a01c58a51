package transport

import (
	"context"

	"github.com/viant/baseclient"
)

// Transport sends HTTP-shaped requests through an interceptor chain
type Transport interface {
	// SendRequest sends data (JSON, or multipart when file is set) to path using method
	SendRequest(ctx context.Context, path string, method baseclient.Method, data interface{}, file *baseclient.FileMeta) (*baseclient.Response, error)
	// AddInterceptor registers an interceptor and returns the transport for chaining
	AddInterceptor(interceptor Interceptor) Transport
	// RemoveInterceptor unregisters an interceptor
	RemoveInterceptor(interceptor Interceptor) Transport
	// Disconnect releases underlying connection resources
	Disconnect() error
}

// RPC is the contract consumed by remote managers
type RPC interface {
	// Request calls method with params; a nil deserializer returns the parsed JSON payload
	Request(ctx context.Context, method string, params []interface{}, deserializer Deserializer) (interface{}, error)
	// AddInterceptor registers an interceptor and returns the transport for chaining
	AddInterceptor(interceptor Interceptor) RPC
	// Disconnect releases underlying connection resources
	Disconnect() error
}

// Sequencer generates request ids
type Sequencer interface {
	NextRequestID() baseclient.RequestId
	// LastRequestID returns the most recently generated request id without
	// mutating the underlying sequence counter.
	LastRequestID() baseclient.RequestId
}
