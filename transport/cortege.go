package transport

import (
	"github.com/viant/baseclient"
)

// Cortege carries one in-flight request through the interceptor chain and into the network call.
type Cortege struct {
	Path    string
	Method  baseclient.Method
	Headers *Headers
	// Data is the serialized (wire) body
	Data interface{}
	// OriginalData is the body before serialization
	OriginalData interface{}
	File         *baseclient.FileMeta
}

// NewCortege creates a cortege
func NewCortege(path string, method baseclient.Method, headers *Headers, data, original interface{}, file *baseclient.FileMeta) *Cortege {
	if headers == nil {
		headers = NewHeaders()
	}
	return &Cortege{
		Path:         path,
		Method:       method,
		Headers:      headers,
		Data:         data,
		OriginalData: original,
		File:         file,
	}
}

// IsJSONRPC reports whether the original body is a JSON-RPC envelope
func (c *Cortege) IsJSONRPC() bool {
	return baseclient.IsRPCRequest(c.OriginalData)
}

// RPCMethod returns the JSON-RPC method name, if any
func (c *Cortege) RPCMethod() string {
	if request, ok := c.OriginalData.(*baseclient.RPCRequest); ok {
		return request.Method
	}
	return ""
}

// HasBody reports whether a JSON body will be sent
func (c *Cortege) HasBody() bool {
	return c.Data != nil
}

// Clone returns a copy with independent headers
func (c *Cortege) Clone() *Cortege {
	ret := *c
	ret.Headers = c.Headers.Clone()
	return &ret
}

// Label returns a log label, e.g. "POST /rpc rpc method: profileManager.getData"
func (c *Cortege) Label() string {
	label := string(c.Method) + " " + c.Path
	if method := c.RPCMethod(); method != "" {
		label += " rpc method: " + method
	}
	return label
}
