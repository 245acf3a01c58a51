package baseclient

import (
	"encoding/json"
	"errors"
	"fmt"
)

// RequestId is the type used to represent the id of a JSON-RPC request.
type RequestId any

// Error is used to provide additional information about the error that occurred.
type Error struct {
	// The error type that occurred.
	Code int `json:"code" yaml:"code" mapstructure:"code"`

	// Additional information about the error. The value of this member is defined by
	// the sender (e.g. detailed error information, nested errors etc.).
	Data interface{} `json:"data,omitempty" yaml:"data,omitempty" mapstructure:"data,omitempty"`

	// A short description of the error.
	Message string `json:"message" yaml:"message" mapstructure:"message"`
}

// RPCRequest represents a JSON-RPC request envelope sent by the rpc transport.
type RPCRequest struct {
	Id      RequestId     `json:"id" yaml:"id" mapstructure:"id"`
	Jsonrpc string        `json:"jsonrpc" yaml:"jsonrpc" mapstructure:"jsonrpc"`
	Method  string        `json:"method" yaml:"method" mapstructure:"method"`
	Params  []interface{} `json:"params" yaml:"params" mapstructure:"params"`
}

// UnmarshalJSON is a custom JSON unmarshaler for the RPCRequest type.
func (m *RPCRequest) UnmarshalJSON(data []byte) error {
	required := struct {
		Id      *RequestId     `json:"id"`
		Jsonrpc *string        `json:"jsonrpc"`
		Method  *string        `json:"method"`
		Params  *[]interface{} `json:"params"`
	}{}
	if err := json.Unmarshal(data, &required); err != nil {
		return err
	}
	if required.Id == nil {
		return errors.New("field id in RPCRequest: required")
	}
	if required.Jsonrpc == nil {
		return errors.New("field jsonrpc in RPCRequest: required")
	}
	if required.Method == nil {
		return errors.New("field method in RPCRequest: required")
	}
	m.Id = *required.Id
	m.Jsonrpc = *required.Jsonrpc
	m.Method = *required.Method
	m.Params = []interface{}{}
	if required.Params != nil {
		m.Params = *required.Params
	}
	return nil
}

// RPCResponse represents a JSON-RPC response envelope.
type RPCResponse struct {
	Id      RequestId       `json:"id" yaml:"id" mapstructure:"id"`
	Jsonrpc string          `json:"jsonrpc" yaml:"jsonrpc" mapstructure:"jsonrpc"`
	Error   *Error          `json:"error,omitempty" yaml:"error" mapstructure:"error"`
	Result  json.RawMessage `json:"result,omitempty" yaml:"result" mapstructure:"result"`
}

// UnmarshalJSON is a custom JSON unmarshaler for the RPCResponse type.
// A present "result" key is kept verbatim, including null.
func (m *RPCResponse) UnmarshalJSON(data []byte) error {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	version, ok := fields["jsonrpc"]
	if !ok {
		return errors.New("field jsonrpc in RPCResponse: required")
	}
	if err := json.Unmarshal(version, &m.Jsonrpc); err != nil {
		return fmt.Errorf("field jsonrpc in RPCResponse: %w", err)
	}
	m.Id = nil
	if id, ok := fields["id"]; ok {
		if err := json.Unmarshal(id, &m.Id); err != nil {
			return fmt.Errorf("field id in RPCResponse: %w", err)
		}
	}
	result, hasResult := fields["result"]
	m.Result = nil
	if hasResult {
		m.Result = result
	}
	m.Error = nil
	if raw, ok := fields["error"]; ok && string(raw) != "null" {
		m.Error = &Error{}
		if err := json.Unmarshal(raw, m.Error); err != nil {
			return fmt.Errorf("field error in RPCResponse: %w", err)
		}
	}
	if !hasResult && m.Error == nil {
		return errors.New("field result in RPCResponse: required")
	}
	return nil
}

// NewRPCRequest creates a JSON-RPC request envelope; nil params are sent as an empty array.
func NewRPCRequest(id RequestId, method string, params []interface{}) *RPCRequest {
	if params == nil {
		params = []interface{}{}
	}
	return &RPCRequest{Id: id, Jsonrpc: Version, Method: method, Params: params}
}

// NewRPCResponse creates a new RPCResponse with the specified id and result.
func NewRPCResponse(id RequestId, result interface{}) (*RPCResponse, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal jsonrpc result: %w", err)
	}
	return &RPCResponse{Id: id, Jsonrpc: Version, Result: data}, nil
}

// IsRPCRequest reports whether v is a JSON-RPC request envelope.
func IsRPCRequest(v interface{}) bool {
	_, ok := v.(*RPCRequest)
	return ok
}
