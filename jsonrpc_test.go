package baseclient

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRPCRequest_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      *RPCRequest
		wantError bool
	}{
		{
			name:  "valid request",
			input: `{"jsonrpc":"2.0","method":"test","id":1,"params":["a",2]}`,
			want:  &RPCRequest{Jsonrpc: "2.0", Method: "test", Id: float64(1), Params: []interface{}{"a", float64(2)}},
		},
		{
			name:      "missing jsonrpc version",
			input:     `{"method":"test","id":1,"params":[]}`,
			wantError: true,
		},
		{
			name:      "missing method",
			input:     `{"jsonrpc":"2.0","id":1,"params":[]}`,
			wantError: true,
		},
		{
			name:      "missing id",
			input:     `{"jsonrpc":"2.0","method":"test","params":[]}`,
			wantError: true,
		},
		{
			name:  "params optional",
			input: `{"jsonrpc":"2.0","method":"test","id":1}`,
			want:  &RPCRequest{Jsonrpc: "2.0", Method: "test", Id: float64(1), Params: []interface{}{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got RPCRequest
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.EqualValues(t, tt.want, &got)
		})
	}
}

func TestRPCResponse_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      *RPCResponse
		wantError bool
	}{
		{
			name:  "valid response",
			input: `{"jsonrpc":"2.0","id":1,"result":{"status":"ok"}}`,
			want:  &RPCResponse{Jsonrpc: "2.0", Id: float64(1), Result: json.RawMessage(`{"status":"ok"}`)},
		},
		{
			name:  "error response",
			input: `{"jsonrpc":"2.0","id":2,"error":{"code":-32601,"message":"no such method"}}`,
			want:  &RPCResponse{Jsonrpc: "2.0", Id: float64(2), Error: &Error{Code: MethodNotFound, Message: "no such method"}},
		},
		{
			name:  "null result",
			input: `{"jsonrpc":"2.0","id":3,"result":null}`,
			want:  &RPCResponse{Jsonrpc: "2.0", Id: float64(3), Result: json.RawMessage(`null`)},
		},
		{
			name:  "notification style response without id",
			input: `{"jsonrpc":"2.0","result":true}`,
			want:  &RPCResponse{Jsonrpc: "2.0", Result: json.RawMessage(`true`)},
		},
		{
			name:      "missing jsonrpc version",
			input:     `{"id":1,"result":{"status":"ok"}}`,
			wantError: true,
		},
		{
			name:      "missing result",
			input:     `{"jsonrpc":"2.0","id":1}`,
			wantError: true,
		},
		{
			name:      "null error without result",
			input:     `{"jsonrpc":"2.0","id":1,"error":null}`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got RPCResponse
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.Id, got.Id)
			assert.Equal(t, tt.want.Error, got.Error)
			assert.Equal(t, string(tt.want.Result), string(got.Result))
		})
	}
}

func TestNewRPCRequest(t *testing.T) {
	request := NewRPCRequest(uint64(7), "profileManager.getData", nil)
	data, err := json.Marshal(request)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"jsonrpc":"2.0","method":"profileManager.getData","params":[]}`, string(data))
	assert.True(t, IsRPCRequest(request))
	assert.False(t, IsRPCRequest(map[string]interface{}{"method": "x"}))
}
