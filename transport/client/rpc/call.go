package rpc

import (
	"context"

	"github.com/viant/baseclient/transport"
)

// Call calls method and deserializes the payload into *T
func Call[T any](ctx context.Context, client transport.RPC, method string, params ...interface{}) (*T, error) {
	result, err := client.Request(ctx, method, params, transport.One[T]())
	if err != nil {
		return nil, err
	}
	ret, _ := result.(*T)
	return ret, nil
}

// CallSlice calls method and deserializes an array payload into []*T
func CallSlice[T any](ctx context.Context, client transport.RPC, method string, params ...interface{}) ([]*T, error) {
	result, err := client.Request(ctx, method, params, transport.Many[T]())
	if err != nil {
		return nil, err
	}
	ret, _ := result.([]*T)
	return ret, nil
}
