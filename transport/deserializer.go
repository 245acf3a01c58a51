package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/viant/baseclient"
)

// Deserializer rebuilds typed values from a JSON payload
type Deserializer interface {
	Deserialize(data []byte) (interface{}, error)
}

// DeserializerFunc adapts a function to Deserializer
type DeserializerFunc func(data []byte) (interface{}, error)

// Deserialize calls fn
func (fn DeserializerFunc) Deserialize(data []byte) (interface{}, error) {
	return fn(data)
}

type single[T any] struct{}

func (single[T]) Deserialize(data []byte) (interface{}, error) {
	return decode[T](data)
}

type sequence[T any] struct{}

func (sequence[T]) Deserialize(data []byte) (interface{}, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: expected array: %v", baseclient.ErrDeserialize, err)
	}
	ret := make([]*T, 0, len(items))
	for i, item := range items {
		value, err := decode[T](item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		ret = append(ret, value)
	}
	return ret, nil
}

// One returns a deserializer producing *T
func One[T any]() Deserializer {
	return single[T]{}
}

// Many returns a deserializer producing []*T in payload order
func Many[T any]() Deserializer {
	return sequence[T]{}
}

func decode[T any](data []byte) (*T, error) {
	ret := new(T)
	if loader, ok := any(ret).(baseclient.JSONLoader); ok {
		if err := loader.FromJSON(data); err != nil {
			return nil, fmt.Errorf("%w: %v", baseclient.ErrDeserialize, err)
		}
		return ret, nil
	}
	if err := json.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("%w: %T: %v", baseclient.ErrDeserialize, ret, err)
	}
	return ret, nil
}

// Deserialize decodes payload with deserializer; a nil deserializer yields generic JSON
// and an empty payload yields nil. Failures wrap baseclient.ErrDeserialize.
func Deserialize(payload []byte, deserializer Deserializer) (interface{}, error) {
	if deserializer == nil {
		if len(bytes.TrimSpace(payload)) == 0 {
			return nil, nil
		}
		var ret interface{}
		if err := json.Unmarshal(payload, &ret); err != nil {
			return nil, fmt.Errorf("%w: %v", baseclient.ErrDeserialize, err)
		}
		return ret, nil
	}
	ret, err := deserializer.Deserialize(payload)
	if err != nil {
		if errors.Is(err, baseclient.ErrDeserialize) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", baseclient.ErrDeserialize, err)
	}
	return ret, nil
}
