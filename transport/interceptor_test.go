package transport

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/baseclient"
)

func setHeader(key, value string) Interceptor {
	return InterceptorFunc(func(ctx context.Context, cortege *Cortege) (*Cortege, error) {
		cortege.Headers.Set(key, value)
		return cortege, nil
	})
}

func TestChain_Apply(t *testing.T) {
	increment := InterceptorFunc(func(ctx context.Context, cortege *Cortege) (*Cortege, error) {
		x, err := strconv.Atoi(cortege.Headers.Get("X"))
		if err != nil {
			return nil, err
		}
		ret := cortege.Clone()
		ret.Headers.Set("Y", strconv.Itoa(x+1))
		return ret, nil
	})
	keep := InterceptorFunc(func(ctx context.Context, cortege *Cortege) (*Cortege, error) {
		return nil, nil
	})

	chain := &Chain{}
	chain.Add(setHeader("X", "1"))
	chain.Add(nil)
	chain.Add(increment)
	chain.Add(keep)
	assert.Equal(t, 3, chain.Len())

	actual, err := chain.Apply(context.Background(), NewCortege("/", baseclient.MethodGet, nil, nil, nil, nil))
	require.NoError(t, err)
	assert.Equal(t, "2", actual.Headers.Get("Y"))
}

func TestChain_Rejection(t *testing.T) {
	denied := errors.New("denied")
	var reached bool
	chain := &Chain{}
	chain.Add(InterceptorFunc(func(ctx context.Context, cortege *Cortege) (*Cortege, error) {
		return nil, denied
	}))
	chain.Add(InterceptorFunc(func(ctx context.Context, cortege *Cortege) (*Cortege, error) {
		reached = true
		return cortege, nil
	}))
	_, err := chain.Apply(context.Background(), NewCortege("/", baseclient.MethodGet, nil, nil, nil, nil))
	assert.ErrorIs(t, err, denied)
	assert.False(t, reached)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = chain.Apply(ctx, NewCortege("/", baseclient.MethodGet, nil, nil, nil, nil))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChain_Remove(t *testing.T) {
	first := setHeader("A", "1")
	second := &headerSetter{key: "B"}
	chain := &Chain{}
	chain.Add(first)
	chain.Add(second)
	assert.True(t, chain.Remove(second))
	assert.False(t, chain.Remove(second))
	assert.Equal(t, 1, chain.Len())

	actual, err := chain.Apply(context.Background(), NewCortege("/", baseclient.MethodGet, nil, nil, nil, nil))
	require.NoError(t, err)
	assert.False(t, actual.Headers.Has("B"))
}

func TestChain_SnapshotIsolation(t *testing.T) {
	chain := &Chain{}
	late := setHeader("Late", "1")
	chain.Add(InterceptorFunc(func(ctx context.Context, cortege *Cortege) (*Cortege, error) {
		chain.Add(late)
		return cortege, nil
	}))
	actual, err := chain.Apply(context.Background(), NewCortege("/", baseclient.MethodGet, nil, nil, nil, nil))
	require.NoError(t, err)
	assert.False(t, actual.Headers.Has("Late"))
	assert.Equal(t, 2, chain.Len())
}

type headerSetter struct {
	key string
}

func (h *headerSetter) OnIntercept(ctx context.Context, cortege *Cortege) (*Cortege, error) {
	cortege.Headers.Set(h.key, "1")
	return cortege, nil
}

func TestChain_RemoveFunc(t *testing.T) {
	fn := setHeader("A", "1")
	chain := &Chain{}
	chain.Add(fn)
	assert.NotPanics(t, func() {
		assert.False(t, chain.Remove(fn))
	})
	assert.Equal(t, 1, chain.Len())
}
