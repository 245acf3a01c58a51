package transport

import (
	"context"
	"fmt"
	"reflect"
	"sync"
)

// Interceptor inspects or rewrites a request before it is dispatched.
// Returning an error rejects the request; no network call is made.
type Interceptor interface {
	OnIntercept(ctx context.Context, cortege *Cortege) (*Cortege, error)
}

// InterceptorFunc adapts a function to Interceptor
type InterceptorFunc func(ctx context.Context, cortege *Cortege) (*Cortege, error)

// OnIntercept calls fn
func (fn InterceptorFunc) OnIntercept(ctx context.Context, cortege *Cortege) (*Cortege, error) {
	return fn(ctx, cortege)
}

// Chain is an ordered list of interceptors applied one after another
type Chain struct {
	mux          sync.RWMutex
	interceptors []Interceptor
}

// Add appends an interceptor
func (c *Chain) Add(interceptor Interceptor) {
	if interceptor == nil {
		return
	}
	c.mux.Lock()
	defer c.mux.Unlock()
	c.interceptors = append(c.interceptors, interceptor)
}

// Remove removes the first registration of interceptor, reports whether it was found.
// Interceptors of uncomparable types, e.g. InterceptorFunc, cannot be removed.
func (c *Chain) Remove(interceptor Interceptor) bool {
	c.mux.Lock()
	defer c.mux.Unlock()
	for i, candidate := range c.interceptors {
		if sameInterceptor(candidate, interceptor) {
			c.interceptors = append(c.interceptors[:i:i], c.interceptors[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns number of registered interceptors
func (c *Chain) Len() int {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return len(c.interceptors)
}

func sameInterceptor(a, b Interceptor) bool {
	if a == nil || b == nil {
		return false
	}
	aType := reflect.TypeOf(a)
	if aType != reflect.TypeOf(b) || !aType.Comparable() {
		return false
	}
	return a == b
}

func (c *Chain) snapshot() []Interceptor {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return append([]Interceptor(nil), c.interceptors...)
}

// Apply runs interceptors in registration order, each one seeing the previous result.
// Registrations changed while Apply runs only affect later calls.
func (c *Chain) Apply(ctx context.Context, cortege *Cortege) (*Cortege, error) {
	for i, interceptor := range c.snapshot() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := interceptor.OnIntercept(ctx, cortege)
		if err != nil {
			return nil, fmt.Errorf("interceptor %d rejected %v: %w", i, cortege.Label(), err)
		}
		if next != nil {
			cortege = next
		}
	}
	return cortege, nil
}
