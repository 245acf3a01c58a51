package interceptor

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/viant/baseclient"
	"github.com/viant/baseclient/transport"
)

// Strategy selects the backing repository the remote service reads from
type Strategy string

const (
	Postgres = Strategy("POSTGRES")
	Hybrid   = Strategy("HYBRID")
)

// Valid reports whether s is a known strategy
func (s Strategy) Valid() bool {
	switch s {
	case Postgres, Hybrid:
		return true
	}
	return false
}

// ParseStrategy returns the strategy named by text, case-insensitively
func ParseStrategy(text string) (Strategy, error) {
	ret := Strategy(strings.ToUpper(strings.TrimSpace(text)))
	if !ret.Valid() {
		return "", fmt.Errorf("unsupported strategy: %q", text)
	}
	return ret, nil
}

// StrategyInterceptor tags every request with the currently selected strategy.
// The selection is read when a request is intercepted, so a change applies
// to requests intercepted afterwards, including ones already queued.
// The zero value selects Postgres.
type StrategyInterceptor struct {
	current  atomic.Pointer[Strategy]
	prefixes map[Strategy]string
}

// StrategyOption represents strategy interceptor option
type StrategyOption func(s *StrategyInterceptor)

// WithPathPrefix prefixes request paths with prefix while strategy is selected
func WithPathPrefix(strategy Strategy, prefix string) StrategyOption {
	return func(s *StrategyInterceptor) {
		if s.prefixes == nil {
			s.prefixes = map[Strategy]string{}
		}
		s.prefixes[strategy] = prefix
	}
}

// ChangeStrategy selects strategy; the last write wins
func (s *StrategyInterceptor) ChangeStrategy(strategy Strategy) {
	s.current.Store(&strategy)
}

// Current returns selected strategy
func (s *StrategyInterceptor) Current() Strategy {
	if current := s.current.Load(); current != nil {
		return *current
	}
	return Postgres
}

// OnIntercept sets the Strategy header and the optional path prefix
func (s *StrategyInterceptor) OnIntercept(_ context.Context, cortege *transport.Cortege) (*transport.Cortege, error) {
	strategy := s.Current()
	ret := cortege.Clone()
	ret.Headers.Set(baseclient.HeaderStrategy, string(strategy))
	if prefix, ok := s.prefixes[strategy]; ok && prefix != "" {
		ret.Path = joinPath(prefix, ret.Path)
	}
	return ret, nil
}

func joinPath(prefix, path string) string {
	prefix = strings.TrimRight(prefix, "/")
	if path == "" {
		return prefix
	}
	return prefix + "/" + strings.TrimLeft(path, "/")
}

// NewStrategy creates a strategy interceptor with initial selection
func NewStrategy(strategy Strategy, options ...StrategyOption) *StrategyInterceptor {
	ret := &StrategyInterceptor{prefixes: map[Strategy]string{}}
	ret.ChangeStrategy(strategy)
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
