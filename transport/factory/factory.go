// Package factory assembles transports the way remote managers consume them.
package factory

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	redis "github.com/redis/go-redis/v9"
	"github.com/viant/baseclient"
	"github.com/viant/baseclient/config"
	"github.com/viant/baseclient/interceptor"
	"github.com/viant/baseclient/interceptor/token"
	"github.com/viant/baseclient/metrics"
	"github.com/viant/baseclient/transport"
	"github.com/viant/baseclient/transport/client/base"
	"github.com/viant/baseclient/transport/client/http/direct"
	"github.com/viant/baseclient/transport/client/http/synced"
	"github.com/viant/baseclient/transport/client/rpc"
	"github.com/viant/baseclient/transport/client/ws"
	"github.com/viant/scy/cred/secret"
)

// Transports groups what FromConfig creates; managers hold the interceptors to change
// strategy or token at runtime.
type Transports struct {
	RPC         transport.RPC
	HTTP        transport.Transport
	Strategy    *interceptor.StrategyInterceptor
	AccessToken *interceptor.AccessToken
}

// NewHTTP creates a synced HTTP transport for host
func NewHTTP(host string, logger baseclient.Logger, options ...base.Option) *synced.Client {
	return synced.New(host, append([]base.Option{base.WithLogger(logger)}, options...)...)
}

// NewJSONRPCHTTP creates a JSON-RPC transport over a synced HTTP transport; endpoint
// is the service URL including the RPC path.
func NewJSONRPCHTTP(endpoint string, logger baseclient.Logger, options ...base.Option) *rpc.Client {
	host, path := splitEndpoint(endpoint)
	return rpc.New(path, NewHTTP(host, logger, options...))
}

var (
	collectorsMux sync.Mutex
	collectors    = map[prometheus.Registerer]*metrics.Metrics{}
)

// collectorsFor registers transport collectors with registerer once and reuses them afterwards
func collectorsFor(registerer prometheus.Registerer) *metrics.Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	collectorsMux.Lock()
	defer collectorsMux.Unlock()
	ret, ok := collectors[registerer]
	if !ok {
		ret = metrics.New(registerer)
		collectors[registerer] = ret
	}
	return ret
}

// FromConfig builds transports and interceptors described by cfg. When cfg enables metrics,
// collectors are registered with registerer (default registerer when omitted); transports
// built from several configs share them.
func FromConfig(cfg *config.Config, logger baseclient.Logger, registerer ...prometheus.Registerer) (*Transports, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		var err error
		if logger, _, err = cfg.Log.Logger(); err != nil {
			return nil, err
		}
	}
	ret := &Transports{}
	if cfg.Strategy != "" {
		strategy, err := interceptor.ParseStrategy(cfg.Strategy)
		if err != nil {
			return nil, err
		}
		ret.Strategy = interceptor.NewStrategy(strategy)
	}
	ret.AccessToken = accessToken(&cfg.Token)

	var collected *metrics.Metrics
	if cfg.Metrics {
		var target prometheus.Registerer
		if len(registerer) > 0 {
			target = registerer[0]
		}
		collected = collectorsFor(target)
	}
	interceptors := []transport.Interceptor{ret.AccessToken}
	if ret.Strategy != nil {
		interceptors = append(interceptors, ret.Strategy)
	}
	options := []base.Option{
		base.WithLogger(logger),
		base.WithMetrics(collected),
		base.WithRequestTimeout(cfg.Timeout()),
		base.WithInterceptors(interceptors...),
	}
	if cfg.Synced {
		ret.HTTP = synced.New(cfg.Host, options...)
	} else {
		ret.HTTP = direct.New(cfg.Host, options...)
	}
	if cfg.WebSocket != "" {
		ret.RPC = ws.New(cfg.WebSocket,
			ws.WithLogger(logger),
			ws.WithMetrics(collected),
			ws.WithInterceptors(interceptors...))
		return ret, nil
	}
	ret.RPC = rpc.New(cfg.Endpoint, ret.HTTP)
	return ret, nil
}

func accessToken(cfg *config.Token) *interceptor.AccessToken {
	var options []interceptor.AccessTokenOption
	if cfg.ID != "" {
		var store token.Store = token.NewMemoryStore(0)
		if cfg.RedisAddr != "" {
			store = token.NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}), cfg.RedisPrefix, 0)
		}
		options = append(options, interceptor.WithTokenStore(store, cfg.ID))
	}
	if cfg.Secret != "" {
		options = append(options, interceptor.WithSecret(secret.Resource(cfg.Secret)))
	}
	ret := interceptor.NewAccessToken(options...)
	if cfg.Value != "" {
		ret.SetAccessData(cfg.Value, token.Type(cfg.Type))
	}
	return ret
}

// splitEndpoint separates scheme://host from the path of endpoint
func splitEndpoint(endpoint string) (string, string) {
	schemeEnd := 0
	if index := strings.Index(endpoint, "://"); index != -1 {
		schemeEnd = index + 3
	}
	if index := strings.Index(endpoint[schemeEnd:], "/"); index != -1 {
		return endpoint[:schemeEnd+index], endpoint[schemeEnd+index:]
	}
	return endpoint, "/"
}
