package factory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/baseclient"
	"github.com/viant/baseclient/config"
	"github.com/viant/baseclient/interceptor"
	"github.com/viant/baseclient/metrics"
	"github.com/viant/baseclient/transport/client/http/direct"
	"github.com/viant/baseclient/transport/client/http/synced"
)

type echo struct {
	Path          string `json:"path"`
	Method        string `json:"method"`
	Strategy      string `json:"strategy"`
	Authorization string `json:"authorization"`
}

func newServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		request := &baseclient.RPCRequest{}
		_ = json.NewDecoder(r.Body).Decode(request)
		response, _ := baseclient.NewRPCResponse(request.Id, &echo{
			Path:          r.URL.Path,
			Method:        request.Method,
			Strategy:      r.Header.Get(baseclient.HeaderStrategy),
			Authorization: r.Header.Get(baseclient.HeaderAuthorization),
		})
		_ = json.NewEncoder(w).Encode(response)
	}))
}

func TestSplitEndpoint(t *testing.T) {
	var testCases = []struct {
		endpoint   string
		expectHost string
		expectPath string
	}{
		{endpoint: "https://api.example.com/rpc/v1", expectHost: "https://api.example.com", expectPath: "/rpc/v1"},
		{endpoint: "https://api.example.com", expectHost: "https://api.example.com", expectPath: "/"},
		{endpoint: "http://localhost:8080/", expectHost: "http://localhost:8080", expectPath: "/"},
	}
	for _, testCase := range testCases {
		host, path := splitEndpoint(testCase.endpoint)
		assert.Equal(t, testCase.expectHost, host, testCase.endpoint)
		assert.Equal(t, testCase.expectPath, path, testCase.endpoint)
	}
}

func TestNewJSONRPCHTTP(t *testing.T) {
	server := newServer()
	defer server.Close()

	client := NewJSONRPCHTTP(server.URL+"/rpc", baseclient.NopLogger)
	_, ok := client.Underlying().(*synced.Client)
	assert.True(t, ok)
	auth := interceptor.NewAccessToken()
	auth.SetAccessData("abc", "")
	client.AddInterceptor(auth)

	actual, err := client.Request(context.Background(), "profileManager.getData", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"path":          "/rpc",
		"method":        "profileManager.getData",
		"strategy":      "",
		"authorization": "Bearer abc",
	}, actual)
}

func TestFromConfig(t *testing.T) {
	server := newServer()
	defer server.Close()

	cfg := config.Default()
	cfg.Host = server.URL
	cfg.Endpoint = "/rpc"
	cfg.Strategy = "HYBRID"
	cfg.Token.Value = "abc"
	cfg.Token.Type = "BEARER"
	transports, err := FromConfig(&cfg, baseclient.NopLogger)
	require.NoError(t, err)
	_, ok := transports.HTTP.(*synced.Client)
	assert.True(t, ok)

	actual, err := transports.RPC.Request(context.Background(), "manager.get", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "HYBRID", actual.(map[string]interface{})["strategy"])
	assert.Equal(t, "Bearer abc", actual.(map[string]interface{})["authorization"])

	transports.Strategy.ChangeStrategy(interceptor.Postgres)
	transports.AccessToken.SetAccessData("", "")
	actual, err = transports.RPC.Request(context.Background(), "manager.get", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "POSTGRES", actual.(map[string]interface{})["strategy"])
	assert.Equal(t, "", actual.(map[string]interface{})["authorization"])
	assert.NoError(t, transports.RPC.Disconnect())
}

func TestFromConfig_Direct(t *testing.T) {
	cfg := config.Default()
	cfg.Synced = false
	cfg.Strategy = ""
	transports, err := FromConfig(&cfg, baseclient.NopLogger)
	require.NoError(t, err)
	_, ok := transports.HTTP.(*direct.Client)
	assert.True(t, ok)
	assert.Nil(t, transports.Strategy)

	cfg.Host = ""
	_, err = FromConfig(&cfg, baseclient.NopLogger)
	assert.Error(t, err)
}

func TestFromConfig_Metrics(t *testing.T) {
	server := newServer()
	defer server.Close()

	cfg := config.Default()
	cfg.Host = server.URL
	cfg.Metrics = true
	registry := prometheus.NewRegistry()

	var first, second *Transports
	require.NotPanics(t, func() {
		var err error
		first, err = FromConfig(&cfg, baseclient.NopLogger, registry)
		require.NoError(t, err)
		second, err = FromConfig(&cfg, baseclient.NopLogger, registry)
		require.NoError(t, err)
	})
	require.NotPanics(t, func() {
		_, err := FromConfig(&cfg, baseclient.NopLogger)
		require.NoError(t, err)
		_, err = FromConfig(&cfg, baseclient.NopLogger)
		require.NoError(t, err)
	})

	_, err := first.RPC.Request(context.Background(), "manager.get", nil, nil)
	require.NoError(t, err)
	_, err = second.RPC.Request(context.Background(), "manager.get", nil, nil)
	require.NoError(t, err)

	requests := collectorsFor(registry).Requests.WithLabelValues("synced", metrics.OutcomeSuccess)
	assert.Equal(t, float64(2), testutil.ToFloat64(requests))
}
