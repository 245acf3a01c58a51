package base

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"reflect"
	"strings"
	"time"

	"github.com/viant/afs/url"
	"github.com/viant/baseclient"
	"github.com/viant/baseclient/metrics"
	"github.com/viant/baseclient/transport"
	"golang.org/x/net/publicsuffix"
)

// Client holds what HTTP transports share: host, http client, interceptor chain, logging and metrics.
type Client struct {
	Host           string
	Kind           string
	HTTPClient     *http.Client
	Chain          *transport.Chain
	Logger         baseclient.Logger
	Metrics        *metrics.Metrics
	RequestTimeout time.Duration
}

// Prepare builds a cortege; bodies exposing ToJSON are serialized through it
// and any body forces JSON Accept/Content-Type headers. Empty scalars (0, "", false)
// and nil references send no body.
func (c *Client) Prepare(path string, method baseclient.Method, data interface{}, file *baseclient.FileMeta) *transport.Cortege {
	wire := baseclient.AsJSON(data)
	if isEmpty(wire) {
		wire = nil
	}
	headers := transport.NewHeaders()
	if wire != nil {
		headers.Set(baseclient.HeaderAccept, baseclient.ContentTypeJSON)
		headers.Set(baseclient.HeaderContentType, baseclient.ContentTypeJSON)
	}
	return transport.NewCortege(path, method, headers, wire, data, file)
}

func isEmpty(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return v.IsZero()
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// URL returns the absolute request URL for path
func (c *Client) URL(path string) string {
	if path == "" {
		return c.Host
	}
	if strings.Contains(path, "://") {
		return path
	}
	return url.Join(c.Host, strings.TrimLeft(path, "/"))
}

// Execute runs the interceptor chain and then exactly one network call.
// An interceptor rejection aborts before any network activity.
func (c *Client) Execute(ctx context.Context, id string, cortege *transport.Cortege) (*baseclient.Response, error) {
	intercepted, err := c.Chain.Apply(ctx, cortege)
	if err != nil {
		c.Metrics.Reject(c.Kind)
		c.Logger.Errorf("[%v] %v: %v", id, cortege.Label(), err)
		return nil, err
	}
	if c.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.RequestTimeout)
		defer cancel()
	}
	started := time.Now()
	response, err := c.Do(ctx, intercepted)
	elapsed := time.Since(started)
	c.Logger.Debugf("[%v] request: %v took %s", id, intercepted.Label(), elapsed)
	switch {
	case err == nil:
		c.Metrics.Observe(c.Kind, string(intercepted.Method), metrics.OutcomeSuccess, elapsed)
	case response != nil:
		c.Metrics.Observe(c.Kind, string(intercepted.Method), metrics.OutcomeStatus, elapsed)
		c.Logger.Errorf("[%v] %v: %v", id, intercepted.Label(), err)
	default:
		c.Metrics.Observe(c.Kind, string(intercepted.Method), metrics.OutcomeNetwork, elapsed)
		c.Logger.Errorf("[%v] %v: %v", id, intercepted.Label(), err)
	}
	return response, err
}

// Do performs a single network call for cortege. Non-2xx statuses return both the
// response and a *baseclient.StatusError.
func (c *Client) Do(ctx context.Context, cortege *transport.Cortege) (*baseclient.Response, error) {
	request, err := c.newRequest(ctx, cortege)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(request)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("request timed out: %w", err)
		}
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	response := baseclient.NewResponse(body, resp.StatusCode)
	if !response.OK() {
		return response, baseclient.NewStatusError(response)
	}
	return response, nil
}

// AddInterceptor registers an interceptor
func (c *Client) AddInterceptor(interceptor transport.Interceptor) {
	c.Chain.Add(interceptor)
}

// RemoveInterceptor unregisters an interceptor
func (c *Client) RemoveInterceptor(interceptor transport.Interceptor) {
	c.Chain.Remove(interceptor)
}

// Disconnect closes idle keep-alive connections
func (c *Client) Disconnect() error {
	c.HTTPClient.CloseIdleConnections()
	return nil
}

// New creates a client for host with defaults applied before options
func New(host, kind string, options ...Option) *Client {
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	ret := &Client{
		Host:       strings.TrimRight(host, "/"),
		Kind:       kind,
		HTTPClient: &http.Client{Jar: jar},
		Chain:      &transport.Chain{},
		Logger:     baseclient.DefaultLogger,
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.Logger == nil {
		ret.Logger = baseclient.NopLogger
	}
	return ret
}
