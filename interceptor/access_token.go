package interceptor

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"github.com/viant/baseclient"
	"github.com/viant/baseclient/interceptor/token"
	"github.com/viant/baseclient/transport"
	"github.com/viant/scy/cred/secret"
)

type accessData struct {
	value string
	kind  token.Type
}

// AccessToken sets the Authorization header of every request.
// The token comes from SetAccessData, then the token store, then the secret resource.
// Without any token the request passes unchanged.
type AccessToken struct {
	mux      sync.RWMutex
	data     *accessData
	store    token.Store
	tokenID  string
	resource secret.Resource
	basic    string
}

// AccessTokenOption represents access token interceptor option
type AccessTokenOption func(a *AccessToken)

// WithTokenStore looks up token id in store when no token was set explicitly
func WithTokenStore(store token.Store, id string) AccessTokenOption {
	return func(a *AccessToken) {
		a.store = store
		a.tokenID = id
	}
}

// WithSecret loads basic credentials from a scy secret resource
func WithSecret(resource secret.Resource) AccessTokenOption {
	return func(a *AccessToken) {
		a.resource = resource
	}
}

// SetAccessData sets the token used by later requests; an empty token clears it
func (a *AccessToken) SetAccessData(value string, kind token.Type) {
	a.mux.Lock()
	defer a.mux.Unlock()
	if value == "" {
		a.data = nil
		return
	}
	if kind == "" {
		kind = token.Bearer
	}
	a.data = &accessData{value: value, kind: kind}
}

// AccessToken returns the explicitly set token and its type
func (a *AccessToken) AccessToken() (string, token.Type) {
	a.mux.RLock()
	defer a.mux.RUnlock()
	if a.data == nil {
		return "", ""
	}
	return a.data.value, a.data.kind
}

// OnIntercept sets Authorization header
func (a *AccessToken) OnIntercept(ctx context.Context, cortege *transport.Cortege) (*transport.Cortege, error) {
	data, err := a.resolve(ctx)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return cortege, nil
	}
	ret := cortege.Clone()
	ret.Headers.Set(baseclient.HeaderAuthorization, data.kind.Scheme()+" "+data.value)
	return ret, nil
}

func (a *AccessToken) resolve(ctx context.Context) (*accessData, error) {
	a.mux.RLock()
	data := a.data
	a.mux.RUnlock()
	if data != nil {
		return data, nil
	}
	if a.store != nil {
		stored, err := a.store.Get(ctx, a.tokenID)
		switch {
		case err == nil:
			return &accessData{value: stored.Value, kind: stored.Type}, nil
		case !errors.Is(err, token.ErrNotFound):
			return nil, fmt.Errorf("failed to get access token %v: %w", a.tokenID, err)
		}
	}
	if a.resource != "" {
		basic, err := a.basicCredentials(ctx)
		if err != nil {
			return nil, err
		}
		return &accessData{value: basic, kind: token.Basic}, nil
	}
	return nil, nil
}

// basicCredentials loads and caches base64(user:password) from the secret resource
func (a *AccessToken) basicCredentials(ctx context.Context) (string, error) {
	a.mux.RLock()
	basic := a.basic
	a.mux.RUnlock()
	if basic != "" {
		return basic, nil
	}
	cred, err := secret.New().GetCredentials(ctx, string(a.resource))
	if err != nil {
		return "", fmt.Errorf("failed to load credentials %v: %w", a.resource, err)
	}
	basic = base64.StdEncoding.EncodeToString([]byte(cred.Username + ":" + cred.Password))
	a.mux.Lock()
	a.basic = basic
	a.mux.Unlock()
	return basic, nil
}

// NewAccessToken creates an access token interceptor
func NewAccessToken(options ...AccessTokenOption) *AccessToken {
	ret := &AccessToken{}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
