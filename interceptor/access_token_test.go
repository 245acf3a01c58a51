package interceptor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/baseclient"
	"github.com/viant/baseclient/interceptor/token"
	"github.com/viant/baseclient/transport"
)

type failingStore struct{ token.Store }

func (failingStore) Get(context.Context, string) (*token.Token, error) {
	return nil, errors.New("connection refused")
}

func TestAccessToken_OnIntercept(t *testing.T) {
	ctx := context.Background()
	store := token.NewMemoryStore(0)
	stored := token.NewToken("user-1", "from-store", token.Bearer)
	require.NoError(t, store.Put(ctx, stored))

	var testCases = []struct {
		description string
		build       func() *AccessToken
		expect      string
		expectErr   bool
	}{
		{
			description: "no token",
			build:       func() *AccessToken { return NewAccessToken() },
		},
		{
			description: "bearer",
			build: func() *AccessToken {
				ret := NewAccessToken()
				ret.SetAccessData("abc", token.Bearer)
				return ret
			},
			expect: "Bearer abc",
		},
		{
			description: "basic",
			build: func() *AccessToken {
				ret := NewAccessToken()
				ret.SetAccessData("dXNlcjpwd2Q=", token.Basic)
				return ret
			},
			expect: "Basic dXNlcjpwd2Q=",
		},
		{
			description: "store",
			build:       func() *AccessToken { return NewAccessToken(WithTokenStore(store, stored.ID)) },
			expect:      "Bearer from-store",
		},
		{
			description: "explicit token takes precedence over store",
			build: func() *AccessToken {
				ret := NewAccessToken(WithTokenStore(store, stored.ID))
				ret.SetAccessData("explicit", "")
				return ret
			},
			expect: "Bearer explicit",
		},
		{
			description: "missing store entry",
			build:       func() *AccessToken { return NewAccessToken(WithTokenStore(store, "unknown")) },
		},
		{
			description: "store failure",
			build:       func() *AccessToken { return NewAccessToken(WithTokenStore(failingStore{}, "id")) },
			expectErr:   true,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			cortege := transport.NewCortege("/", baseclient.MethodPost, nil, nil, nil, nil)
			actual, err := testCase.build().OnIntercept(ctx, cortege)
			if testCase.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expect, actual.Headers.Get(baseclient.HeaderAuthorization))
		})
	}
}

func TestAccessToken_SetAccessData(t *testing.T) {
	srv := NewAccessToken()
	value, kind := srv.AccessToken()
	assert.Empty(t, value)
	assert.Empty(t, kind)

	srv.SetAccessData("abc", "")
	value, kind = srv.AccessToken()
	assert.Equal(t, "abc", value)
	assert.Equal(t, token.Bearer, kind)

	srv.SetAccessData("", token.Bearer)
	value, _ = srv.AccessToken()
	assert.Empty(t, value)
}
