package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbo-tools/dadismatch/pkg/errors"
)

func TestClientGet(t *testing.T) {
	var gotAuth, gotAccept, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`{"response":[1,2,3]}`))
	}))
	defer server.Close()

	c := New(&HeaderAuth{}, WithUserAgent("dadismatch/test"), WithRateLimit(0, 0))
	resp, err := c.Get(context.Background(), server.URL+"/species", "secret")
	require.NoError(t, err)

	var out struct {
		Response []int `json:"response"`
	}
	require.NoError(t, DecodeResponse(resp, "dadis", &out))

	assert.Equal(t, []int{1, 2, 3}, out.Response)
	assert.Equal(t, "secret", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "dadismatch/test", gotUA)
}

func TestClientGetNoKey(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	resp, err := New(&HeaderAuth{}).Get(context.Background(), server.URL, "")
	require.NoError(t, err)
	require.NoError(t, DecodeResponse(resp, "dadis", &struct{}{}))
	assert.Empty(t, gotAuth)
}

func TestWithTimeout(t *testing.T) {
	t.Run("default client", func(t *testing.T) {
		c := New(&HeaderAuth{}, WithTimeout(2*time.Second))
		assert.Equal(t, 2*time.Second, c.http.Timeout)
	})

	t.Run("caller client is copied", func(t *testing.T) {
		hc := &http.Client{Timeout: time.Minute}
		c := New(&HeaderAuth{}, WithHTTPClient(hc), WithTimeout(time.Second))
		assert.Equal(t, time.Second, c.http.Timeout)
		assert.Equal(t, time.Minute, hc.Timeout)
	})

	t.Run("zero keeps default", func(t *testing.T) {
		c := New(&HeaderAuth{}, WithTimeout(0))
		assert.Equal(t, DefaultHTTPTimeout, c.http.Timeout)
	})
}

func TestClientRateLimitCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil, WithRateLimit(1, 1)).Get(ctx, server.URL, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecodeResponseErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		checkFn func(t *testing.T, err error)
	}{
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			body:   "bad key",
			checkFn: func(t *testing.T, err error) {
				assert.True(t, errors.IsAPIKeyError(err))
				var apiErr *errors.APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "dadis", apiErr.Registry)
				assert.Equal(t, "bad key", apiErr.Message)
				assert.Equal(t, "/species", apiErr.Endpoint)
			},
		},
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			checkFn: func(t *testing.T, err error) {
				assert.True(t, errors.IsRateLimited(err))
				assert.Contains(t, err.Error(), "Too Many Requests")
			},
		},
		{
			name:   "server error",
			status: http.StatusBadGateway,
			body:   strings.Repeat("x", 2000),
			checkFn: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, errors.ErrRegistryUnavailable)
				var apiErr *errors.APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Len(t, apiErr.Message, maxErrorBody+3)
			},
		},
		{
			name:   "malformed json",
			status: http.StatusOK,
			body:   `{"response": [`,
			checkFn: func(t *testing.T, err error) {
				var parseErr *errors.ParseError
				require.ErrorAs(t, err, &parseErr)
				assert.Equal(t, "json", parseErr.Format)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			resp, err := New(nil, WithRateLimit(0, 0)).Get(context.Background(), server.URL+"/species", "")
			require.NoError(t, err)

			var out map[string]any
			err = DecodeResponse(resp, "dadis", &out)
			require.Error(t, err)
			tt.checkFn(t, err)
		})
	}
}
