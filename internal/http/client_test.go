package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/netdevops-io/go-fmc/internal/constants"
	"github.com/netdevops-io/go-fmc/pkg/fmc"
)

const testDomainUUID = "e276abec-e0f2-11e3-8169-6d9ed49b625f"

// authStub answers the token endpoints so pipeline tests only need to
// describe their config API behavior. It returns true when it handled the
// request.
func authStub(w http.ResponseWriter, r *http.Request) bool {
	switch r.URL.Path {
	case "/auth/generatetoken":
		w.Header().Set(constants.AccessTokenHeader, "test-access-token")
		w.Header().Set(constants.RefreshTokenHeader, "test-refresh-token")
		w.Header().Set(constants.DomainUUIDHeader, testDomainUUID)
		w.WriteHeader(http.StatusNoContent)

		return true
	case "/auth/revokeaccess":
		w.WriteHeader(http.StatusNoContent)

		return true
	default:
		return false
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if authStub(w, r) {
			return
		}

		handler(w, r)
	}))
	t.Cleanup(server.Close)

	config := &fmc.Config{
		Host:     "fmc.example.com",
		Username: "api-user",
		Password: "secret",
	}

	opts = append([]Option{WithBaseURLs(server.URL, server.URL)}, opts...)

	client, err := NewClient(config, opts...)
	require.NoError(t, err)

	return client, server
}

func TestNewClientValidatesConfig(t *testing.T) {
	_, err := NewClient(&fmc.Config{Username: "u", Password: "p"})
	require.Error(t, err)
	assert.ErrorIs(t, err, fmc.ErrHostRequired)

	_, err = NewClient(&fmc.Config{Host: "fmc.example.com", Password: "p"})
	assert.ErrorIs(t, err, fmc.ErrUsernameRequired)

	_, err = NewClient(&fmc.Config{Host: "fmc.example.com", Username: "u"})
	assert.ErrorIs(t, err, fmc.ErrPasswordRequired)
}

func TestClientGet(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/domain/"+testDomainUUID+"/object/hosts", r.URL.Path)
		assert.Equal(t, "test-access-token", r.Header.Get(constants.AccessTokenHeader))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "true", r.URL.Query().Get("expanded"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"name":"h1"}]}`))
	})

	query := url.Values{}
	query.Set("expanded", "true")

	resp, err := client.Get(context.Background(), "object/hosts", query)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"items":[{"name":"h1"}]}`, string(resp.Body))
}

func TestClientPostEncodesBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "web-01", body["name"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"abc","name":"web-01"}`))
	})

	resp, err := client.Post(context.Background(), "object/hosts", map[string]string{"name": "web-01"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestClientRejectionBecomesResponseError(t *testing.T) {
	var configCalls atomic.Int32

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		configCalls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"category":"FRAMEWORK","messages":[{"description":"no such object"}],"severity":"ERROR"}}`))
	})

	resp, err := client.Get(context.Background(), "object/hosts/missing", nil)
	require.Error(t, err)

	respErr := &fmc.ResponseError{}
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, http.StatusNotFound, respErr.StatusCode)
	assert.Contains(t, respErr.Messages(), "no such object")
	assert.True(t, fmc.IsNotFound(err))

	// The rejected response is still surfaced alongside the error.
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Rejections are terminal: exactly one attempt reached the server.
	assert.Equal(t, int32(1), configCalls.Load())
}

func TestClientRetriesTransportFailures(t *testing.T) {
	var attempts atomic.Int32

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)

			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			_ = conn.Close()

			return
		}

		_, _ = w.Write([]byte(`{}`))
	}, WithRetryConfig(2, time.Millisecond, 5*time.Millisecond))

	resp, err := client.Get(context.Background(), "object/hosts", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestClientTransportFailurePropagatesAfterRetries(t *testing.T) {
	var attempts atomic.Int32

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)

		hj, ok := w.(http.Hijacker)
		require.True(t, ok)

		conn, _, err := hj.Hijack()
		require.NoError(t, err)
		_ = conn.Close()
	}, WithRetryConfig(2, time.Millisecond, 5*time.Millisecond))

	_, err := client.Get(context.Background(), "object/hosts", nil)
	require.Error(t, err)

	respErr := &fmc.ResponseError{}
	assert.False(t, errors.As(err, &respErr))
	// Initial attempt plus two retries, at minimum; the transport may add
	// its own replay when a reused connection dies.
	assert.GreaterOrEqual(t, attempts.Load(), int32(3))
}

func TestClientRateLimiterSpacesCalls(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}, WithLimiter(rate.NewLimiter(rate.Every(40*time.Millisecond), 1)))

	start := time.Now()

	for i := 0; i < 3; i++ {
		_, err := client.Get(context.Background(), "object/hosts", nil)
		require.NoError(t, err)
	}

	// Three calls through a burst-1 limiter take at least two intervals.
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestClientAuthenticatesLazilyOnce(t *testing.T) {
	var logins atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/generatetoken" {
			logins.Add(1)
		}

		if authStub(w, r) {
			return
		}

		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	config := &fmc.Config{
		Host:     "fmc.example.com",
		Username: "api-user",
		Password: "secret",
	}

	client, err := NewClient(config, WithBaseURLs(server.URL, server.URL))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := client.Get(context.Background(), "object/hosts", nil)
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), logins.Load())
}

func TestClientRequestInterceptors(t *testing.T) {
	chain := fmc.NewInterceptorChain()
	chain.AddRequestInterceptor(fmc.HeaderInterceptor(map[string]string{"X-Trace": "abc"}))

	var seenTrace atomic.Value

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seenTrace.Store(r.Header.Get("X-Trace"))
		_, _ = w.Write([]byte(`{}`))
	}, WithInterceptors(chain))

	_, err := client.Get(context.Background(), "object/hosts", nil)
	require.NoError(t, err)
	assert.Equal(t, "abc", seenTrace.Load())
}
