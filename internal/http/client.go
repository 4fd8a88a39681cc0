// Package http implements the authenticated request pipeline every verb
// call flows through: rate limit, session validation, transport retry, and
// response normalization.
package http

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/netdevops-io/go-fmc/internal/auth"
	"github.com/netdevops-io/go-fmc/internal/constants"
	"github.com/netdevops-io/go-fmc/internal/ratelimit"
	"github.com/netdevops-io/go-fmc/pkg/fmc"
)

// Static errors for err113 compliance.
var (
	ErrNoCertsParsed = errors.New("no certificates parsed from CA bundle")
)

// Request represents an API request relative to the domain-scoped
// configuration base.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response represents a normalized API response.
type Response struct {
	StatusCode int
	Headers    nethttp.Header
	Body       []byte
}

// Client is the single choke point for authenticated FMC calls. Every call
// waits for the rate limiter, ensures the session is valid, executes under
// the transport retry policy, and normalizes the outcome: non-success
// statuses come back as *fmc.ResponseError values, while transport failures
// that survive retry are the only hard errors.
type Client struct {
	platformURL string
	configURL   string

	sessions    *auth.Manager
	retryClient *retryablehttp.Client
	limiter     *rate.Limiter

	logger       fmc.Logger
	debug        bool
	userAgent    string
	interceptors *fmc.InterceptorChain

	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
}

// NewClient builds the request pipeline for the given configuration.
func NewClient(config *fmc.Config, opts ...Option) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client := &Client{
		platformURL:  config.PlatformURL(),
		configURL:    config.ConfigURL(),
		logger:       config.Logger,
		debug:        config.Debug,
		userAgent:    config.UserAgent,
		limiter:      config.Limiter,
		retryMax:     constants.DefaultRetryMax,
		retryWaitMin: constants.DefaultRetryWaitMin,
		retryWaitMax: constants.DefaultRetryWaitMax,
	}

	if config.RetryMax > 0 {
		client.retryMax = config.RetryMax
	}

	if config.RetryWaitMin > 0 {
		client.retryWaitMin = config.RetryWaitMin
	}

	if config.RetryWaitMax > 0 {
		client.retryWaitMax = config.RetryWaitMax
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.logger == nil {
		client.logger = fmc.NoopLogger()
	}

	if client.limiter == nil {
		maxPerMinute := config.MaxRequestsPerMinute
		if maxPerMinute <= 0 {
			maxPerMinute = constants.DefaultMaxRequestsPerMinute
		}

		client.limiter = ratelimit.NewLimiter(maxPerMinute)
	}

	transport, err := buildTransport(config)
	if err != nil {
		return nil, err
	}

	timeout := config.RequestTimeout
	if timeout <= 0 {
		timeout = constants.DefaultHTTPTimeout
	}

	// One reusable connection handle shared by the session manager and the
	// verb pipeline.
	baseClient := &nethttp.Client{
		Timeout:   timeout,
		Transport: transport,
	}

	client.sessions = auth.NewManager(&auth.Config{
		PlatformURL: client.platformURL,
		Username:    config.Username,
		Password:    config.Password,
		Logger:      client.logger,
		Limiter:     client.limiter,
	}, baseClient)

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = baseClient
	retryClient.RetryMax = client.retryMax
	retryClient.RetryWaitMin = client.retryWaitMin
	retryClient.RetryWaitMax = client.retryWaitMax
	retryClient.CheckRetry = transportRetryPolicy
	retryClient.Logger = nil
	client.retryClient = retryClient

	return client, nil
}

// Sessions returns the session manager owned by this client.
func (c *Client) Sessions() *auth.Manager {
	return c.sessions
}

// transportRetryPolicy retries only failures raised by the transport itself
// (connection reset, timeout, DNS). Any HTTP response, whatever its status,
// is terminal for the retry layer: application-level rejections are never
// retried since a semantically rejected request can duplicate side effects.
func transportRetryPolicy(ctx context.Context, resp *nethttp.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		return true, nil
	}

	return false, nil
}

// Do executes one authenticated call through the full pipeline.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	// Rate limit first: the caller is delayed, never rejected.
	err := c.limiter.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	err = c.sessions.EnsureValid(ctx)
	if err != nil {
		return nil, fmt.Errorf("ensuring session: %w", err)
	}

	fullURL := c.buildURL(req)

	if c.debug {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpReq, err := c.buildHTTPRequest(ctx, req, fullURL)
	if err != nil {
		return nil, err
	}

	interceptReq := &fmc.Request{
		Method:  req.Method,
		URL:     fullURL,
		Headers: httpReq.Header,
	}

	if c.interceptors != nil {
		err = c.interceptors.ExecuteRequestInterceptors(ctx, interceptReq)
		if err != nil {
			return nil, err
		}
	}

	httpResp, err := c.retryClient.Do(httpReq)
	if err != nil {
		// The only hard-failure path: a transport error that survived the
		// retry policy.
		c.runResponseInterceptors(ctx, interceptReq, &fmc.Response{Error: err})

		return nil, fmt.Errorf("%s %s: %w", req.Method, fullURL, err)
	}

	defer func() {
		_, _ = io.Copy(io.Discard, httpResp.Body)
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if c.debug {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         fullURL,
			"status_code": resp.StatusCode,
		})
	}

	if !isSuccess(resp.StatusCode) {
		respErr := fmc.ParseResponseError(resp.StatusCode, body)
		c.logger.Error("request failed", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
			"status": resp.StatusCode,
			"errors": respErr.Messages(),
		})
		c.runResponseInterceptors(ctx, interceptReq, &fmc.Response{
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers,
			Body:       body,
			Error:      respErr,
		})

		return resp, respErr
	}

	c.runResponseInterceptors(ctx, interceptReq, &fmc.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       body,
	})

	return resp, nil
}

// Get performs a GET request against a domain-scoped endpoint.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodGet, Path: path, Query: query})
}

// Post performs a POST request against a domain-scoped endpoint.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request against a domain-scoped endpoint.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodPut, Path: path, Body: body})
}

// Delete performs a DELETE request against a domain-scoped endpoint.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: nethttp.MethodDelete, Path: path})
}

func (c *Client) buildURL(req *Request) string {
	endpoint := strings.TrimPrefix(req.Path, "/")
	fullURL := fmt.Sprintf("%s/domain/%s/%s", c.configURL, c.sessions.DomainUUID(), endpoint)

	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	return fullURL
}

func (c *Client) buildHTTPRequest(ctx context.Context, req *Request, fullURL string) (*retryablehttp.Request, error) {
	var rawBody interface{}

	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		rawBody = encoded
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(constants.AccessTokenHeader, c.sessions.AccessToken())

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	return httpReq, nil
}

func (c *Client) runResponseInterceptors(ctx context.Context, req *fmc.Request, resp *fmc.Response) {
	if c.interceptors == nil {
		return
	}

	err := c.interceptors.ExecuteResponseInterceptors(ctx, req, resp)
	if err != nil {
		c.logger.Warn("response interceptor failed", map[string]interface{}{"error": err.Error()})
	}
}

func isSuccess(statusCode int) bool {
	switch statusCode {
	case nethttp.StatusOK, nethttp.StatusCreated, nethttp.StatusAccepted, nethttp.StatusNoContent:
		return true
	default:
		return false
	}
}

func buildTransport(config *fmc.Config) (*nethttp.Transport, error) {
	transport, ok := nethttp.DefaultTransport.(*nethttp.Transport)
	if !ok {
		transport = &nethttp.Transport{}
	}

	transport = transport.Clone()

	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}

	if !config.VerifySSL {
		// Lab use only; the FMC ships with a self-signed certificate.
		tlsConfig.InsecureSkipVerify = true
	} else if config.CACert != "" {
		pem, err := os.ReadFile(config.CACert)
		if err != nil {
			return nil, fmt.Errorf("reading CA bundle: %w", err)
		}

		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("%w: %s", ErrNoCertsParsed, config.CACert)
		}

		tlsConfig.RootCAs = pool
	}

	transport.TLSClientConfig = tlsConfig

	return transport, nil
}
