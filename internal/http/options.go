package http

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/netdevops-io/go-fmc/pkg/fmc"
)

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the structured logger used by the client.
func WithLogger(logger fmc.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response debug logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig tunes the transport retry policy.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryMax = retryMax
		c.retryWaitMin = waitMin
		c.retryWaitMax = waitMax
	}
}

// WithLimiter shares an external rate limiter instead of the client-owned
// one.
func WithLimiter(limiter *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = limiter
	}
}

// WithInterceptors installs an interceptor chain evaluated around every
// call.
func WithInterceptors(chain *fmc.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// WithBaseURLs overrides the platform and configuration API bases derived
// from the configured host. Intended for tests against local servers.
func WithBaseURLs(platformURL, configURL string) Option {
	return func(c *Client) {
		c.platformURL = platformURL
		c.configURL = configURL
	}
}
