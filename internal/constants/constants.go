package constants

import "time"

// Session lifetime policy.
const (
	// SessionLifetime is how long FMC access tokens stay valid after issue.
	SessionLifetime = 30 * time.Minute

	// RefreshMargin is the safety window before expiry inside which the
	// session is refreshed rather than reused.
	RefreshMargin = 60 * time.Second
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for API requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the number of retries after the initial attempt.
	DefaultRetryMax = 2

	// DefaultRetryWaitMin is the initial backoff before a retry.
	DefaultRetryWaitMin = 2 * time.Second

	// DefaultRetryWaitMax caps the backoff between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Rate limiting.
const (
	// DefaultMaxRequestsPerMinute is the FMC API request ceiling.
	DefaultMaxRequestsPerMinute = 100
)

// Pagination.
const (
	// PageSize is the fixed number of items fetched per page.
	PageSize = 100
)

// API path segments.
const (
	// PlatformBasePath is the platform API prefix on the FMC host.
	PlatformBasePath = "/api/fmc_platform/v1"

	// ConfigBasePath is the configuration API prefix on the FMC host.
	ConfigBasePath = "/api/fmc_config/v1"
)

// Authentication headers used by the token endpoints.
const (
	// AccessTokenHeader carries the access token on every call.
	AccessTokenHeader = "X-auth-access-token"

	// RefreshTokenHeader carries the refresh token on refresh calls.
	RefreshTokenHeader = "X-auth-refresh-token"

	// DomainUUIDHeader carries the domain identifier returned at login.
	DomainUUIDHeader = "DOMAIN_UUID"
)
