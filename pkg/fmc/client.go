package fmc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/netdevops-io/go-fmc/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired   = errors.New("configuration is required")
	ErrHostRequired     = errors.New("FMC host is required")
	ErrUsernameRequired = errors.New("FMC username is required")
	ErrPasswordRequired = errors.New("FMC password is required")
)

// RawClient exposes the four verb operations and the multi-page fetch that
// every resource client is built on. Endpoints are relative to the
// domain-scoped configuration base, e.g. "object/hosts".
type RawClient interface {
	Get(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error)
	Post(ctx context.Context, endpoint string, body interface{}) (json.RawMessage, error)
	Put(ctx context.Context, endpoint string, body interface{}) (json.RawMessage, error)
	Delete(ctx context.Context, endpoint string) error
	GetAllPages(ctx context.Context, endpoint string, params url.Values) ([]json.RawMessage, error)
}

/// SessionClient exposes explicit session control for scoped use:
// Authenticate on entry, Logout (deferred) on exit. Authentication also
// happens lazily on the first authenticated call, so calling Authenticate
// up front is optional.
type SessionClient interface {
	Authenticate(ctx context.Context) error
	Logout(ctx context.Context)
}

// ResourceClients provides access to the resource-specific clients.
type ResourceClients interface {
	NetworkObjects() NetworkObjectsClient
	AccessPolicies() AccessPoliciesClient
	Devices() DevicesClient
}

// SystemClient provides access to FMC system information endpoints.
type SystemClient interface {
	GetServerVersion(ctx context.Context) (*ServerVersion, error)
}

// Client is the full FMC API client surface.
type Client interface {
	RawClient
	SessionClient
	ResourceClients
	SystemClient
}

// NetworkObjectsClient manages network objects (hosts, networks, ranges).
type NetworkObjectsClient interface {
	Create(ctx context.Context, kind ObjectKind, request *NetworkObjectCreateRequest) (*NetworkObject, error)
	Get(ctx context.Context, kind ObjectKind, guid string) (*NetworkObject, error)
	Update(ctx context.Context, kind ObjectKind, guid string, request *NetworkObjectUpdateRequest) (*NetworkObject, error)
	Delete(ctx context.Context, kind ObjectKind, guid string) error
	List(ctx context.Context, kind ObjectKind, params *QueryParams) (*ListResponse[NetworkObject], error)
	ListAll(ctx context.Context, kind ObjectKind) ([]NetworkObject, error)
	FindByName(ctx context.Context, kind ObjectKind, name string) (*NetworkObject, error)
}

// AccessPoliciesClient manages access control policies and their rules.
type AccessPoliciesClient interface {
	Create(ctx context.Context, request *AccessPolicyCreateRequest) (*AccessPolicy, error)
	Get(ctx context.Context, guid string) (*AccessPolicy, error)
	Delete(ctx context.Context, guid string) error
	List(ctx context.Context, params *QueryParams) (*ListResponse[AccessPolicy], error)
	ListAll(ctx context.Context) ([]AccessPolicy, error)
	FindByName(ctx context.Context, name string) (*AccessPolicy, error)

	CreateRule(ctx context.Context, policyGUID string, request *AccessRuleRequest) (*AccessRule, error)
	GetRule(ctx context.Context, policyGUID, ruleGUID string) (*AccessRule, error)
	UpdateRule(ctx context.Context, policyGUID, ruleGUID string, rule *AccessRule) (*AccessRule, error)
	DeleteRule(ctx context.Context, policyGUID, ruleGUID string) error
	ListAllRules(ctx context.Context, policyGUID string) ([]AccessRule, error)

	NormalizeRuleLogging(ctx context.Context, policyGUID string) (*RuleLoggingSummary, error)
}

// DevicesClient manages managed devices and configuration deployment.
type DevicesClient interface {
	Get(ctx context.Context, guid string) (*Device, error)
	List(ctx context.Context, params *QueryParams) (*ListResponse[Device], error)
	ListAll(ctx context.Context) ([]Device, error)
	ListDeployable(ctx context.Context) ([]DeployableDevice, error)
	Deploy(ctx context.Context, request *DeploymentRequest) (*DeploymentResponse, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a fmc.Client.
//
// Host, Username, and Password are required; Validate reports a
// configuration error before any network call is attempted. Everything else
// has a sensible default.
type Config struct {
	// Host is the FMC hostname or IP, without scheme (e.g. "fmc.example.com").
	Host string
	// Username for the API user account.
	Username string
	// Password for the API user account.
	Password string

	// VerifySSL controls TLS certificate verification. Disable only in lab
	// environments.
	VerifySSL bool
	// CACert is an optional path to a CA bundle used instead of the system
	// pool when VerifySSL is enabled.
	CACert string

	// RequestTimeout applies to every API call. Defaults to 30s.
	RequestTimeout time.Duration
	// MaxRequestsPerMinute caps the call rate. Defaults to 100.
	MaxRequestsPerMinute int
	// Limiter optionally shares a rate limiter across client instances.
	// When nil, the client owns a limiter built from MaxRequestsPerMinute.
	Limiter *rate.Limiter

	// RetryMax is the number of retries after the initial attempt for
	// transport-level failures. Defaults to 2 (three attempts total).
	RetryMax int
	// RetryWaitMin is the initial backoff before a retry. Defaults to 2s.
	RetryWaitMin time.Duration
	// RetryWaitMax caps the backoff. Defaults to 10s.
	RetryWaitMax time.Duration

	// Debug enables verbose request/response logging when a Logger is set.
	Debug bool
	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}

// Validate checks that the required credentials are present.
func (c *Config) Validate() error {
	if c.Host == "" {
		return ErrHostRequired
	}

	if c.Username == "" {
		return ErrUsernameRequired
	}

	if c.Password == "" {
		return ErrPasswordRequired
	}

	return nil
}

// PlatformURL returns the platform API base for the configured host.
func (c *Config) PlatformURL() string {
	return fmt.Sprintf("https://%s%s", c.Host, constants.PlatformBasePath)
}

// ConfigURL returns the configuration API base for the configured host.
func (c *Config) ConfigURL() string {
	return fmt.Sprintf("https://%s%s", c.Host, constants.ConfigBasePath)
}
