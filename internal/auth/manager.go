package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/netdevops-io/go-fmc/internal/constants"
	"github.com/netdevops-io/go-fmc/pkg/fmc"
)

// Static errors for err113 compliance.
var (
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrRefreshFailed        = errors.New("token refresh failed")
	ErrNoSession            = errors.New("no active session")
)

// Config configures a session Manager.
type Config struct {
	// PlatformURL is the platform API base, e.g.
	// "https://fmc.example.com/api/fmc_platform/v1".
	PlatformURL string
	// Username and Password are exchanged for tokens at login.
	Username string
	Password string
	// Limiter, when set, paces token calls on the same budget as the verb
	// calls.
	Limiter *rate.Limiter
	// Logger is optional.
	Logger fmc.Logger
}

// Manager owns the single live session of a client instance. Every
// authenticated call goes through EnsureValid first, which is the sole gate
// against token-expiry races: it logs in when no session exists and
// refreshes when expiry is near.
type Manager struct {
	config     *Config
	httpClient *nethttp.Client
	store      *SessionStore
	logger     fmc.Logger

	// serializes the authenticate/refresh transitions so concurrent callers
	// do not race to replace the session
	mu chan struct{}
}

// NewManager creates a session manager that performs its token calls over
// httpClient (shared with the request executor so the connection is reused).
func NewManager(config *Config, httpClient *nethttp.Client) *Manager {
	logger := config.Logger
	if logger == nil {
		logger = fmc.NoopLogger()
	}

	manager := &Manager{
		config:     config,
		httpClient: httpClient,
		store:      NewSessionStore(),
		logger:     logger,
		mu:         make(chan struct{}, 1),
	}
	manager.mu <- struct{}{}

	return manager
}

// Session returns the current session, or nil when absent.
func (m *Manager) Session() *Session {
	return m.store.Get()
}

// AccessToken returns the current access token, or "" when absent.
func (m *Manager) AccessToken() string {
	if session := m.store.Get(); session != nil {
		return session.AccessToken
	}

	return ""
}

// DomainUUID returns the domain identifier from the current session, or ""
// when absent.
func (m *Manager) DomainUUID() string {
	if session := m.store.Get(); session != nil {
		return session.DomainUUID
	}

	return ""
}

// Authenticate exchanges the configured credentials for a fresh session.
// On any failure the session is left absent and an error describing the
// rejection is returned; the caller decides whether to abort.
func (m *Manager) Authenticate(ctx context.Context) error {
	if err := m.acquire(ctx); err != nil {
		return err
	}
	defer m.release()

	return m.authenticate(ctx)
}

// Refresh exchanges the current refresh token for a renewed token pair. Any
// refresh failure falls back to a full re-login; the refresh error is only
// surfaced (joined) when the fallback fails too.
func (m *Manager) Refresh(ctx context.Context) error {
	if err := m.acquire(ctx); err != nil {
		return err
	}
	defer m.release()

	return m.refresh(ctx)
}

// EnsureValid guarantees a usable token before an authenticated call: it
// authenticates when no session exists, refreshes when expiry is within the
// safety margin, and otherwise does nothing.
func (m *Manager) EnsureValid(ctx context.Context) error {
	if err := m.acquire(ctx); err != nil {
		return err
	}
	defer m.release()

	session := m.store.Get()

	switch {
	case !session.Active():
		return m.authenticate(ctx)
	case session.ExpiringSoon(constants.RefreshMargin):
		return m.refresh(ctx)
	default:
		return nil
	}
}

// Logout revokes the current token server-side (best effort) and clears the
// session unconditionally. Safe to call repeatedly.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.acquire(ctx); err != nil {
		return
	}
	defer m.release()

	session := m.store.Get()
	if session == nil {
		return
	}

	m.logger.Info("logging out", nil)

	if err := m.wait(ctx); err != nil {
		m.store.Clear()

		return
	}

	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodPost, m.config.PlatformURL+"/auth/revokeaccess", nil)
	if err == nil {
		req.Header.Set(constants.AccessTokenHeader, session.AccessToken)

		resp, doErr := m.httpClient.Do(req)
		if doErr != nil {
			m.logger.Error("error during logout", map[string]interface{}{"error": doErr.Error()})
		} else {
			drainAndClose(resp)

			if resp.StatusCode == nethttp.StatusNoContent {
				m.logger.Info("logout successful", nil)
			}
		}
	}

	m.store.Clear()
}

// wait paces a token call on the shared request budget, when one is set.
func (m *Manager) wait(ctx context.Context) error {
	if m.config.Limiter == nil {
		return nil
	}

	if err := m.config.Limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for rate limiter: %w", err)
	}

	return nil
}

func (m *Manager) authenticate(ctx context.Context) error {
	if err := m.wait(ctx); err != nil {
		return err
	}

	m.logger.Info("authenticating", map[string]interface{}{"url": m.config.PlatformURL})

	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodPost, m.config.PlatformURL+"/auth/generatetoken", nil)
	if err != nil {
		return fmt.Errorf("building login request: %w", err)
	}

	req.SetBasicAuth(m.config.Username, m.config.Password)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		m.store.Clear()

		return fmt.Errorf("connection error during authentication: %w", err)
	}
	defer drainAndClose(resp)

	if resp.StatusCode != nethttp.StatusNoContent {
		m.store.Clear()
		m.logger.Error("authentication rejected", map[string]interface{}{"status": resp.StatusCode})

		return fmt.Errorf("%w: status %d", ErrAuthenticationFailed, resp.StatusCode)
	}

	session := &Session{
		AccessToken:  resp.Header.Get(constants.AccessTokenHeader),
		RefreshToken: resp.Header.Get(constants.RefreshTokenHeader),
		DomainUUID:   resp.Header.Get(constants.DomainUUIDHeader),
		ExpiresAt:    time.Now().Add(constants.SessionLifetime),
	}

	if session.AccessToken == "" {
		m.store.Clear()

		return fmt.Errorf("%w: missing token headers", ErrAuthenticationFailed)
	}

	m.store.Set(session)
	m.logger.Info("authentication successful", map[string]interface{}{"domain": session.DomainUUID})

	return nil
}

func (m *Manager) refresh(ctx context.Context) error {
	session := m.store.Get()
	if session == nil {
		return m.authenticate(ctx)
	}

	m.logger.Info("refreshing session token", nil)

	refreshErr := m.doRefresh(ctx, session)
	if refreshErr == nil {
		return nil
	}

	// Refresh failure is recoverable by a full re-login; only if that also
	// fails do we report both causes.
	m.logger.Warn("token refresh failed, re-authenticating", map[string]interface{}{"error": refreshErr.Error()})

	authErr := m.authenticate(ctx)
	if authErr != nil {
		return errors.Join(refreshErr, authErr)
	}

	return nil
}

func (m *Manager) doRefresh(ctx context.Context, session *Session) error {
	if err := m.wait(ctx); err != nil {
		return err
	}

	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodPost, m.config.PlatformURL+"/auth/refreshtoken", nil)
	if err != nil {
		return fmt.Errorf("building refresh request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(constants.AccessTokenHeader, session.AccessToken)
	req.Header.Set(constants.RefreshTokenHeader, session.RefreshToken)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connection error during refresh: %w", err)
	}
	defer drainAndClose(resp)

	if resp.StatusCode != nethttp.StatusNoContent {
		return fmt.Errorf("%w: status %d", ErrRefreshFailed, resp.StatusCode)
	}

	renewed := &Session{
		AccessToken:  resp.Header.Get(constants.AccessTokenHeader),
		RefreshToken: resp.Header.Get(constants.RefreshTokenHeader),
		DomainUUID:   session.DomainUUID,
		ExpiresAt:    time.Now().Add(constants.SessionLifetime),
	}

	if renewed.AccessToken == "" {
		return fmt.Errorf("%w: missing token headers", ErrRefreshFailed)
	}

	m.store.Set(renewed)
	m.logger.Info("token refresh successful", nil)

	return nil
}

func (m *Manager) acquire(ctx context.Context) error {
	select {
	case <-m.mu:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for session lock: %w", ctx.Err())
	}
}

func (m *Manager) release() {
	m.mu <- struct{}{}
}

func drainAndClose(resp *nethttp.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
