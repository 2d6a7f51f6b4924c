package homebox

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/osse101/HomeboxBridge_Go/internal/logger"
	"github.com/osse101/HomeboxBridge_Go/internal/metrics"
)

// Config holds the connection settings for one inventory server.
type Config struct {
	BaseURL   string
	Username  string
	Password  string
	UseHTTPS  bool
	VerifySSL bool

	// Timeout bounds every HTTP call. Zero means DefaultRequestTimeout.
	Timeout time.Duration

	// TokenLifetime is assumed when the server reports no usable expiry.
	// Zero means DefaultTokenLifetime.
	TokenLifetime time.Duration
}

// Client owns the session with one inventory server and issues
// authenticated requests on its behalf.
type Client struct {
	baseURL       string
	username      string
	password      string
	tokenLifetime time.Duration
	httpClient    *http.Client
	now           func() time.Time

	// authMu serializes logins so concurrent callers never race to re-authenticate.
	authMu sync.Mutex

	mu            sync.RWMutex
	token         string
	tokenExpiry   time.Time
	lastRefresh   time.Time
	authenticated bool
}

// SessionInfo is a read-only view of the session for status reporting.
type SessionInfo struct {
	Authenticated bool      `json:"authenticated"`
	TokenExpiry   time.Time `json:"token_expiry,omitempty"`
	LastRefresh   time.Time `json:"last_refresh,omitempty"`
}

// NewClient creates an unauthenticated client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	lifetime := cfg.TokenLifetime
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !cfg.VerifySSL {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // user opted out of verification
	}

	return &Client{
		baseURL:       NormalizeBaseURL(cfg.BaseURL, cfg.UseHTTPS),
		username:      cfg.Username,
		password:      cfg.Password,
		tokenLifetime: lifetime,
		httpClient:    &http.Client{Timeout: timeout, Transport: transport},
		now:           time.Now,
	}
}

// NormalizeBaseURL trims trailing slashes and adds a scheme when missing.
func NormalizeBaseURL(raw string, useHTTPS bool) string {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	if strings.HasPrefix(base, SchemeHTTP) || strings.HasPrefix(base, SchemeHTTPS) {
		return base
	}
	if useHTTPS {
		return SchemeHTTPS + base
	}
	return SchemeHTTP + base
}

// BaseURL returns the normalized server URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Session returns a snapshot of the session state.
func (c *Client) Session() SessionInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return SessionInfo{
		Authenticated: c.authenticated,
		TokenExpiry:   c.tokenExpiry,
		LastRefresh:   c.lastRefresh,
	}
}

// Authenticate logs in and replaces the session token. It returns false on
// any failure and leaves the session unauthenticated.
func (c *Client) Authenticate(ctx context.Context) bool {
	c.authMu.Lock()
	defer c.authMu.Unlock()
	return c.authenticate(ctx)
}

// TestConnection verifies the credentials by logging in.
func (c *Client) TestConnection(ctx context.Context) bool {
	return c.Authenticate(ctx)
}

// EnsureTokenValid returns true without network traffic while the token is
// fresh, otherwise performs exactly one login.
func (c *Client) EnsureTokenValid(ctx context.Context) bool {
	c.authMu.Lock()
	defer c.authMu.Unlock()

	if c.tokenFresh() {
		return true
	}
	return c.authenticate(ctx)
}

func (c *Client) tokenFresh() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.authenticated || c.token == "" {
		return false
	}
	if c.tokenExpiry.IsZero() {
		return true
	}
	return c.now().Before(c.tokenExpiry.Add(-TokenRefreshMargin))
}

// authenticate performs the login call. Caller must hold authMu.
func (c *Client) authenticate(ctx context.Context) bool {
	log := logger.FromContext(ctx)
	url := c.baseURL + APIPrefix + EndpointLogin
	log.Debug(LogMsgAuthenticating, "url", url)

	token, expiry, err := c.login(ctx, url)
	if err != nil {
		log.Error(LogMsgAuthFailed, "error", err)
		metrics.AuthAttempts.WithLabelValues(metrics.ResultFailure).Inc()
		c.setUnauthenticated()
		return false
	}

	c.mu.Lock()
	c.token = token
	c.tokenExpiry = expiry
	c.lastRefresh = c.now()
	c.authenticated = true
	c.mu.Unlock()

	metrics.AuthAttempts.WithLabelValues(metrics.ResultSuccess).Inc()
	log.Info(LogMsgAuthSucceeded, "token", logger.RedactToken(token), "expires", expiry)
	return true
}

func (c *Client) login(ctx context.Context, url string) (string, time.Time, error) {
	payload, err := json.Marshal(map[string]any{
		fieldUsername: c.username,
		fieldPassword: c.password,
		fieldStayIn:   true,
	})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("encode login payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set(HeaderAccept, ContentTypeJSON)
	req.Header.Set(HeaderContentType, ContentTypeJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("login request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("read login response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", time.Time{}, fmt.Errorf("login returned %d: %s", resp.StatusCode, excerpt(body))
	}

	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return "", time.Time{}, fmt.Errorf("decode login response: %w", err)
	}

	token := loginField(data, fieldToken)
	if token == "" {
		logger.FromContext(ctx).Error(LogMsgAuthNoToken)
		return "", time.Time{}, fmt.Errorf("login response has no token")
	}

	expiry, err := c.resolveExpiry(ctx, data, token)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgAuthBadExpiry, "error", err)
		return "", time.Time{}, err
	}
	return token, expiry, nil
}

// resolveExpiry picks the token expiry: the server's value when present and
// in the future, then the JWT exp claim, then now + token lifetime.
func (c *Client) resolveExpiry(ctx context.Context, data map[string]any, token string) (time.Time, error) {
	now := c.now()
	fallback := now.Add(c.tokenLifetime)

	raw := loginField(data, fieldExpires)
	if raw == "" {
		raw = loginField(data, fieldExpiresAt)
	}
	if raw != "" {
		expiry, err := ParseExpiry(raw)
		if err != nil {
			return time.Time{}, err
		}
		if !expiry.After(now) {
			logger.FromContext(ctx).Warn(LogMsgAuthExpiryInPast, "expires", raw)
			return fallback, nil
		}
		return expiry, nil
	}

	if exp, ok := JWTExpiry(token); ok && exp.After(now) {
		return exp, nil
	}
	return fallback, nil
}

func (c *Client) setUnauthenticated() {
	c.mu.Lock()
	c.authenticated = false
	c.mu.Unlock()
}

func (c *Client) authorizationHeader() string {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()

	if strings.HasPrefix(token, BearerPrefix) {
		return token
	}
	return BearerPrefix + token
}

// loginField reads a string field from the top level, then from "data".
func loginField(data map[string]any, key string) string {
	if v, ok := data[key].(string); ok && v != "" {
		return v
	}
	if nested, ok := data[fieldData].(map[string]any); ok {
		if v, ok := nested[key].(string); ok {
			return v
		}
	}
	return ""
}

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > ErrorDetailMaxLength {
		return s[:ErrorDetailMaxLength]
	}
	return s
}
