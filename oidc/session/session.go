package session

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"

	"github.com/jagatrajsingh2000/sso-test/oidc"
)

// Manager is the login state machine. It is designed for the original
// single-threaded, event-driven host: operations are expected to run one at a
// time per page instance and HandleCallback once per page load. Manager adds
// no locking of its own; concurrent HandleCallback invocations would race on
// the token store.
type Manager struct {
	config    *oidc.Config
	store     *oidc.TokenStore
	urls      URLProvider
	nav       Navigator
	exchanger CodeExchanger
	logger    hclog.Logger
}

// New creates a Manager for the given configuration and host environment.
// When no WithExchanger option is given and the configuration carries a
// BackendBaseURL, a default ExchangeClient is wired for the authorization
// code path.
// Supported options: WithLogger, WithExchanger
func New(c *oidc.Config, storage oidc.Storage, urls URLProvider, nav Navigator, opt ...Option) (*Manager, error) {
	const op = "session.New"
	if c == nil {
		return nil, fmt.Errorf("%s: config is nil: %w", op, oidc.ErrNilParameter)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: invalid config: %w", op, err)
	}
	if urls == nil {
		return nil, fmt.Errorf("%s: url provider is nil: %w", op, oidc.ErrNilParameter)
	}
	if nav == nil {
		return nil, fmt.Errorf("%s: navigator is nil: %w", op, oidc.ErrNilParameter)
	}
	store, err := oidc.NewTokenStore(storage, c.TokenStorageKey)
	if err != nil {
		return nil, fmt.Errorf("%s: unable to create token store: %w", op, err)
	}

	opts := getManagerOpts(opt...)
	logger := opts.withLogger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	exchanger := opts.withExchanger
	if exchanger == nil && c.BackendBaseURL != "" {
		exchanger, err = NewExchangeClient(c.BackendBaseURL, WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("%s: unable to create exchange client: %w", op, err)
		}
	}

	return &Manager{
		config:    c,
		store:     store,
		urls:      urls,
		nav:       nav,
		exchanger: exchanger,
		logger:    logger,
	}, nil
}

// InitiateLogin builds the authorization URL and performs a full-page
// navigation to the IdP. The effective redirect URI is the explicit argument
// when non-empty, then the configured default, then the current page URL, in
// that order of precedence. In a real host, execution does not resume after a
// successful call.
func (m *Manager) InitiateLogin(redirectURI string) error {
	const op = "session.Manager.InitiateLogin"
	uri := redirectURI
	if uri == "" {
		uri = m.config.DefaultRedirectURI
	}
	if uri == "" {
		current, err := m.urls.CurrentURL()
		if err != nil {
			return fmt.Errorf("%s: unable to determine current URL: %w", op, err)
		}
		uri = current.String()
	}
	authURL := m.config.AuthURL(uri)
	m.logger.Debug("redirecting to IdP", "redirect_uri", uri)
	if err := m.nav.Navigate(authURL); err != nil {
		return fmt.Errorf("%s: navigation failed: %w", op, err)
	}
	return nil
}

// IsAuthenticated reports whether a decodable, unexpired token is present.
// An undecodable or expired token is never left resident: both are cleared
// from the store as a side effect and report false. A token without an exp
// claim never expires.
func (m *Manager) IsAuthenticated() bool {
	tok, ok := m.store.Load()
	if !ok {
		return false
	}
	claims, err := oidc.DecodeClaims(tok)
	if err != nil {
		m.logger.Warn("clearing undecodable token", "err", err)
		m.store.Clear()
		return false
	}
	if expiry, ok := claims.Expiry(); ok && expiry.Before(time.Now()) {
		m.store.Clear()
		return false
	}
	return true
}

// Logout clears the stored token. When redirectToIdP is true it additionally
// performs a full-page navigation to the IdP's logout endpoint.
func (m *Manager) Logout(redirectToIdP bool) error {
	const op = "session.Manager.Logout"
	m.store.Clear()
	if !redirectToIdP {
		return nil
	}
	if m.config.LogoutEndpoint == "" {
		return fmt.Errorf("%s: logout endpoint is not configured: %w", op, oidc.ErrInvalidParameter)
	}
	if err := m.nav.Navigate(m.config.LogoutURL()); err != nil {
		return fmt.Errorf("%s: navigation failed: %w", op, err)
	}
	return nil
}

// UserInfo returns the decoded claims of the current session, or nil when
// the session isn't authenticated. It never fails; failure modes all report
// an unauthenticated session.
func (m *Manager) UserInfo() oidc.Claims {
	if !m.IsAuthenticated() {
		return nil
	}
	tok, ok := m.store.Load()
	if !ok {
		return nil
	}
	claims, err := oidc.DecodeClaims(tok)
	if err != nil {
		return nil
	}
	return claims
}

// TokenSource exposes the stored token as an oauth2.TokenSource so callers
// can feed API clients that authenticate with it. The source reports
// oidc.ErrNoToken when the store is empty.
func (m *Manager) TokenSource() oauth2.TokenSource {
	return tokenSource{store: m.store}
}

type tokenSource struct {
	store *oidc.TokenStore
}

func (s tokenSource) Token() (*oauth2.Token, error) {
	const op = "session.tokenSource.Token"
	tok, ok := s.store.Load()
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, oidc.ErrNoToken)
	}
	return &oauth2.Token{AccessToken: string(tok)}, nil
}
