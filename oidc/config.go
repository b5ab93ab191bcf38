package oidc

import (
	"fmt"
	"net/url"

	"github.com/hashicorp/go-multierror"

	"github.com/jagatrajsingh2000/sso-test/internal/strutils"
)

const (
	// DefaultResponseType is used when no WithResponseType option is given.
	DefaultResponseType = "code"

	// DefaultTokenStorageKey is the storage key the token is kept under when
	// no WithTokenStorageKey option is given.
	DefaultTokenStorageKey = "token"
)

// Config represents the process-wide configuration for the login flow against
// a fixed IdP. It is set once at startup and never mutated; nothing in this
// package writes to it after NewConfig returns.
type Config struct {
	// ClientID is the relying party id registered with the IdP.
	ClientID string

	// AuthorizationEndpoint is the IdP's authorization URL, including scheme,
	// host and path and no query or fragment components.
	AuthorizationEndpoint string

	// LogoutEndpoint is the IdP's logout URL. Optional; required only when
	// session.Manager.Logout is asked to redirect to the IdP.
	LogoutEndpoint string

	// ResponseType is the OAuth response_type requested
	// (DefaultResponseType when not set via options).
	ResponseType string

	// Scope is the space-separated scope string requested of the IdP. It is
	// emitted into the authorization URL byte-for-byte, spaces included.
	Scope string

	// DefaultRedirectURI is used by session.Manager.InitiateLogin when the
	// caller doesn't supply a redirect URI. Optional.
	DefaultRedirectURI string

	// TokenStorageKey is the key the token is stored under
	// (DefaultTokenStorageKey when not set via options).
	TokenStorageKey string

	// BackendBaseURL is the base URL of the backend that exchanges an
	// authorization code for a token. Optional; when empty the code path of
	// the callback is disabled.
	BackendBaseURL string

	// RedirectQuirk, when non-nil, is consulted with the hostname of the
	// redirect URI while building the authorization URL; when it reports
	// true, a literal trailing slash is appended to the redirect_uri
	// parameter. See HostnameQuirk. This reproduces an IdP-side quirk and
	// should be removed once the IdP accepts the unmodified redirect URI.
	RedirectQuirk func(hostname string) bool
}

// NewConfig composes the configuration for the login flow.
// Supported options: WithResponseType, WithScope, WithLogoutEndpoint,
// WithDefaultRedirectURI, WithTokenStorageKey, WithBackendBaseURL,
// WithRedirectQuirk
func NewConfig(authorizationEndpoint string, clientID string, opt ...Option) (*Config, error) {
	const op = "oidc.NewConfig"
	opts := getConfigOpts(opt...)
	c := &Config{
		ClientID:              clientID,
		AuthorizationEndpoint: authorizationEndpoint,
		LogoutEndpoint:        opts.withLogoutEndpoint,
		ResponseType:          opts.withResponseType,
		Scope:                 opts.withScope,
		DefaultRedirectURI:    opts.withDefaultRedirectURI,
		TokenStorageKey:       opts.withTokenStorageKey,
		BackendBaseURL:        opts.withBackendBaseURL,
		RedirectQuirk:         opts.withRedirectQuirk,
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: invalid configuration: %w", op, err)
	}
	return c, nil
}

// Validate the configuration. All problems found are reported, not just the
// first one.
func (c *Config) Validate() error {
	const op = "oidc.Validate"
	if c == nil {
		return fmt.Errorf("%s: config is nil: %w", op, ErrNilParameter)
	}
	var result *multierror.Error
	if c.ClientID == "" {
		result = multierror.Append(result, fmt.Errorf("%s: client id is empty: %w", op, ErrInvalidParameter))
	}
	if c.AuthorizationEndpoint == "" {
		result = multierror.Append(result, fmt.Errorf("%s: authorization endpoint is empty: %w", op, ErrInvalidParameter))
	} else {
		u, err := url.Parse(c.AuthorizationEndpoint)
		switch {
		case err != nil:
			result = multierror.Append(result, fmt.Errorf("%s: authorization endpoint %s is invalid: %w", op, c.AuthorizationEndpoint, err))
		case !strutils.StrListContains([]string{"https", "http"}, u.Scheme):
			result = multierror.Append(result, fmt.Errorf("%s: authorization endpoint %s scheme is not http or https: %w", op, c.AuthorizationEndpoint, ErrInvalidParameter))
		}
	}
	if c.ResponseType == "" {
		result = multierror.Append(result, fmt.Errorf("%s: response type is empty: %w", op, ErrInvalidParameter))
	}
	if c.Scope == "" {
		result = multierror.Append(result, fmt.Errorf("%s: scope is empty: %w", op, ErrInvalidParameter))
	}
	if c.TokenStorageKey == "" {
		result = multierror.Append(result, fmt.Errorf("%s: token storage key is empty: %w", op, ErrInvalidParameter))
	}
	return result.ErrorOrNil()
}

// configOptions is the set of available options
type configOptions struct {
	withResponseType       string
	withScope              string
	withLogoutEndpoint     string
	withDefaultRedirectURI string
	withTokenStorageKey    string
	withBackendBaseURL     string
	withRedirectQuirk      func(hostname string) bool
}

// configDefaults is a handy way to get the defaults at runtime and during unit
// tests.
func configDefaults() configOptions {
	return configOptions{
		withResponseType:    DefaultResponseType,
		withScope:           "openid",
		withTokenStorageKey: DefaultTokenStorageKey,
	}
}

// getConfigOpts gets the defaults and applies the opt overrides passed in.
func getConfigOpts(opt ...Option) configOptions {
	opts := configDefaults()
	ApplyOpts(&opts, opt...)
	return opts
}

// WithResponseType overrides the default response_type of "code".
func WithResponseType(responseType string) Option {
	return func(o interface{}) {
		if o, ok := o.(*configOptions); ok {
			o.withResponseType = responseType
		}
	}
}

// WithScope provides the scope string requested of the IdP.
func WithScope(scope string) Option {
	return func(o interface{}) {
		if o, ok := o.(*configOptions); ok {
			o.withScope = scope
		}
	}
}

// WithLogoutEndpoint provides the IdP's logout URL.
func WithLogoutEndpoint(endpoint string) Option {
	return func(o interface{}) {
		if o, ok := o.(*configOptions); ok {
			o.withLogoutEndpoint = endpoint
		}
	}
}

// WithDefaultRedirectURI provides the redirect URI used when a login is
// initiated without an explicit one.
func WithDefaultRedirectURI(uri string) Option {
	return func(o interface{}) {
		if o, ok := o.(*configOptions); ok {
			o.withDefaultRedirectURI = uri
		}
	}
}

// WithTokenStorageKey overrides the default storage key for the token.
func WithTokenStorageKey(key string) Option {
	return func(o interface{}) {
		if o, ok := o.(*configOptions); ok {
			o.withTokenStorageKey = key
		}
	}
}

// WithBackendBaseURL provides the base URL of the backend used to exchange an
// authorization code for a token.
func WithBackendBaseURL(baseURL string) Option {
	return func(o interface{}) {
		if o, ok := o.(*configOptions); ok {
			o.withBackendBaseURL = baseURL
		}
	}
}

// WithRedirectQuirk provides the trailing-slash predicate consulted while
// building the authorization URL. See HostnameQuirk.
func WithRedirectQuirk(quirk func(hostname string) bool) Option {
	return func(o interface{}) {
		if o, ok := o.(*configOptions); ok {
			o.withRedirectQuirk = quirk
		}
	}
}
