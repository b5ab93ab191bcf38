package session

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hashicorp/go-uuid"

	"github.com/jagatrajsingh2000/sso-test/oidc"
)

// tokenPart identifies where on the callback URL an extractor looks.
type tokenPart int

const (
	partFragment tokenPart = iota
	partQuery
)

// tokenExtractor names one place a directly-embedded token may arrive in.
type tokenExtractor struct {
	part  tokenPart
	param string
}

// tokenExtractors is the fixed precedence for recovering a directly-embedded
// token from the callback URL: first match wins, and any direct token beats
// the authorization-code path. The order is part of the IdP integration
// contract; don't reorder without confirming against the IdP.
var tokenExtractors = []tokenExtractor{
	{partFragment, "access_token"},
	{partFragment, "id_token"},
	{partQuery, "access_token"},
	{partQuery, "id_token"},
	{partQuery, "token"},
}

// authParams are the parameters HandleCallback strips from the visible URL
// once a token has been obtained.
var authParams = []string{
	"access_token",
	"id_token",
	"token",
	"code",
	"state",
	"error",
	"error_description",
	"error_uri",
}

// HandleCallback inspects the current URL for the result of a login redirect.
// It is designed to run once, at page startup.
//
// Precedence: an error parameter fails the attempt with ErrIdP regardless of
// any token also present; then a token directly embedded in the fragment or
// query string (see tokenExtractors); then an authorization code, which is
// exchanged through the configured CodeExchanger. The exchange is the only
// suspension point and honors ctx.
//
// When a token is obtained it is persisted and all auth-related parameters
// are stripped from the visible URL (a history replace, not a navigation),
// and the decoded claims are returned with handled == true. When the URL
// carries nothing to act on, HandleCallback returns handled == false and no
// error so callers fall through to any pre-existing session. An extracted
// token that doesn't decode is cleared and logged, and also reports
// handled == false.
func (m *Manager) HandleCallback(ctx context.Context) (claims oidc.Claims, handled bool, err error) {
	const op = "session.Manager.HandleCallback"
	current, err := m.urls.CurrentURL()
	if err != nil {
		return nil, false, fmt.Errorf("%s: unable to determine current URL: %w", op, err)
	}
	flowID, _ := uuid.GenerateUUID()

	query := current.Query()
	fragment := parseFragment(current.Fragment)

	if code := firstValue("error", query, fragment); code != "" {
		return nil, false, fmt.Errorf("%s: %s: %w", op, code, ErrIdP)
	}

	tok := extractToken(fragment, query)
	if tok == "" {
		if code := query.Get("code"); code != "" {
			if m.exchanger == nil {
				return nil, false, fmt.Errorf("%s: no exchanger configured for code %q: %w", op, code, ErrExchangeFailed)
			}
			m.logger.Debug("no direct token on callback, exchanging code", "flow_id", flowID)
			tok, err = m.exchanger.Exchange(ctx, code)
			if err != nil {
				return nil, false, fmt.Errorf("%s: %w", op, err)
			}
		}
	}
	if tok == "" {
		return nil, false, nil
	}

	m.store.Save(tok)
	if err := m.scrubURL(current); err != nil {
		return nil, false, fmt.Errorf("%s: unable to scrub callback URL: %w", op, err)
	}

	claims, err = oidc.DecodeClaims(tok)
	if err != nil {
		m.logger.Warn("callback delivered an undecodable token", "flow_id", flowID, "err", err)
		m.store.Clear()
		return nil, false, nil
	}
	m.logger.Debug("callback handled", "flow_id", flowID, "sub", claims["sub"])
	return claims, true, nil
}

// extractToken tries the tokenExtractors in order and returns the first
// non-empty match, or "".
func extractToken(fragment url.Values, query url.Values) oidc.Token {
	for _, e := range tokenExtractors {
		values := query
		if e.part == partFragment {
			values = fragment
		}
		if v := values.Get(e.param); v != "" {
			return oidc.Token(v)
		}
	}
	return ""
}

// scrubURL removes the authParams from u's query and fragment and replaces
// the visible URL, without adding a history entry or triggering a reload.
func (m *Manager) scrubURL(u *url.URL) error {
	clean := *u
	query := clean.Query()
	for _, p := range authParams {
		query.Del(p)
	}
	clean.RawQuery = query.Encode()

	if clean.Fragment != "" {
		if fragment, err := url.ParseQuery(clean.Fragment); err == nil {
			for _, p := range authParams {
				fragment.Del(p)
			}
			clean.Fragment = fragment.Encode()
		}
	}
	return m.nav.ReplaceURL(clean.String())
}

// parseFragment parses a URL fragment as query-shaped parameters. Fragments
// that aren't query-shaped yield no values.
func parseFragment(fragment string) url.Values {
	values, err := url.ParseQuery(fragment)
	if err != nil {
		return url.Values{}
	}
	return values
}

// firstValue returns the named parameter from the first value set carrying
// it.
func firstValue(param string, sets ...url.Values) string {
	for _, s := range sets {
		if v := s.Get(param); v != "" {
			return v
		}
	}
	return ""
}
