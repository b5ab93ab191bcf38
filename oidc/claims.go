package oidc

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/square/go-jose.v2/jwt"
)

// Claims is the decoded payload of a Token. Claims are trusted as decoded:
// the token's signature is not verified here, which is why Claims must never
// outlive the Token they came from. Callers re-decode from the Token each
// time claims are needed.
type Claims map[string]interface{}

// DecodeClaims decodes the claims payload of t. Any malformed, truncated or
// non-token input reports ErrTokenDecode; DecodeClaims never panics on bad
// input.
func DecodeClaims(t Token) (Claims, error) {
	const op = "oidc.DecodeClaims"
	if t == "" {
		return nil, fmt.Errorf("%s: token is empty: %w", op, ErrTokenDecode)
	}
	parsed, err := jwt.ParseSigned(string(t))
	if err != nil {
		return nil, fmt.Errorf("%s: malformed token: %w", op, ErrTokenDecode)
	}
	var claims Claims
	if err := parsed.UnsafeClaimsWithoutVerification(&claims); err != nil {
		return nil, fmt.Errorf("%s: unable to decode claims: %w", op, ErrTokenDecode)
	}
	return claims, nil
}

// Expiry returns the token's expiry instant from the "exp" claim (numeric
// epoch seconds). The second return value is false when the claim is absent
// or not numeric, which callers treat as a non-expiring token.
func (c Claims) Expiry() (time.Time, bool) {
	v, ok := c["exp"]
	if !ok {
		return time.Time{}, false
	}
	switch exp := v.(type) {
	case float64:
		return time.Unix(int64(exp), 0), true
	case int64:
		return time.Unix(exp, 0), true
	case json.Number:
		i, err := exp.Int64()
		if err != nil {
			return time.Time{}, false
		}
		return time.Unix(i, 0), true
	default:
		return time.Time{}, false
	}
}

// Name returns the "name" claim, or "" when absent.
func (c Claims) Name() string {
	return c.stringClaim("name")
}

// Email returns the "email" claim, or "" when absent.
func (c Claims) Email() string {
	return c.stringClaim("email")
}

// MemberOf returns the principal's group memberships from the "memberOf"
// claim, falling back to "groups". IdPs are inconsistent about the claim's
// shape: a single group may arrive as a bare string rather than a one-element
// list, so both shapes are accepted. Absent or unrecognized shapes yield nil.
func (c Claims) MemberOf() []string {
	for _, name := range []string{"memberOf", "groups"} {
		v, ok := c[name]
		if !ok {
			continue
		}
		switch groups := v.(type) {
		case string:
			return []string{groups}
		case []string:
			return groups
		case []interface{}:
			out := make([]string, 0, len(groups))
			for _, g := range groups {
				if s, ok := g.(string); ok {
					out = append(out, s)
				}
			}
			return out
		}
	}
	return nil
}

func (c Claims) stringClaim(name string) string {
	if v, ok := c[name].(string); ok {
		return v
	}
	return ""
}
