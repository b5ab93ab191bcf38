package oidc

import "encoding/json"

// Token is the opaque token issued by the IdP, typically a compact serialized
// JWT. It is owned by a TokenStore for the duration of one browsing-session
// scope.
type Token string

// RedactedToken is the redacted string or json for a Token
const RedactedToken = "[REDACTED: token]"

// String will redact the token
func (t Token) String() string {
	return RedactedToken
}

// MarshalJSON will redact the token
func (t Token) MarshalJSON() ([]byte, error) {
	return json.Marshal(RedactedToken)
}
