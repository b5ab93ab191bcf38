// ssotest provides client-side support for an OIDC-style login flow against a
// fixed identity provider: building the authorization redirect, recovering a
// token from the post-login redirect, keeping it for the session's lifetime,
// decoding its claims, and deriving role flags from group memberships.
//
// See the oidc, oidc/session and authz packages.
package ssotest
