/*
oidc is a package for client-side OIDC-style login flows against a fixed
identity provider.

Primary types provided by the package

* Config: the process-wide, immutable configuration for the flow (client id,
authorization/logout endpoints, response type, scope, default redirect URI,
token storage key). Config builds the authorization request URL.

* Token: an opaque token string. Its String() and MarshalJSON() are redacted
so a token is never accidentally written to logs or wire formats.

* Claims: the decoded key-value payload carried by a token, with accessors for
the claims the flow cares about (exp, name, email, memberOf/groups). Claims
are trusted as decoded; signature verification is out of scope.

* TokenStore: owns the single token for the life of one browsing-session
scope, on top of the narrow Storage interface.

The oidc/session package builds the login/logout/callback state machine on
these types.
*/
package oidc
