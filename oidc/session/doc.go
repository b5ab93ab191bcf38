/*
session implements the login state machine on top of the oidc package: it
initiates the redirect to the IdP, recovers a token from the post-login
redirect (fragment or query string, directly-supplied token or authorization
code), persists the token for the session's lifetime, answers whether the
session is authenticated, and performs logout.

A session is always in one of two states, both computed on demand from the
token store: Unauthenticated (no valid token present) and Authenticated (a
decodable, unexpired token present). There is no separately persisted state.

The host environment (a browser page or anything standing in for one) is
reached only through the URLProvider and Navigator interfaces, so the state
machine runs and tests without a real host.
*/
package session
