package session

import (
	"errors"
)

var (
	// ErrIdP reports that the IdP redirected back with an error parameter.
	// The wrapping error message carries the IdP's error code verbatim.
	ErrIdP = errors.New("identity provider returned an error")

	// ErrExchangeFailed reports that the backend authorization-code exchange
	// failed or returned no usable token field. The wrapping error message
	// carries the original code so callers can offer a retry or manual path.
	ErrExchangeFailed = errors.New("authorization code exchange failed")
)
