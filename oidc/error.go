package oidc

import (
	"errors"
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrNilParameter     = errors.New("nil parameter")
	ErrTokenDecode      = errors.New("token decode failed")
	ErrNoToken          = errors.New("no token present")
)
