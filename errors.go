package redeemer

import (
	"errors"

	"github.com/layer-3/redeemer/core"
)

var (
	// ErrInvalidSignature is returned when a voucher signature is malformed or
	// not produced by a current minter
	ErrInvalidSignature = core.ErrInvalidSignature

	// ErrDuplicateRedemption is returned when the token was already minted
	ErrDuplicateRedemption = core.ErrDuplicateRedemption

	// ErrUnauthorized is returned when a role change is attempted by a non-admin
	ErrUnauthorized = core.ErrUnauthorized

	// ErrUnauthenticated is returned when the admin bearer token is missing or rejected
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrBadRequest is returned when the server rejects the request parameters
	ErrBadRequest = errors.New("bad request")

	// ErrServer is returned for unexpected server responses
	ErrServer = errors.New("server error")
)
