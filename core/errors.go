package core

import "errors"

var (
	ErrInvalidSignature    = errors.New("invalid signature")
	ErrDuplicateRedemption = errors.New("token already minted")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrAlreadyIssued       = errors.New("token already issued")
	ErrInvalidTokenID      = errors.New("invalid token id")
	ErrInvalidAddress      = errors.New("invalid ethereum address")
)
