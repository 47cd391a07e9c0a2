package tokenizer

import "github.com/golang-jwt/jwt/v5"

// AdminClaims are the standard claims for an administrator bearer token.
// Subject carries the administrator's address.
type AdminClaims struct {
	jwt.RegisteredClaims
}
