package tokenizer

import (
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/layer-3/redeemer/core"
)

// AudienceAdmin is the audience claim carried by administrator tokens
const AudienceAdmin = "redeemer:admin"

// ErrInvalidToken is returned for any bearer token that fails validation
var ErrInvalidToken = errors.New("invalid token")

// JWTTokenizer issues and parses administrator bearer tokens
type JWTTokenizer struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTTokenizer creates a new JWT tokenizer signing with HS256
func NewJWTTokenizer(secret []byte, ttl time.Duration) *JWTTokenizer {
	return &JWTTokenizer{secret: secret, ttl: ttl}
}

// AddressToToken issues a bearer token identifying the caller as address
func (j *JWTTokenizer) AddressToToken(address common.Address) (string, error) {
	now := time.Now()
	claims := AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   address.Hex(),
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Audience:  jwt.ClaimStrings{AudienceAdmin},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// TokenToAddress validates a bearer token and returns the caller address
func (j *JWTTokenizer) TokenToAddress(tokenStr string) (common.Address, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	}, jwt.WithAudience(AudienceAdmin), jwt.WithExpirationRequired())

	if err != nil {
		return common.Address{}, fmt.Errorf("failed to parse token: %w", errors.Join(ErrInvalidToken, err))
	}

	if !token.Valid {
		return common.Address{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok {
		return common.Address{}, fmt.Errorf("invalid claims type: %w", ErrInvalidToken)
	}

	address, err := core.ParseAddress(claims.Subject)
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid subject: %w", ErrInvalidToken)
	}

	return address, nil
}
