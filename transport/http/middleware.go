package http

import (
	"context"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/layer-3/redeemer/adapters/tokenizer"
	"github.com/rs/zerolog"
)

const callerKey = "callerAddress"

type roleOp func(ctx context.Context, caller, addr common.Address) error

// AuthMiddleware resolves the bearer token to the calling address
func AuthMiddleware(tok *tokenizer.JWTTokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")

		// Check if the Authorization header is present and in correct format
		if len(auth) < 8 || auth[:7] != "Bearer " {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header"})
			return
		}

		address, err := tok.TokenToAddress(auth[7:])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(callerKey, address)

		c.Next()
	}
}

func callerFrom(c *gin.Context) common.Address {
	v, ok := c.Get(callerKey)
	if !ok {
		return common.Address{}
	}
	addr, _ := v.(common.Address)
	return addr
}

// RequestLogger logs one line per request
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
