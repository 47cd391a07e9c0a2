package http

import (
	"github.com/gin-gonic/gin"
	"github.com/layer-3/redeemer/adapters/signature"
	"github.com/layer-3/redeemer/adapters/tokenizer"
	"github.com/layer-3/redeemer/service"
	"github.com/rs/zerolog"
)

// SetupRouter sets up the Gin router
func SetupRouter(
	redemption *service.RedemptionService,
	issuer *signature.Issuer,
	tok *tokenizer.JWTTokenizer,
	logger zerolog.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(logger))

	// Create handlers
	handlers := NewRedemptionHandlers(redemption, issuer)
	admin := NewAdminHandlers(redemption.Roles())

	vouchers := router.Group("/vouchers")
	{
		vouchers.POST("/redeem", handlers.Redeem)
		if issuer != nil {
			vouchers.POST("", handlers.SignVoucher)
		}
	}

	router.GET("/tokens/:id/owner", handlers.OwnerOf)
	router.GET("/accounts/:address/balance", handlers.BalanceOf)
	router.GET("/minters/:address", handlers.IsMinter)

	// Role administration
	adminGroup := router.Group("/admin")
	adminGroup.Use(AuthMiddleware(tok))
	{
		adminGroup.GET("/minters", admin.ListMinters)
		adminGroup.PUT("/minters/:address", admin.GrantMinter)
		adminGroup.DELETE("/minters/:address", admin.RevokeMinter)
	}

	return router
}
