package http

import (
	"errors"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/layer-3/redeemer/adapters/signature"
	"github.com/layer-3/redeemer/core"
	"github.com/layer-3/redeemer/service"
)

// RedemptionHandlers contains HTTP handlers for voucher endpoints
type RedemptionHandlers struct {
	redemption *service.RedemptionService
	issuer     *signature.Issuer
}

// NewRedemptionHandlers creates new handlers. issuer may be nil, in which
// case the voucher signing endpoint is not served.
func NewRedemptionHandlers(redemption *service.RedemptionService, issuer *signature.Issuer) *RedemptionHandlers {
	return &RedemptionHandlers{
		redemption: redemption,
		issuer:     issuer,
	}
}

// Redeem handles a voucher redemption
func (h *RedemptionHandlers) Redeem(c *gin.Context) {
	var req struct {
		Recipient string `json:"recipient" binding:"required"`
		TokenID   string `json:"token_id" binding:"required"`
		Signature string `json:"signature" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	recipient, err := core.ParseAddress(req.Recipient)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipient"})
		return
	}

	tokenID, err := core.ParseTokenID(req.TokenID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token id"})
		return
	}

	sig, err := hexutil.Decode(req.Signature)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
		return
	}

	event, err := h.redemption.Redeem(c.Request.Context(), recipient, tokenID, sig)
	if err != nil {
		statusCode := http.StatusInternalServerError
		errorMsg := "Redemption failed"

		// Unauthorized signers already surface as ErrInvalidSignature.
		switch {
		case errors.Is(err, core.ErrInvalidSignature):
			statusCode = http.StatusUnauthorized
			errorMsg = "Invalid signature"
		case errors.Is(err, core.ErrDuplicateRedemption):
			statusCode = http.StatusConflict
			errorMsg = "Token already minted"
		case errors.Is(err, core.ErrInvalidTokenID):
			statusCode = http.StatusBadRequest
			errorMsg = "Invalid token id"
		}

		c.JSON(statusCode, gin.H{"error": errorMsg})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from":     event.From.Hex(),
		"owner":    event.To.Hex(),
		"token_id": event.TokenID.String(),
	})
}

// OwnerOf returns the owner of a token
func (h *RedemptionHandlers) OwnerOf(c *gin.Context) {
	tokenID, err := core.ParseTokenID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token id"})
		return
	}

	owner, found, err := h.redemption.OwnerOf(c.Request.Context(), tokenID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read owner"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Token not minted"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token_id": tokenID.String(),
		"owner":    owner.Hex(),
	})
}

// BalanceOf returns the number of tokens held by an address
func (h *RedemptionHandlers) BalanceOf(c *gin.Context) {
	address, err := core.ParseAddress(c.Param("address"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address"})
		return
	}

	balance, err := h.redemption.BalanceOf(c.Request.Context(), address)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read balance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address": address.Hex(),
		"balance": balance,
	})
}

// IsMinter reports whether an address holds the minter role
func (h *RedemptionHandlers) IsMinter(c *gin.Context) {
	address, err := core.ParseAddress(c.Param("address"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address"})
		return
	}

	ok, err := h.redemption.Roles().IsAuthorized(c.Request.Context(), address)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read role"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address": address.Hex(),
		"minter":  ok,
	})
}

// SignVoucher issues a voucher signed by the configured issuer key
func (h *RedemptionHandlers) SignVoucher(c *gin.Context) {
	var req struct {
		Recipient string `json:"recipient" binding:"required"`
		TokenID   string `json:"token_id"`
		UUID      string `json:"uuid"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	recipient, err := core.ParseAddress(req.Recipient)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipient"})
		return
	}

	var tokenID *big.Int
	switch {
	case req.TokenID != "" && req.UUID != "":
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide either token_id or uuid"})
		return
	case req.UUID != "":
		id, err := uuid.Parse(req.UUID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid uuid"})
			return
		}
		tokenID = core.TokenIDFromUUID(id)
	case req.TokenID != "":
		tokenID, err = core.ParseTokenID(req.TokenID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token id"})
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide either token_id or uuid"})
		return
	}

	voucher, err := h.issuer.SignVoucher(tokenID, recipient)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign voucher"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token_id":  voucher.TokenID.String(),
		"recipient": voucher.Recipient.Hex(),
		"digest":    voucher.Digest.Hex(),
		"signature": hexutil.Encode(voucher.Signature),
	})
}

// AdminHandlers contains HTTP handlers for role administration
type AdminHandlers struct {
	roles *service.RoleRegistry
}

// NewAdminHandlers creates new admin handlers
func NewAdminHandlers(roles *service.RoleRegistry) *AdminHandlers {
	return &AdminHandlers{roles: roles}
}

// GrantMinter handles granting the minter role
func (h *AdminHandlers) GrantMinter(c *gin.Context) {
	h.changeRole(c, h.roles.Grant, "granted")
}

// RevokeMinter handles revoking the minter role
func (h *AdminHandlers) RevokeMinter(c *gin.Context) {
	h.changeRole(c, h.roles.Revoke, "revoked")
}

// ListMinters returns the current role members
func (h *AdminHandlers) ListMinters(c *gin.Context) {
	minters, err := h.roles.Minters(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list minters"})
		return
	}

	out := make([]string, 0, len(minters))
	for _, m := range minters {
		out = append(out, m.Hex())
	}
	c.JSON(http.StatusOK, gin.H{"minters": out})
}

func (h *AdminHandlers) changeRole(c *gin.Context, op roleOp, verb string) {
	address, err := core.ParseAddress(c.Param("address"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address"})
		return
	}

	if err := op(c.Request.Context(), callerFrom(c), address); err != nil {
		if errors.Is(err, core.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address": address.Hex(),
		"status":  verb,
	})
}
