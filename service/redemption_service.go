package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/layer-3/redeemer/core"
	"github.com/layer-3/redeemer/ports"
	"github.com/rs/zerolog"
)

// RedemptionService turns signed vouchers into ownership records
type RedemptionService struct {
	verifier ports.Verifier
	roles    *RoleRegistry
	ledger   ports.Ledger
	eventPub ports.EventPublisher
	logger   zerolog.Logger
}

// NewRedemptionService creates a new redemption service
func NewRedemptionService(
	verifier ports.Verifier,
	roles *RoleRegistry,
	ledger ports.Ledger,
	eventPub ports.EventPublisher,
	logger zerolog.Logger,
) *RedemptionService {
	return &RedemptionService{
		verifier: verifier,
		roles:    roles,
		ledger:   ledger,
		eventPub: eventPub,
		logger:   logger.With().Str("component", "redemption").Logger(),
	}
}

// Roles returns the registry consulted on every redemption
func (s *RedemptionService) Roles() *RoleRegistry {
	return s.roles
}

// Redeem mints tokenID to recipient if signature is a current minter's
// signature over the voucher digest and the token was never issued.
//
// Malformed signatures and signatures from non-minters both fail with
// core.ErrInvalidSignature so callers cannot probe role membership.
// A failed call changes nothing.
func (s *RedemptionService) Redeem(ctx context.Context, recipient common.Address, tokenID *big.Int, signature []byte) (*core.TransferEvent, error) {
	if err := core.ValidateTokenID(tokenID); err != nil {
		return nil, err
	}

	log := s.logger.With().Str("token_id", tokenID.String()).Str("recipient", recipient.Hex()).Logger()

	digest := s.verifier.Digest(tokenID, recipient)

	signer, err := s.verifier.Recover(digest, signature)
	if err != nil {
		log.Debug().Err(err).Msg("signature recovery failed")
		return nil, core.ErrInvalidSignature
	}

	authorized, err := s.roles.IsAuthorized(ctx, signer)
	if err != nil {
		return nil, err
	}
	if !authorized {
		log.Debug().Str("signer", signer.Hex()).Msg("signer is not a minter")
		return nil, core.ErrInvalidSignature
	}

	if err := s.ledger.Issue(ctx, tokenID, recipient); err != nil {
		if errors.Is(err, core.ErrAlreadyIssued) {
			log.Debug().Msg("duplicate redemption")
			return nil, core.ErrDuplicateRedemption
		}
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	event := core.NewIssuanceEvent(recipient, tokenID)

	// The ledger is authoritative; a lost notification does not undo the mint.
	if err := s.eventPub.PublishTransfer(ctx, event); err != nil {
		log.Warn().Err(err).Msg("failed to publish transfer event")
	}

	log.Info().Str("signer", signer.Hex()).Msg("token redeemed")

	return event, nil
}

// OwnerOf returns the owner of tokenID, if issued
func (s *RedemptionService) OwnerOf(ctx context.Context, tokenID *big.Int) (common.Address, bool, error) {
	if err := core.ValidateTokenID(tokenID); err != nil {
		return common.Address{}, false, err
	}
	return s.ledger.OwnerOf(ctx, tokenID)
}

// BalanceOf returns the number of tokens issued to owner
func (s *RedemptionService) BalanceOf(ctx context.Context, owner common.Address) (uint64, error) {
	return s.ledger.BalanceOf(ctx, owner)
}
