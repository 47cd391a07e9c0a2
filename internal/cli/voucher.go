package cli

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/layer-3/redeemer/adapters/signature"
	"github.com/layer-3/redeemer/core"
	"github.com/layer-3/redeemer/internal/eth"
)

type voucherFlags struct {
	tokenID   string
	uuid      string
	recipient string
	domain    string
}

func (f *voucherFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.tokenID, "token-id", "", "token id, decimal or 0x hex")
	cmd.Flags().StringVar(&f.uuid, "uuid", "", "derive the token id from a UUID")
	cmd.Flags().StringVar(&f.recipient, "recipient", "", "recipient address")
	cmd.Flags().StringVar(&f.domain, "domain", "", "voucher domain tag, must match the server")
	_ = cmd.MarkFlagRequired("recipient")
	cmd.MarkFlagsMutuallyExclusive("token-id", "uuid")
}

func (f *voucherFlags) parse() (*core.Voucher, error) {
	recipient, err := core.ParseAddress(f.recipient)
	if err != nil {
		return nil, err
	}

	var tokenID *big.Int
	switch {
	case f.uuid != "":
		id, err := uuid.Parse(f.uuid)
		if err != nil {
			return nil, fmt.Errorf("invalid uuid: %w", err)
		}
		tokenID = core.TokenIDFromUUID(id)
	case f.tokenID != "":
		tokenID, err = core.ParseTokenID(f.tokenID)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("one of --token-id or --uuid is required")
	}

	return &core.Voucher{TokenID: tokenID, Recipient: recipient}, nil
}

func newSignCmd() *cobra.Command {
	flags := &voucherFlags{}
	var key string

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a voucher with a minter key",
		RunE: func(cmd *cobra.Command, _ []string) error {
			voucher, err := flags.parse()
			if err != nil {
				return err
			}

			issuer, err := signature.NewIssuer(key, flags.domain)
			if err != nil {
				return err
			}

			signed, err := issuer.SignVoucher(voucher.TokenID, voucher.Recipient)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "signer:    %s\n", issuer.Address().Hex())
			fmt.Fprintf(out, "token_id:  %s\n", signed.TokenID)
			fmt.Fprintf(out, "recipient: %s\n", signed.Recipient.Hex())
			fmt.Fprintf(out, "digest:    %s\n", signed.Digest.Hex())
			fmt.Fprintf(out, "signature: %s\n", hexutil.Encode(signed.Signature))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&key, "key", "", "hex secp256k1 private key of the minter")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

func newDigestCmd() *cobra.Command {
	flags := &voucherFlags{}

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Print the hash and signed digest of a voucher",
		RunE: func(cmd *cobra.Command, _ []string) error {
			voucher, err := flags.parse()
			if err != nil {
				return err
			}

			hasher := eth.NewVoucherHasher(flags.domain)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "token_id:  %s\n", voucher.TokenID)
			fmt.Fprintf(out, "hash:      %s\n", hasher.Hash(voucher.TokenID, voucher.Recipient).Hex())
			fmt.Fprintf(out, "digest:    %s\n", hasher.Digest(voucher.TokenID, voucher.Recipient).Hex())
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newTokenIDCmd() *cobra.Command {
	var fromUUID, fromID string

	cmd := &cobra.Command{
		Use:   "token-id",
		Short: "Convert between UUIDs and token ids",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			switch {
			case fromUUID != "":
				id, err := uuid.Parse(fromUUID)
				if err != nil {
					return fmt.Errorf("invalid uuid: %w", err)
				}
				fmt.Fprintln(out, core.TokenIDFromUUID(id).String())
			case fromID != "":
				tokenID, err := core.ParseTokenID(fromID)
				if err != nil {
					return err
				}
				id, err := core.UUIDFromTokenID(tokenID)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, id.String())
			default:
				return errors.New("one of --uuid or --token-id is required")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fromUUID, "uuid", "", "UUID to convert to a token id")
	cmd.Flags().StringVar(&fromID, "token-id", "", "token id to convert to a UUID")
	cmd.MarkFlagsMutuallyExclusive("uuid", "token-id")

	return cmd
}
