package redeemer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// HTTPClient implements Client against the service's HTTP API
type HTTPClient struct {
	baseURL    string
	adminToken string
	http       *http.Client
}

// Option configures an HTTPClient
type Option func(*HTTPClient)

// WithAdminToken sets the bearer token used for role administration
func WithAdminToken(token string) Option {
	return func(c *HTTPClient) { c.adminToken = token }
}

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// NewHTTPClient creates a client for the service at baseURL
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ Client = (*HTTPClient)(nil)

type errorResponse struct {
	Error string `json:"error"`
}

// Redeem submits a signed voucher
func (c *HTTPClient) Redeem(ctx context.Context, recipient common.Address, tokenID *big.Int, signature []byte) error {
	req := map[string]string{
		"recipient": recipient.Hex(),
		"token_id":  tokenID.String(),
		"signature": hexutil.Encode(signature),
	}
	return c.do(ctx, http.MethodPost, "/vouchers/redeem", req, false, nil)
}

// OwnerOf returns the owner of tokenID
func (c *HTTPClient) OwnerOf(ctx context.Context, tokenID *big.Int) (common.Address, bool, error) {
	var resp struct {
		Owner string `json:"owner"`
	}

	status, err := c.doStatus(ctx, http.MethodGet, "/tokens/"+tokenID.String()+"/owner", nil, false, &resp)
	if status == http.StatusNotFound {
		return common.Address{}, false, nil
	}
	if err != nil {
		return common.Address{}, false, err
	}

	return common.HexToAddress(resp.Owner), true, nil
}

// BalanceOf returns how many tokens owner holds
func (c *HTTPClient) BalanceOf(ctx context.Context, owner common.Address) (uint64, error) {
	var resp struct {
		Balance json.Number `json:"balance"`
	}
	if err := c.do(ctx, http.MethodGet, "/accounts/"+owner.Hex()+"/balance", nil, false, &resp); err != nil {
		return 0, err
	}

	balance, err := strconv.ParseUint(resp.Balance.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid balance %q: %w", resp.Balance, ErrServer)
	}
	return balance, nil
}

// GrantMinter gives addr the minter role
func (c *HTTPClient) GrantMinter(ctx context.Context, addr common.Address) error {
	return c.do(ctx, http.MethodPut, "/admin/minters/"+addr.Hex(), nil, true, nil)
}

// RevokeMinter removes the minter role from addr
func (c *HTTPClient) RevokeMinter(ctx context.Context, addr common.Address) error {
	return c.do(ctx, http.MethodDelete, "/admin/minters/"+addr.Hex(), nil, true, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, admin bool, out any) error {
	_, err := c.doStatus(ctx, method, path, body, admin, out)
	return err
}

func (c *HTTPClient) doStatus(ctx context.Context, method, path string, body any, admin bool, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin && c.adminToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.adminToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return resp.StatusCode, statusError(resp.StatusCode, e.Error)
	}

	if out != nil {
		dec := json.NewDecoder(resp.Body)
		dec.UseNumber()
		if err := dec.Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return resp.StatusCode, nil
}

func statusError(status int, msg string) error {
	var base error
	switch status {
	case http.StatusBadRequest:
		base = ErrBadRequest
	case http.StatusUnauthorized:
		if msg == "Invalid signature" {
			base = ErrInvalidSignature
		} else {
			base = ErrUnauthenticated
		}
	case http.StatusForbidden:
		base = ErrUnauthorized
	case http.StatusConflict:
		base = ErrDuplicateRedemption
	default:
		base = ErrServer
	}

	if msg == "" {
		return fmt.Errorf("status %d: %w", status, base)
	}
	return fmt.Errorf("%s: %w", msg, base)
}
