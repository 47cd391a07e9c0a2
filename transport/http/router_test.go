package http

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layer-3/redeemer/adapters/events"
	"github.com/layer-3/redeemer/adapters/signature"
	"github.com/layer-3/redeemer/adapters/store"
	"github.com/layer-3/redeemer/adapters/tokenizer"
	"github.com/layer-3/redeemer/internal/eth"
	"github.com/layer-3/redeemer/service"
)

const (
	issuerKey    = "0xc0c1e7d82fae79ce7727bd94e3e74deafbce52fc5618d9fd5557f41e83d4c149"
	recipientHex = "0xa111C225A0aFd5aD64221B1bc1D5d817e5D3Ca15"
)

var adminAddr = common.HexToAddress("0x00000000000000000000000000000000000a11ce")

type testServer struct {
	router *gin.Engine
	tok    *tokenizer.JWTTokenizer
	minter *ecdsa.PrivateKey
}

func newTestServer(t *testing.T, withIssuer bool) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	minter, err := eth.ParsePrivateKey(issuerKey)
	require.NoError(t, err)

	roles := service.NewRoleRegistry(adminAddr, store.NewMemoryMinterStore(), zerolog.Nop())
	require.NoError(t, roles.Grant(context.Background(), adminAddr, eth.AddressOf(minter)))

	svc := service.NewRedemptionService(
		signature.NewECDSAVerifier(""),
		roles,
		store.NewMemoryLedger(),
		events.NopPublisher{},
		zerolog.Nop(),
	)

	var issuer *signature.Issuer
	if withIssuer {
		issuer, err = signature.NewIssuer(issuerKey, "")
		require.NoError(t, err)
	}

	tok := tokenizer.NewJWTTokenizer([]byte("test-secret"), time.Minute)

	return &testServer{
		router: SetupRouter(svc, issuer, tok, zerolog.Nop()),
		tok:    tok,
		minter: minter,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body any, bearer string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func (s *testServer) signature(t *testing.T, tokenID int64, recipient string) string {
	t.Helper()
	sig, err := eth.SignDigest(eth.NewVoucherHasher("").Digest(big.NewInt(tokenID), common.HexToAddress(recipient)), s.minter)
	require.NoError(t, err)
	return hexutil.Encode(sig)
}

func TestRedeemEndpoint(t *testing.T) {
	s := newTestServer(t, false)
	sig := s.signature(t, 1, recipientHex)

	body := map[string]string{"recipient": recipientHex, "token_id": "1", "signature": sig}

	w, out := s.do(t, http.MethodPost, "/vouchers/redeem", body, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, common.HexToAddress(recipientHex).Hex(), out["owner"])
	assert.Equal(t, common.Address{}.Hex(), out["from"])
	assert.Equal(t, "1", out["token_id"])

	w, out = s.do(t, http.MethodPost, "/vouchers/redeem", body, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Token already minted", out["error"])

	w, out = s.do(t, http.MethodGet, "/tokens/1/owner", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, common.HexToAddress(recipientHex).Hex(), out["owner"])

	w, out = s.do(t, http.MethodGet, "/accounts/"+recipientHex+"/balance", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, out["balance"])
}

func TestRedeemEndpoint_Rejections(t *testing.T) {
	s := newTestServer(t, false)
	sig := s.signature(t, 2, recipientHex)
	outsider, err := crypto.GenerateKey()
	require.NoError(t, err)
	outsiderSig, err := eth.SignDigest(eth.NewVoucherHasher("").Digest(big.NewInt(2), common.HexToAddress(recipientHex)), outsider)
	require.NoError(t, err)

	tests := []struct {
		name   string
		body   any
		status int
		errMsg string
	}{
		{
			name:   "frontrun",
			body:   map[string]string{"recipient": adminAddr.Hex(), "token_id": "2", "signature": sig},
			status: http.StatusUnauthorized,
			errMsg: "Invalid signature",
		},
		{
			name:   "non-minter",
			body:   map[string]string{"recipient": recipientHex, "token_id": "2", "signature": hexutil.Encode(outsiderSig)},
			status: http.StatusUnauthorized,
			errMsg: "Invalid signature",
		},
		{
			name:   "undecodable signature",
			body:   map[string]string{"recipient": recipientHex, "token_id": "2", "signature": "xyz"},
			status: http.StatusUnauthorized,
			errMsg: "Invalid signature",
		},
		{
			name:   "short signature",
			body:   map[string]string{"recipient": recipientHex, "token_id": "2", "signature": "0xdeadbeef"},
			status: http.StatusUnauthorized,
			errMsg: "Invalid signature",
		},
		{
			name:   "bad recipient",
			body:   map[string]string{"recipient": "0x1234", "token_id": "2", "signature": sig},
			status: http.StatusBadRequest,
			errMsg: "Invalid recipient",
		},
		{
			name:   "token id out of range",
			body:   map[string]string{"recipient": recipientHex, "token_id": "0x1" + string(bytes.Repeat([]byte("0"), 64)), "signature": sig},
			status: http.StatusBadRequest,
			errMsg: "Invalid token id",
		},
		{
			name:   "missing fields",
			body:   map[string]string{"recipient": recipientHex},
			status: http.StatusBadRequest,
			errMsg: "Invalid request",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, out := s.do(t, http.MethodPost, "/vouchers/redeem", tc.body, "")
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.errMsg, out["error"])
		})
	}

	w, _ := s.do(t, http.MethodGet, "/tokens/2/owner", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReadEndpoints_BadInput(t *testing.T) {
	s := newTestServer(t, false)

	w, _ := s.do(t, http.MethodGet, "/tokens/abc/owner", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodGet, "/accounts/nope/balance", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminEndpoints(t *testing.T) {
	s := newTestServer(t, false)
	newMinter := "0x703c4b2bd70c169f5717101caee543299fc946c7"

	adminToken, err := s.tok.AddressToToken(adminAddr)
	require.NoError(t, err)
	strangerToken, err := s.tok.AddressToToken(common.HexToAddress(newMinter))
	require.NoError(t, err)

	w, _ := s.do(t, http.MethodPut, "/admin/minters/"+newMinter, nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(t, http.MethodPut, "/admin/minters/"+newMinter, nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, out := s.do(t, http.MethodPut, "/admin/minters/"+newMinter, nil, strangerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Unauthorized", out["error"])

	w, _ = s.do(t, http.MethodPut, "/admin/minters/"+newMinter, nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	w, out = s.do(t, http.MethodGet, "/minters/"+newMinter, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, out["minter"])

	w, out = s.do(t, http.MethodGet, "/admin/minters", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, out["minters"], 2)

	w, _ = s.do(t, http.MethodDelete, "/admin/minters/"+newMinter, nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	w, out = s.do(t, http.MethodGet, "/minters/"+newMinter, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, out["minter"])

	w, _ = s.do(t, http.MethodDelete, "/admin/minters/not-an-address", nil, adminToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignVoucherEndpoint(t *testing.T) {
	t.Run("disabled without issuer", func(t *testing.T) {
		s := newTestServer(t, false)
		w, _ := s.do(t, http.MethodPost, "/vouchers", map[string]string{"recipient": recipientHex, "token_id": "1"}, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	s := newTestServer(t, true)

	t.Run("uuid voucher matches reference signature", func(t *testing.T) {
		w, out := s.do(t, http.MethodPost, "/vouchers", map[string]string{
			"recipient": recipientHex,
			"uuid":      "b400af61-6cb4-4565-89c4-d6ba43f948b7",
		}, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "239264596381739575473221873891232270519", out["token_id"])
		assert.Equal(t, "0x0577530589f065fdb25b8f29132865782ab2a4ea75a294ba56deecddeeefb77b18755f1811bb76dfadf417ff58f6bd2b593ddb4c80b1eaa85752e0df5a5b44f400", out["signature"])
		assert.Equal(t, "0x28a31df343e08262035b1a523a4ebb2bfeb88c53cdec1f61a2742612c171ce03", out["digest"])
	})

	t.Run("signed voucher redeems", func(t *testing.T) {
		w, out := s.do(t, http.MethodPost, "/vouchers", map[string]string{"recipient": recipientHex, "token_id": "55"}, "")
		require.Equal(t, http.StatusOK, w.Code)

		w, _ = s.do(t, http.MethodPost, "/vouchers/redeem", map[string]string{
			"recipient": recipientHex,
			"token_id":  "55",
			"signature": out["signature"].(string),
		}, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("requires exactly one id", func(t *testing.T) {
		w, _ := s.do(t, http.MethodPost, "/vouchers", map[string]string{"recipient": recipientHex}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w, _ = s.do(t, http.MethodPost, "/vouchers", map[string]string{
			"recipient": recipientHex,
			"token_id":  "1",
			"uuid":      "b400af61-6cb4-4565-89c4-d6ba43f948b7",
		}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
