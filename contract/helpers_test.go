package contract_test

import (
	"bytes"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"legion_sales/contract"
	"legion_sales/sdk"
)

const (
	legionAdmin  = "hive:legion"
	projectAdmin = "hive:project"
	feeReceiver  = "hive:legionfees"
	referrerAddr = "hive:referrer"
	alice        = "hive:alice"
	bob          = "hive:bob"
	carol        = "hive:carol"

	raiseToken = "contract:usd-stable"
	askToken   = "contract:proj-token"
)

// defaultInitArgs builds a pre-liquid open raise, the least constrained
// kind; tests override individual fields as needed.
func defaultInitArgs() contract.InitArgs {
	return contract.InitArgs{
		Kind:                  "pre_liquid_open",
		Name:                  "demo raise",
		RaiseToken:            raiseToken,
		RefundPeriodSeconds:   3600,
		LegionAdmin:           legionAdmin,
		ProjectAdmin:          projectAdmin,
		FeeReceiver:           feeReceiver,
		Referrer:              referrerAddr,
		LegionFeeCapitalBps:   250,
		LegionFeeTokensBps:    100,
		ReferrerFeeCapitalBps: 100,
		ReferrerFeeTokensBps:  50,
	}
}

// newSale initializes a fresh instance on a clean mock host.
func newSale(t *testing.T, mutate func(*contract.InitArgs)) *sdk.MockHost {
	t.Helper()
	host := sdk.ResetMock()
	host.SetTimestamp("1000")
	host.SetSender(legionAdmin)
	args := defaultInitArgs()
	if mutate != nil {
		mutate(&args)
	}
	res := call(t, contract.ContractInit, args)
	require.True(t, res.Success, res.Ret)
	return host
}

// call marshals args (nil for payload-less entrypoints) and runs one
// simulated transaction.
func call(t *testing.T, fn func(*string) *string, args any) sdk.CallResult {
	t.Helper()
	payload := ""
	if args != nil {
		raw, err := json.Marshal(args)
		require.NoError(t, err)
		payload = string(raw)
	}
	return sdk.Mock().Call(fn, payload)
}

func mustSucceed(t *testing.T, res sdk.CallResult) {
	t.Helper()
	require.True(t, res.Success, "expected success, got revert: %s", res.Ret)
}

func mustAbort(t *testing.T, res sdk.CallResult, reason string) {
	t.Helper()
	require.False(t, res.Success, "expected revert %q, call succeeded: %s", reason, res.Ret)
	require.Equal(t, reason, res.Ret)
}

func setNow(unix int64) {
	sdk.Mock().SetTimestamp(fmt.Sprintf("%d", unix))
}

// allowTransfer attaches a transfer.allow intent covering the next draw.
func allowTransfer(token string, limit int64) {
	sdk.Mock().SetIntents([]sdk.Intent{{
		Type: "transfer.allow",
		Args: map[string]string{"token": token, "limit": fmt.Sprintf("%d", limit)},
	}})
}

func clearIntents() {
	sdk.Mock().SetIntents(nil)
}

// investAs seeds nothing; callers Deposit first. Sets sender and intent,
// then invests the amount.
func investAs(t *testing.T, investor string, amount int64) sdk.CallResult {
	t.Helper()
	sdk.Mock().SetSender(sdk.Address(investor))
	allowTransfer(raiseToken, amount)
	return call(t, contract.Invest, contract.InvestArgs{Amount: contract.Amount(amount)})
}

// fundAndInvest is the happy-path shorthand used by lifecycle tests.
func fundAndInvest(t *testing.T, investor string, amount int64) {
	t.Helper()
	sdk.Mock().Deposit(raiseToken, sdk.Address(investor), amount)
	mustSucceed(t, investAs(t, investor, amount))
}

func statusView(t *testing.T) map[string]any {
	t.Helper()
	res := call(t, contract.GetSaleStatus, nil)
	mustSucceed(t, res)
	var view map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Ret), &view))
	return view
}

func positionView(t *testing.T, investor string) map[string]any {
	t.Helper()
	res := call(t, contract.GetInvestorPosition, contract.PositionQueryArgs{Investor: investor})
	mustSucceed(t, res)
	var view map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Ret), &view))
	return view
}

// -----------------------------------------------------------------------------
// Merkle tree building (mirrors the off-chain root generator)
// -----------------------------------------------------------------------------

const (
	leafInvest byte = 0x01
	leafClaim  byte = 0x02
	leafExcess byte = 0x03
)

// entryLeaf double-hashes (address, little-endian amount, purpose).
func entryLeaf(addr string, amount int64, purpose byte) []byte {
	data := []byte(addr)
	for shift := 0; shift < 64; shift += 8 {
		data = append(data, byte(uint64(amount)>>shift))
	}
	data = append(data, purpose)
	return crypto.Keccak256(crypto.Keccak256(data))
}

// hashPair folds two nodes smaller-hash-first.
func hashPair(a, b []byte) []byte {
	if bytes.Compare(a, b) <= 0 {
		return crypto.Keccak256(a, b)
	}
	return crypto.Keccak256(b, a)
}

func foldLevel(nodes [][]byte) [][]byte {
	next := make([][]byte, 0, (len(nodes)+1)/2)
	for i := 0; i < len(nodes); i += 2 {
		if i+1 == len(nodes) {
			next = append(next, nodes[i])
			continue
		}
		next = append(next, hashPair(nodes[i], nodes[i+1]))
	}
	return next
}

func merkleRoot(leaves [][]byte) string {
	nodes := leaves
	for len(nodes) > 1 {
		nodes = foldLevel(nodes)
	}
	return hexutil.Encode(nodes[0])
}

// merkleProof returns the sibling path for the leaf at index.
func merkleProof(leaves [][]byte, index int) []string {
	proof := []string{}
	nodes := leaves
	for len(nodes) > 1 {
		sibling := index ^ 1
		if sibling < len(nodes) {
			proof = append(proof, hexutil.Encode(nodes[sibling]))
		}
		nodes = foldLevel(nodes)
		index /= 2
	}
	return proof
}

// -----------------------------------------------------------------------------
// Signer authorizations
// -----------------------------------------------------------------------------

// newAuthSigner generates a throwaway signer keypair and its hex address.
func newAuthSigner(t *testing.T) (*ecdsa.PrivateKey, string) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return key, crypto.PubkeyToAddress(key.PublicKey).Hex()
}

// signInvestAuthorization produces the signature an approved investor would
// attach to an invest call.
func signInvestAuthorization(t *testing.T, key *ecdsa.PrivateKey, investor string, amount int64, nonce uint64, expiry int64) string {
	t.Helper()
	digest := contract.AuthDigest(
		sdk.GetEnv().ContractId,
		contract.AuthActionInvest,
		sdk.Address(investor),
		contract.Amount(amount),
		nonce,
		expiry,
	)
	sig, err := crypto.Sign(digest, key)
	require.NoError(t, err)
	return hexutil.Encode(sig)
}
