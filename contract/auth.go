package contract

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"legion_sales/sdk"
)

// Off-chain signer authorizations. The configured signer puts an EIP-712
// typed-data signature over (action, investor, amount, nonce, expiry); we
// recover the signer on-chain and compare. The domain salt binds the digest
// to this deployed instance so an authorization for one sale can never be
// replayed against a clone.

// AuthTypes is the typed-data schema shared with the off-chain signer.
var AuthTypes = apitypes.Types{
	"EIP712Domain": []apitypes.Type{
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "salt", Type: "bytes32"},
	},
	"InvestorAuthorization": []apitypes.Type{
		{Name: "action", Type: "string"},
		{Name: "investor", Type: "string"},
		{Name: "amount", Type: "uint256"},
		{Name: "nonce", Type: "uint256"},
		{Name: "expiry", Type: "uint256"},
	},
}

// AuthDigest computes the signable digest for an investor authorization.
// Exported so tests (and off-chain tooling ports) produce bit-identical
// digests.
func AuthDigest(contractId string, action string, investor sdk.Address, amount Amount, nonce uint64, expiry int64) []byte {
	salt := crypto.Keccak256([]byte(contractId))
	typedData := apitypes.TypedData{
		Types:       AuthTypes,
		PrimaryType: "InvestorAuthorization",
		Domain: apitypes.TypedDataDomain{
			Name:    AuthDomainName,
			Version: AuthDomainVersion,
			Salt:    hexutil.Encode(salt),
		},
		Message: apitypes.TypedDataMessage{
			"action":   action,
			"investor": investor.String(),
			"amount":   math.NewHexOrDecimal256(int64(amount)),
			"nonce":    math.NewHexOrDecimal256(int64(nonce)),
			"expiry":   math.NewHexOrDecimal256(expiry),
		},
	}
	digest, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		sdk.Abort("authorization digest failed")
	}
	return digest
}

// verifyAuthorization checks one signed authorization against the configured
// signer. Pure revert/ok outcome; the nonce is consumed by the caller only
// after every other check passed.
func verifyAuthorization(cfg *SaleConfig, action string, investor sdk.Address, amount Amount, args *InvestArgs, now int64) {
	if strings.TrimSpace(args.AuthSig) == "" {
		sdk.Abort("authorization required")
	}
	if args.Expiry < now {
		sdk.Abort("authorization expired")
	}
	if isAuthorizationUsed(investor, args.Nonce) {
		sdk.Abort("authorization replayed")
	}
	sig, err := hexutil.Decode(args.AuthSig)
	if err != nil || len(sig) != 65 {
		sdk.Abort("invalid signature")
	}
	// accept both 27/28 and 0/1 recovery ids
	if sig[64] >= 27 {
		sig = append(append([]byte{}, sig[:64]...), sig[64]-27)
	}
	digest := AuthDigest(getContractId(), action, investor, amount, args.Nonce, args.Expiry)
	pub, err := crypto.SigToPub(digest, sig)
	if err != nil {
		sdk.Abort("invalid signature")
	}
	recovered := crypto.PubkeyToAddress(*pub)
	if recovered != common.HexToAddress(cfg.AuthSigner) {
		sdk.Abort("signer mismatch")
	}
}
