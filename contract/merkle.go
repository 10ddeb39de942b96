package contract

import (
	"bytes"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"legion_sales/sdk"
)

// Merkle membership verification. Leaves commit to (investor, amount,
// purpose); pairs are folded smaller-hash-first so a proof has exactly one
// valid ordering. Verification is pure - all mutation happens in callers.

// leafHash double-hashes the packed entry, keeping leaves out of the
// internal-node hash domain.
func leafHash(investor sdk.Address, amount Amount, purpose byte) []byte {
	addrStr := investor.String()
	data := make([]byte, 0, len(addrStr)+9)
	data = append(data, addrStr...)
	data = packU64LE(uint64(amount), data)
	data = append(data, purpose)
	return crypto.Keccak256(crypto.Keccak256(data))
}

// decodeRoot validates a published root and normalizes it for storage.
func decodeRoot(root string) string {
	b, err := hexutil.Decode(strings.TrimSpace(root))
	if err != nil || len(b) != 32 {
		sdk.Abort("invalid merkle root")
	}
	return hexutil.Encode(b)
}

// verifyProof folds the sibling path up to the root published for this
// purpose. Stale proofs fail here the moment the root is rotated.
func verifyProof(root string, leaf []byte, proof []string) bool {
	if root == "" || len(proof) > MaxProofDepth {
		return false
	}
	node := leaf
	for _, sibHex := range proof {
		sib, err := hexutil.Decode(sibHex)
		if err != nil || len(sib) != 32 {
			return false
		}
		if bytes.Compare(node, sib) <= 0 {
			node = crypto.Keccak256(node, sib)
		} else {
			node = crypto.Keccak256(sib, node)
		}
	}
	return hexutil.Encode(node) == strings.ToLower(root)
}

// requireProof is the abort-flavored wrapper used by the entrypoints.
func requireProof(root string, leaf []byte, proof []string) {
	if root == "" {
		sdk.Abort("no merkle root published")
	}
	if !verifyProof(root, leaf, proof) {
		sdk.Abort("invalid proof")
	}
}
