package contract

import (
	"fmt"

	"legion_sales/sdk"
)

// Investor-initiated claims. Both surfaces verify Merkle membership against
// their own published root and settle at most once per investor; the
// verification itself is pure, all bookkeeping lives in the ledger.

// -----------------------------------------------------------------------------
// Claim token allocation
// -----------------------------------------------------------------------------

// ClaimTokenAllocation pays out the caller's proven allocation from escrow.
//
//go:wasmexport sale_claim_tokens
func ClaimTokenAllocation(payload *string) *string {
	cfg := mustLoadSaleConfig()
	requireAction(cfg.Kind, actionClaimTokens)
	st := mustLoadSaleStatus()
	args := decodeArgs[ClaimArgs](payload, "claim tokens")
	investor := getSenderAddress()

	if st.Canceled {
		sdk.Abort("sale canceled")
	}
	if !st.ResultsPublished {
		sdk.Abort("results not published")
	}
	if !st.TokensSupplied {
		sdk.Abort("tokens not supplied")
	}

	// distributors have no invest phase, so the position record is created
	// on first claim; sales require one from investing
	var pos *InvestorPosition
	if hasInvestPhase(cfg.Kind) {
		pos = mustLoadPosition(investor)
	} else {
		pos = loadOrCreatePosition(investor, nowUnix())
		if pos.CapitalInvested == 0 && pos.AmountClaimed == 0 {
			st.InvestorCount++
			addInvestorToIndex(investor)
		}
	}

	requireProof(st.ClaimRoot, leafHash(investor, args.Amount, purposeClaim), args.Proof)
	recordTokenClaim(st, pos, args.Amount)
	abortOnError(sdk.TokenTransfer(cfg.AskToken, investor, AmountToInt64(args.Amount)), "token transfer failed")

	savePosition(pos)
	saveSaleStatus(st)
	emitTokenClaimEvent(investor.String(), args.Amount)

	return strptr(fmt.Sprintf("claimed %d", args.Amount))
}

// -----------------------------------------------------------------------------
// Claim excess capital
// -----------------------------------------------------------------------------

// ClaimExcessCapital returns over-subscribed capital against the published
// excess root, once per investor.
//
//go:wasmexport sale_claim_excess
func ClaimExcessCapital(payload *string) *string {
	cfg := mustLoadSaleConfig()
	requireAction(cfg.Kind, actionClaimExcess)
	st := mustLoadSaleStatus()
	args := decodeArgs[ClaimArgs](payload, "claim excess")
	investor := getSenderAddress()

	if st.Canceled {
		sdk.Abort("sale canceled")
	}
	if !st.CapitalPublished {
		sdk.Abort("capital not published")
	}

	pos := mustLoadPosition(investor)
	requireProof(st.ExcessRoot, leafHash(investor, args.Amount, purposeExcess), args.Proof)
	recordExcessClaim(st, pos, args.Amount)
	abortOnError(sdk.TokenTransfer(cfg.RaiseToken, investor, AmountToInt64(args.Amount)), "excess transfer failed")

	savePosition(pos)
	saveSaleStatus(st)
	emitExcessClaimEvent(investor.String(), args.Amount)

	return strptr(fmt.Sprintf("excess returned %d", args.Amount))
}
