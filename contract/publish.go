package contract

import (
	"fmt"

	"legion_sales/sdk"
)

// Settlement publishing and capital/token movement. Everything here is
// gated on the refund window having elapsed (lazily recomputed), so
// investors always get their unconditional exit before results bind.

// -----------------------------------------------------------------------------
// Publish raised capital
// -----------------------------------------------------------------------------

// PublishCapitalRaised records the accepted raise figure and the Merkle
// root for excess-capital claims. Fees are always computed from this
// published figure later, never re-derived from raw totals.
//
//go:wasmexport sale_publish_capital
func PublishCapitalRaised(payload *string) *string {
	cfg := mustLoadSaleConfig()
	requireAction(cfg.Kind, actionPublishCapital)
	requireLegion(cfg)
	st := mustLoadSaleStatus()
	args := decodeArgs[PublishCapitalArgs](payload, "publish capital")

	if st.Canceled {
		sdk.Abort("sale canceled")
	}
	if !refundPeriodOver(cfg, st, nowUnix()) {
		sdk.Abort("refund period not over")
	}
	if st.CapitalPublished {
		sdk.Abort("capital already published")
	}
	// an under-raised sale never settles; the project cancels it and
	// investors take the refund path instead
	if cfg.MinRaise > 0 && st.TotalCapitalInvested < cfg.MinRaise {
		sdk.Abort("minimum raise not met")
	}
	if args.CapitalRaised <= 0 || args.CapitalRaised > st.TotalCapitalInvested {
		sdk.Abort("published capital exceeds invested")
	}

	st.PublishedCapitalRaised = args.CapitalRaised
	if args.ExcessRoot != "" {
		st.ExcessRoot = decodeRoot(args.ExcessRoot)
	}
	st.CapitalPublished = true
	saveSaleStatus(st)
	emitCapitalPublishedEvent(args.CapitalRaised)

	return strptr("capital published")
}

// -----------------------------------------------------------------------------
// Publish sale results
// -----------------------------------------------------------------------------

// PublishSaleResults commits the token-claim Merkle root, the total
// allocation, and (for pre-TGE sales) the ask token. Sealed-bid auctions
// additionally record the off-chain clearing price.
//
//go:wasmexport sale_publish_results
func PublishSaleResults(payload *string) *string {
	cfg := mustLoadSaleConfig()
	requireAction(cfg.Kind, actionPublishResults)
	requireLegion(cfg)
	st := mustLoadSaleStatus()
	args := decodeArgs[PublishResultsArgs](payload, "publish results")

	if st.Canceled {
		sdk.Abort("sale canceled")
	}
	if hasInvestPhase(cfg.Kind) && !refundPeriodOver(cfg, st, nowUnix()) {
		sdk.Abort("refund period not over")
	}
	if st.ResultsPublished {
		sdk.Abort("results already published")
	}
	if args.TokensAllocated <= 0 {
		sdk.Abort("invalid token allocation")
	}
	if cfg.Kind == KindSealedBidAuction && args.ClearingPrice <= 0 {
		sdk.Abort("clearing price required")
	}

	if !cfg.AskToken.IsSet() {
		askToken := sdk.Token(args.AskToken)
		if !askToken.IsValid() {
			sdk.Abort("invalid ask token")
		}
		cfg.AskToken = askToken
		saveSaleConfig(cfg)
	}

	st.ClaimRoot = decodeRoot(args.ClaimRoot)
	st.TotalTokensAllocated = args.TokensAllocated
	st.ClearingPrice = args.ClearingPrice
	st.ResultsPublished = true
	saveSaleStatus(st)
	emitResultsPublishedEvent(args.TokensAllocated, args.ClearingPrice)

	return strptr("results published")
}

// -----------------------------------------------------------------------------
// Supply tokens
// -----------------------------------------------------------------------------

// SupplyTokens moves the published allocation plus both token fees into
// escrow. The amounts must match the published figures exactly; once this
// succeeds the sale can never be canceled again.
//
//go:wasmexport sale_supply_tokens
func SupplyTokens(payload *string) *string {
	cfg := mustLoadSaleConfig()
	requireAction(cfg.Kind, actionSupplyTokens)
	requireProject(cfg)
	st := mustLoadSaleStatus()
	args := decodeArgs[SupplyTokensArgs](payload, "supply tokens")

	if st.Canceled {
		sdk.Abort("sale canceled")
	}
	if !st.ResultsPublished {
		sdk.Abort("results not published")
	}
	if st.TokensSupplied {
		sdk.Abort("tokens already supplied")
	}

	legionFee := feeOf(st.TotalTokensAllocated, cfg.LegionFeeTokensBps)
	referrerFee := feeOf(st.TotalTokensAllocated, cfg.ReferrerFeeTokensBps)
	if args.Amount != st.TotalTokensAllocated || args.LegionFee != legionFee || args.ReferrerFee != referrerFee {
		sdk.Abort("invalid token amount")
	}

	total := args.Amount + legionFee + referrerFee
	requireTransferIntent(cfg.AskToken, total)
	abortOnError(sdk.TokenDraw(cfg.AskToken, AmountToInt64(total)), "token supply failed")
	if legionFee > 0 {
		abortOnError(sdk.TokenTransfer(cfg.AskToken, cfg.FeeReceiver, AmountToInt64(legionFee)), "legion fee transfer failed")
	}
	if referrerFee > 0 {
		abortOnError(sdk.TokenTransfer(cfg.AskToken, cfg.Referrer, AmountToInt64(referrerFee)), "referrer fee transfer failed")
	}

	st.TokensSupplied = true
	saveSaleStatus(st)
	emitTokensSuppliedEvent(args.Amount, legionFee, referrerFee)

	return strptr("tokens supplied")
}

// -----------------------------------------------------------------------------
// Withdraw raised capital
// -----------------------------------------------------------------------------

// WithdrawRaisedCapital pays the project the published raise minus the
// basis-point fees, exactly once.
//
//go:wasmexport sale_withdraw_capital
func WithdrawRaisedCapital(payload *string) *string {
	cfg := mustLoadSaleConfig()
	requireAction(cfg.Kind, actionWithdrawCapital)
	requireProject(cfg)
	st := mustLoadSaleStatus()

	if st.Canceled {
		sdk.Abort("sale canceled")
	}
	if !refundPeriodOver(cfg, st, nowUnix()) {
		sdk.Abort("refund period not over")
	}
	if !st.CapitalPublished {
		sdk.Abort("capital not published")
	}
	if st.CapitalWithdrawn {
		sdk.Abort("capital already withdrawn")
	}

	capital := st.PublishedCapitalRaised
	legionFee := feeOf(capital, cfg.LegionFeeCapitalBps)
	referrerFee := feeOf(capital, cfg.ReferrerFeeCapitalBps)
	payout := capital - legionFee - referrerFee

	st.CapitalWithdrawn = true
	saveSaleStatus(st)

	abortOnError(sdk.TokenTransfer(cfg.RaiseToken, cfg.ProjectAdmin, AmountToInt64(payout)), "capital transfer failed")
	if legionFee > 0 {
		abortOnError(sdk.TokenTransfer(cfg.RaiseToken, cfg.FeeReceiver, AmountToInt64(legionFee)), "legion fee transfer failed")
	}
	if referrerFee > 0 {
		abortOnError(sdk.TokenTransfer(cfg.RaiseToken, cfg.Referrer, AmountToInt64(referrerFee)), "referrer fee transfer failed")
	}
	emitCapitalWithdrawnEvent(cfg.ProjectAdmin.String(), payout, legionFee, referrerFee)

	return strptr(fmt.Sprintf("withdrew %d", payout))
}
