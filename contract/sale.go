package contract

import (
	"fmt"

	"legion_sales/sdk"
)

// Shared lifecycle state machine. Every entrypoint re-checks the phase
// guards against the state visible at call entry; the host serializes
// transactions, so there are no read-modify-write hazards, and an abort
// rolls the whole operation back.

// -----------------------------------------------------------------------------
// Invest
// -----------------------------------------------------------------------------

// Invest books capital into the sale. Only while active, not paused, not
// canceled and inside the configured window; eligibility runs through every
// configured mechanism (Merkle membership, signer authorization) plus the
// variant policy before any state changes.
//
//go:wasmexport sale_invest
func Invest(payload *string) *string {
	cfg := mustLoadSaleConfig()
	requireAction(cfg.Kind, actionInvest)
	st := mustLoadSaleStatus()
	args := decodeArgs[InvestArgs](payload, "invest")
	investor := getSenderAddress()
	now := nowUnix()

	if st.Canceled {
		sdk.Abort("sale canceled")
	}
	if st.Paused {
		sdk.Abort("sale paused")
	}
	if st.EndedAt > 0 || now < cfg.StartTime || (cfg.EndTime > 0 && now > cfg.EndTime) {
		sdk.Abort("sale not active")
	}
	if args.Amount <= 0 {
		sdk.Abort("invalid amount")
	}
	if cfg.MinInvest > 0 && args.Amount < cfg.MinInvest {
		sdk.Abort("amount below minimum")
	}

	pos := loadOrCreatePosition(investor, now)

	// eligibility: all configured mechanisms must pass, then the variant
	// policy, before the ledger is touched
	if cfg.InvestRoot != "" {
		requireProof(cfg.InvestRoot, leafHash(investor, args.MaxAllocation, purposeInvest), args.Proof)
		if pos.CapitalInvested+args.Amount > args.MaxAllocation {
			sdk.Abort("allocation exceeded")
		}
	}
	if cfg.AuthSigner != "" {
		verifyAuthorization(cfg, AuthActionInvest, investor, args.Amount, args, now)
		markAuthorizationUsed(investor, args.Nonce)
	}
	applyInvestPolicy(cfg, pos, args)

	requireTransferIntent(cfg.RaiseToken, args.Amount)
	recordInvestment(cfg, st, pos, args.Amount, now)
	abortOnError(sdk.TokenDraw(cfg.RaiseToken, AmountToInt64(args.Amount)), "capital draw failed")

	savePosition(pos)
	saveSaleStatus(st)
	emitInvestEvent(investor.String(), args.Amount, st.TotalCapitalInvested)

	return strptr(fmt.Sprintf("invested %d", args.Amount))
}

// -----------------------------------------------------------------------------
// End
// -----------------------------------------------------------------------------

// EndSale closes the raise window and starts the refund-period timer.
//
//go:wasmexport sale_end
func EndSale(payload *string) *string {
	cfg := mustLoadSaleConfig()
	requireAction(cfg.Kind, actionEnd)
	requireLegionOrProject(cfg)
	st := mustLoadSaleStatus()

	if st.Canceled {
		sdk.Abort("sale canceled")
	}
	if st.EndedAt > 0 {
		sdk.Abort("sale already ended")
	}

	st.EndedAt = nowUnix()
	saveSaleStatus(st)
	emitSaleEndedEvent(st.EndedAt, getSenderAddress().String())

	return strptr("sale ended")
}

// -----------------------------------------------------------------------------
// Cancel
// -----------------------------------------------------------------------------

// CancelSale aborts the sale. Permanently impossible once tokens are in
// escrow or the project already took the capital; after it only refunds run.
//
//go:wasmexport sale_cancel
func CancelSale(payload *string) *string {
	cfg := mustLoadSaleConfig()
	requireAction(cfg.Kind, actionCancel)
	requireProject(cfg)
	st := mustLoadSaleStatus()

	if st.TokensSupplied {
		sdk.Abort("cannot cancel after tokens supplied")
	}
	if st.CapitalWithdrawn {
		sdk.Abort("cannot cancel after capital withdrawal")
	}
	if st.Canceled {
		sdk.Abort("sale already canceled")
	}

	st.Canceled = true
	saveSaleStatus(st)
	emitSaleCanceledEvent(getSenderAddress().String())

	return strptr("sale canceled")
}

// -----------------------------------------------------------------------------
// Refund
// -----------------------------------------------------------------------------

// Refund returns the caller's full invested capital and zeroes the
// position. Available while the sale is still active (cold feet) or after
// cancellation; never in between.
//
//go:wasmexport sale_refund
func Refund(payload *string) *string {
	cfg := mustLoadSaleConfig()
	requireAction(cfg.Kind, actionRefund)
	st := mustLoadSaleStatus()
	investor := getSenderAddress()

	if !st.Canceled && st.EndedAt > 0 {
		sdk.Abort("refund unavailable")
	}

	pos := mustLoadPosition(investor)
	amount := recordRefund(st, pos)
	abortOnError(sdk.TokenTransfer(cfg.RaiseToken, investor, AmountToInt64(amount)), "capital return failed")

	saveSaleStatus(st)
	emitRefundEvent(investor.String(), amount)

	return strptr(fmt.Sprintf("refunded %d", amount))
}

// -----------------------------------------------------------------------------
// Pause / Unpause
// -----------------------------------------------------------------------------

// PauseSale is the legion emergency brake; it only blocks new investments.
//
//go:wasmexport sale_pause
func PauseSale(payload *string) *string {
	cfg := mustLoadSaleConfig()
	requireLegion(cfg)
	st := mustLoadSaleStatus()

	if st.Paused {
		sdk.Abort("sale already paused")
	}
	st.Paused = true
	saveSaleStatus(st)
	emitPauseEvent(true, getSenderAddress().String())

	return strptr("sale paused")
}

//go:wasmexport sale_unpause
func UnpauseSale(payload *string) *string {
	cfg := mustLoadSaleConfig()
	requireLegion(cfg)
	st := mustLoadSaleStatus()

	if !st.Paused {
		sdk.Abort("sale not paused")
	}
	st.Paused = false
	saveSaleStatus(st)
	emitPauseEvent(false, getSenderAddress().String())

	return strptr("sale unpaused")
}

// -----------------------------------------------------------------------------
// Config updates
// -----------------------------------------------------------------------------

// UpdateSaleConfig lets legion rotate the eligibility surface (invest root,
// auth signer) or extend the window while the sale is still active.
//
//go:wasmexport sale_update_config
func UpdateSaleConfig(payload *string) *string {
	cfg := mustLoadSaleConfig()
	requireLegion(cfg)
	st := mustLoadSaleStatus()
	args := decodeArgs[UpdateConfigArgs](payload, "config update")

	if st.Canceled {
		sdk.Abort("sale canceled")
	}
	if st.EndedAt > 0 {
		sdk.Abort("sale already ended")
	}

	if args.EndTime != nil {
		if *args.EndTime <= nowUnix() {
			sdk.Abort("invalid sale window")
		}
		emitConfigUpdatedEvent("end", fmt.Sprintf("%d", cfg.EndTime), fmt.Sprintf("%d", *args.EndTime))
		cfg.EndTime = *args.EndTime
	}
	if args.InvestRoot != nil {
		root := ""
		if *args.InvestRoot != "" {
			root = decodeRoot(*args.InvestRoot)
		}
		emitConfigUpdatedEvent("investRoot", cfg.InvestRoot, root)
		cfg.InvestRoot = root
	}
	if args.AuthSigner != nil {
		if *args.AuthSigner != "" && !isHexAddress(*args.AuthSigner) {
			sdk.Abort("invalid auth signer")
		}
		if cfg.Kind == KindPreLiquidApproved && *args.AuthSigner == "" {
			sdk.Abort("auth signer required")
		}
		emitConfigUpdatedEvent("authSigner", cfg.AuthSigner, *args.AuthSigner)
		cfg.AuthSigner = *args.AuthSigner
	}

	saveSaleConfig(cfg)
	return strptr("config updated")
}

// -----------------------------------------------------------------------------
// Emergency withdraw
// -----------------------------------------------------------------------------

// EmergencyWithdraw is the legion-only escape hatch for stuck funds; it
// requires the sale to be paused first so it cannot race normal flows.
//
//go:wasmexport sale_emergency_withdraw
func EmergencyWithdraw(payload *string) *string {
	cfg := mustLoadSaleConfig()
	requireLegion(cfg)
	st := mustLoadSaleStatus()
	args := decodeArgs[EmergencyWithdrawArgs](payload, "emergency withdraw")

	if !st.Paused {
		sdk.Abort("sale not paused")
	}
	to := sdk.Address(args.To)
	if !to.IsValid() {
		sdk.Abort("invalid recipient")
	}
	token := sdk.Token(args.Token)
	if !token.IsValid() {
		sdk.Abort("invalid token")
	}
	if args.Amount <= 0 {
		sdk.Abort("invalid amount")
	}

	abortOnError(sdk.TokenTransfer(token, to, AmountToInt64(args.Amount)), "emergency transfer failed")
	emitEmergencyWithdrawEvent(to.String(), token.String(), args.Amount)

	return strptr("emergency withdrawal done")
}
