package contract

import (
	"fmt"
	"strings"

	"legion_sales/sdk"
)

// Variant policy. Every instance runs the same lifecycle machine; the kind
// chosen at construction decides which actions exist and what extra rules
// invest and publishing have to obey.

// actionInvest etc. name the gateable surfaces; views are never gated.
const (
	actionInvest          = "invest"
	actionEnd             = "end"
	actionCancel          = "cancel"
	actionRefund          = "refund"
	actionPublishCapital  = "publish_capital"
	actionPublishResults  = "publish_results"
	actionSupplyTokens    = "supply_tokens"
	actionWithdrawCapital = "withdraw_capital"
	actionClaimTokens     = "claim_tokens"
	actionClaimExcess     = "claim_excess"
)

// supportsAction reports whether the instance kind carries the action.
// Capital raises have no token side; distributors have no invest side.
func supportsAction(kind InstanceKind, action string) bool {
	switch kind {
	case KindCapitalRaise:
		switch action {
		case actionPublishResults, actionSupplyTokens, actionClaimTokens:
			return false
		}
		return true
	case KindTokenDistributor:
		switch action {
		case actionPublishResults, actionSupplyTokens, actionClaimTokens:
			return true
		}
		return false
	default:
		return true
	}
}

// requireAction aborts on surfaces a kind does not expose.
func requireAction(kind InstanceKind, action string) {
	if !supportsAction(kind, action) {
		sdk.Abort(fmt.Sprintf("action %s not supported for %s", action, kind))
	}
}

// hasInvestPhase tells the publishing guards whether to wait for the refund
// window; a distributor starts life ready to publish.
func hasInvestPhase(kind InstanceKind) bool {
	return kind != KindTokenDistributor
}

// validateInitConfig runs the per-kind construction rules.
func validateInitConfig(cfg *SaleConfig) {
	if cfg.Kind == KindUnspecified {
		sdk.Abort("invalid sale kind")
	}
	if len(cfg.Name) > MaxNameLength {
		sdk.Abort("sale name too long")
	}
	if !cfg.LegionAdmin.IsValid() || !cfg.ProjectAdmin.IsValid() || !cfg.FeeReceiver.IsValid() {
		sdk.Abort("invalid admin address")
	}
	if cfg.Referrer != "" && !cfg.Referrer.IsValid() {
		sdk.Abort("invalid referrer address")
	}
	if cfg.LegionFeeCapitalBps > BpsDenominator || cfg.LegionFeeTokensBps > BpsDenominator ||
		cfg.ReferrerFeeCapitalBps > BpsDenominator || cfg.ReferrerFeeTokensBps > BpsDenominator {
		sdk.Abort("invalid fee bps")
	}
	// a referrer fee with nowhere to send it would brick settlement later
	if cfg.Referrer == "" && (cfg.ReferrerFeeCapitalBps > 0 || cfg.ReferrerFeeTokensBps > 0) {
		sdk.Abort("referrer fee without referrer")
	}
	if cfg.RefundPeriodSeconds > MaxRefundPeriodSeconds {
		sdk.Abort("refund period too long")
	}
	if cfg.MinRaise < 0 || cfg.MaxRaise < 0 || cfg.MinInvest < 0 {
		sdk.Abort("invalid raise targets")
	}
	if cfg.MaxRaise > 0 && cfg.MinRaise > cfg.MaxRaise {
		sdk.Abort("invalid raise targets")
	}
	if cfg.InvestRoot != "" {
		cfg.InvestRoot = decodeRoot(cfg.InvestRoot)
	}
	if cfg.AuthSigner != "" && !isHexAddress(cfg.AuthSigner) {
		sdk.Abort("invalid auth signer")
	}

	if hasInvestPhase(cfg.Kind) {
		if !cfg.RaiseToken.IsValid() {
			sdk.Abort("invalid raise token")
		}
	}
	if cfg.AskToken.IsSet() && !cfg.AskToken.IsValid() {
		sdk.Abort("invalid ask token")
	}

	switch cfg.Kind {
	case KindFixedPrice:
		if cfg.TokenPrice <= 0 {
			sdk.Abort("invalid token price")
		}
		requireSaleWindow(cfg)
	case KindSealedBidAuction:
		requireSaleWindow(cfg)
	case KindPreLiquidApproved:
		// approved pre-liquid sales admit investors purely via signer
		// authorization, so one must be configured up front
		if cfg.AuthSigner == "" {
			sdk.Abort("auth signer required")
		}
	case KindTokenDistributor:
		if !cfg.AskToken.IsSet() {
			sdk.Abort("invalid ask token")
		}
	}
}

// requireSaleWindow enforces a concrete raise window for the timed kinds.
// Pre-liquid sales may run open-ended (EndTime 0) until end() is called.
func requireSaleWindow(cfg *SaleConfig) {
	if cfg.StartTime <= 0 || cfg.EndTime <= cfg.StartTime {
		sdk.Abort("invalid sale window")
	}
}

// applyInvestPolicy runs the variant-specific invest rules after the shared
// guards passed and before the ledger mutation.
func applyInvestPolicy(cfg *SaleConfig, pos *InvestorPosition, args *InvestArgs) {
	switch cfg.Kind {
	case KindSealedBidAuction:
		bid := strings.TrimSpace(args.SealedBid)
		if bid == "" {
			sdk.Abort("sealed bid required")
		}
		if len(bid) > MaxSealedBidLength {
			sdk.Abort("sealed bid too large")
		}
		// latest bid wins; re-investing replaces the stored blob
		pos.SealedBid = bid
	case KindFixedPrice:
		if args.Amount%cfg.TokenPrice != 0 {
			sdk.Abort("amount not a price multiple")
		}
	}
}

// isHexAddress is a light shape check for configured eth-style signers.
func isHexAddress(s string) bool {
	if !strings.HasPrefix(s, "0x") || len(s) != 42 {
		return false
	}
	for _, c := range s[2:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
