////////////////////////////////////////////////////////////////////////////////
// Legion Sales: token sale contract suite for the vsc network
////////////////////////////////////////////////////////////////////////////////

package contract

import (
	"fmt"

	"legion_sales/sdk"
)

// -----------------------------------------------------------------------------
// Contract Initialization
// -----------------------------------------------------------------------------

// ContractInit is the one-time initialize the clone factory calls right
// after deploying an instance. The payload fixes the sale kind, tokens,
// window, admins and fees for the life of the instance.
//
//go:wasmexport contract_init
func ContractInit(payload *string) *string {
	if isContractInitialized() {
		sdk.Abort("contract already initialized")
	}

	args := decodeArgs[InitArgs](payload, "init")

	cfg := &SaleConfig{
		Kind:                  parseInstanceKind(args.Kind),
		Name:                  args.Name,
		RaiseToken:            sdk.Token(args.RaiseToken),
		AskToken:              sdk.Token(args.AskToken),
		StartTime:             args.StartTime,
		EndTime:               args.EndTime,
		RefundPeriodSeconds:   args.RefundPeriodSeconds,
		MinRaise:              args.MinRaise,
		MaxRaise:              args.MaxRaise,
		MinInvest:             args.MinInvest,
		TokenPrice:            args.TokenPrice,
		LegionAdmin:           sdk.Address(args.LegionAdmin),
		ProjectAdmin:          sdk.Address(args.ProjectAdmin),
		FeeReceiver:           sdk.Address(args.FeeReceiver),
		Referrer:              sdk.Address(args.Referrer),
		LegionFeeCapitalBps:   args.LegionFeeCapitalBps,
		LegionFeeTokensBps:    args.LegionFeeTokensBps,
		ReferrerFeeCapitalBps: args.ReferrerFeeCapitalBps,
		ReferrerFeeTokensBps:  args.ReferrerFeeTokensBps,
		InvestRoot:            args.InvestRoot,
		AuthSigner:            args.AuthSigner,
	}
	if cfg.RefundPeriodSeconds <= 0 {
		cfg.RefundPeriodSeconds = FallbackRefundPeriodSeconds
	}
	validateInitConfig(cfg)

	saveSaleConfig(cfg)
	saveSaleStatus(&SaleStatus{})
	markContractInitialized()

	emitInitEvent(cfg.Kind, cfg.Name, getSenderAddress().String())

	return strptr(fmt.Sprintf("initialized %s sale", cfg.Kind))
}
