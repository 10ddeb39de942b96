package contract

import "legion_sales/sdk"

////////////////////////////////////////////////////////////////////////////////
// Sale State Persistence helpers
////////////////////////////////////////////////////////////////////////////////

// isContractInitialized reports whether contract_init already ran.
func isContractInitialized() bool {
	ptr := sdk.StateGetObject(initFlagKey())
	return ptr != nil && *ptr != ""
}

// markContractInitialized flips the one-time init flag.
func markContractInitialized() {
	sdk.StateSetObject(initFlagKey(), "1")
}

func saveSaleConfig(cfg *SaleConfig) {
	sdk.StateSetObject(saleConfigKey(), ToJSON(cfg, "sale config"))
}

// mustLoadSaleConfig aborts when the instance was never initialized; every
// entrypoint except contract_init goes through here first.
func mustLoadSaleConfig() *SaleConfig {
	ptr := sdk.StateGetObject(saleConfigKey())
	if ptr == nil || *ptr == "" {
		sdk.Abort("sale not initialized")
	}
	return FromJSON[SaleConfig](*ptr, "sale config")
}

func saveSaleStatus(st *SaleStatus) {
	sdk.StateSetObject(saleStatusKey(), ToJSON(st, "sale status"))
}

func mustLoadSaleStatus() *SaleStatus {
	ptr := sdk.StateGetObject(saleStatusKey())
	if ptr == nil || *ptr == "" {
		sdk.Abort("sale not initialized")
	}
	return FromJSON[SaleStatus](*ptr, "sale status")
}

// -----------------------------------------------------------------------------
// Derived phase predicates
// -----------------------------------------------------------------------------

// refundPeriodOver recomputes the lazy expiry predicate on every call; there
// is no explicit transition for it.
func refundPeriodOver(cfg *SaleConfig, st *SaleStatus, now int64) bool {
	return st.EndedAt > 0 && now >= st.EndedAt+cfg.RefundPeriodSeconds
}

// currentPhase derives the lifecycle phase from the status flags and clock.
func currentPhase(cfg *SaleConfig, st *SaleStatus, now int64) SalePhase {
	switch {
	case st.Canceled:
		return PhaseCanceled
	case st.TokensSupplied:
		return PhaseTokensSupplied
	case st.ResultsPublished:
		return PhaseResultsPublished
	case st.EndedAt > 0 && !refundPeriodOver(cfg, st, now):
		return PhaseRefundPeriod
	case st.EndedAt > 0:
		return PhaseSettlement
	default:
		return PhaseActive
	}
}
