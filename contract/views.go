package contract

import (
	"github.com/CosmWasm/tinyjson/jwriter"

	"legion_sales/sdk"
)

// Read-only views. Built with the tinyjson writer instead of reflection so
// the wasm build stays lean; field order is stable for explorers that diff
// responses.

// buildJSON finalizes a writer into the entrypoint return string.
func buildJSON(w *jwriter.Writer) *string {
	data, err := w.BuildBytes()
	if err != nil {
		sdk.Abort("failed to build view")
	}
	return strptr(string(data))
}

// GetSaleConfig returns the full instance configuration.
//
//go:wasmexport sale_get_config
func GetSaleConfig(payload *string) *string {
	cfg := mustLoadSaleConfig()

	w := &jwriter.Writer{}
	w.RawByte('{')
	w.RawString(`"kind":`)
	w.String(cfg.Kind.String())
	w.RawString(`,"name":`)
	w.String(cfg.Name)
	w.RawString(`,"raiseToken":`)
	w.String(cfg.RaiseToken.String())
	w.RawString(`,"askToken":`)
	w.String(cfg.AskToken.String())
	w.RawString(`,"start":`)
	w.Int64(cfg.StartTime)
	w.RawString(`,"end":`)
	w.Int64(cfg.EndTime)
	w.RawString(`,"refundSecs":`)
	w.Int64(cfg.RefundPeriodSeconds)
	w.RawString(`,"minRaise":`)
	w.Int64(int64(cfg.MinRaise))
	w.RawString(`,"maxRaise":`)
	w.Int64(int64(cfg.MaxRaise))
	w.RawString(`,"minInvest":`)
	w.Int64(int64(cfg.MinInvest))
	w.RawString(`,"price":`)
	w.Int64(int64(cfg.TokenPrice))
	w.RawString(`,"legion":`)
	w.String(cfg.LegionAdmin.String())
	w.RawString(`,"project":`)
	w.String(cfg.ProjectAdmin.String())
	w.RawString(`,"feeReceiver":`)
	w.String(cfg.FeeReceiver.String())
	w.RawString(`,"referrer":`)
	w.String(cfg.Referrer.String())
	w.RawString(`,"legionFeeCapBps":`)
	w.Uint64(cfg.LegionFeeCapitalBps)
	w.RawString(`,"legionFeeTokBps":`)
	w.Uint64(cfg.LegionFeeTokensBps)
	w.RawString(`,"referrerFeeCapBps":`)
	w.Uint64(cfg.ReferrerFeeCapitalBps)
	w.RawString(`,"referrerFeeTokBps":`)
	w.Uint64(cfg.ReferrerFeeTokensBps)
	w.RawString(`,"investRoot":`)
	w.String(cfg.InvestRoot)
	w.RawString(`,"authSigner":`)
	w.String(cfg.AuthSigner)
	w.RawByte('}')

	return buildJSON(w)
}

// GetSaleStatus returns the mutable state plus the derived phase.
//
//go:wasmexport sale_get_status
func GetSaleStatus(payload *string) *string {
	cfg := mustLoadSaleConfig()
	st := mustLoadSaleStatus()
	now := nowUnix()

	w := &jwriter.Writer{}
	w.RawByte('{')
	w.RawString(`"phase":`)
	w.String(currentPhase(cfg, st, now).String())
	w.RawString(`,"endedAt":`)
	w.Int64(st.EndedAt)
	w.RawString(`,"refundPeriodOver":`)
	w.Bool(refundPeriodOver(cfg, st, now))
	w.RawString(`,"canceled":`)
	w.Bool(st.Canceled)
	w.RawString(`,"capitalPublished":`)
	w.Bool(st.CapitalPublished)
	w.RawString(`,"resultsPublished":`)
	w.Bool(st.ResultsPublished)
	w.RawString(`,"tokensSupplied":`)
	w.Bool(st.TokensSupplied)
	w.RawString(`,"capitalWithdrawn":`)
	w.Bool(st.CapitalWithdrawn)
	w.RawString(`,"paused":`)
	w.Bool(st.Paused)
	w.RawString(`,"totalInvested":`)
	w.Int64(int64(st.TotalCapitalInvested))
	w.RawString(`,"publishedCapital":`)
	w.Int64(int64(st.PublishedCapitalRaised))
	w.RawString(`,"allocated":`)
	w.Int64(int64(st.TotalTokensAllocated))
	w.RawString(`,"tokensClaimed":`)
	w.Int64(int64(st.TokensClaimed))
	w.RawString(`,"clearingPrice":`)
	w.Int64(int64(st.ClearingPrice))
	w.RawString(`,"claimRoot":`)
	w.String(st.ClaimRoot)
	w.RawString(`,"excessRoot":`)
	w.String(st.ExcessRoot)
	w.RawString(`,"investors":`)
	w.Uint64(st.InvestorCount)
	w.RawByte('}')

	return buildJSON(w)
}

// GetInvestorPosition returns one investor's settlement record.
//
//go:wasmexport sale_get_position
func GetInvestorPosition(payload *string) *string {
	mustLoadSaleConfig()
	args := decodeArgs[PositionQueryArgs](payload, "position query")
	pos := mustLoadPosition(sdk.Address(args.Investor))

	w := &jwriter.Writer{}
	w.RawByte('{')
	w.RawString(`"investor":`)
	w.String(pos.Investor.String())
	w.RawString(`,"invested":`)
	w.Int64(int64(pos.CapitalInvested))
	w.RawString(`,"claimed":`)
	w.Int64(int64(pos.AmountClaimed))
	w.RawString(`,"refunded":`)
	w.Int64(int64(pos.AmountRefunded))
	w.RawString(`,"excessClaimed":`)
	w.Bool(pos.HasClaimedExcess)
	w.RawString(`,"settled":`)
	w.Bool(pos.HasSettled)
	w.RawString(`,"sealedBid":`)
	w.String(pos.SealedBid)
	w.RawString(`,"firstAt":`)
	w.Int64(pos.FirstInvestedAt)
	w.RawString(`,"lastAt":`)
	w.Int64(pos.LastInvestedAt)
	w.RawByte('}')

	return buildJSON(w)
}

// GetInvestors lists the open position addresses.
//
//go:wasmexport sale_get_investors
func GetInvestors(payload *string) *string {
	mustLoadSaleConfig()
	investors := listInvestors()

	w := &jwriter.Writer{}
	w.RawByte('[')
	for i, addr := range investors {
		if i > 0 {
			w.RawByte(',')
		}
		w.String(addr)
	}
	w.RawByte(']')

	return buildJSON(w)
}
