package contract

import "legion_sales/sdk"

// Settlement ledger: every position mutation funnels through these helpers
// so the aggregate totals and the per-investor records can never drift
// apart. Callers run phase guards and eligibility checks first; the ledger
// enforces only accounting invariants.

// loadOrCreatePosition returns an existing position or a fresh zeroed one.
func loadOrCreatePosition(investor sdk.Address, now int64) *InvestorPosition {
	if pos, ok := loadPosition(investor); ok {
		return pos
	}
	return &InvestorPosition{
		Investor:        investor,
		FirstInvestedAt: now,
	}
}

// recordInvestment books new capital into the position and the aggregate.
func recordInvestment(cfg *SaleConfig, st *SaleStatus, pos *InvestorPosition, amount Amount, now int64) {
	if amount <= 0 {
		sdk.Abort("invalid amount")
	}
	if cfg.MaxRaise > 0 && st.TotalCapitalInvested+amount > cfg.MaxRaise {
		sdk.Abort("raise cap exceeded")
	}
	if pos.CapitalInvested == 0 {
		st.InvestorCount++
		addInvestorToIndex(pos.Investor)
	}
	pos.CapitalInvested += amount
	pos.LastInvestedAt = now
	st.TotalCapitalInvested += amount
}

// recordRefund zeroes the position and returns the amount owed back. A
// position that already settled its token allocation can no longer refund.
func recordRefund(st *SaleStatus, pos *InvestorPosition) Amount {
	if pos.HasSettled {
		sdk.Abort("allocation already claimed")
	}
	amount := pos.CapitalInvested
	if amount <= 0 {
		sdk.Abort("already refunded")
	}
	st.TotalCapitalInvested -= amount
	if st.InvestorCount > 0 {
		st.InvestorCount--
	}
	deletePosition(pos.Investor)
	return amount
}

// recordExcessClaim returns over-subscribed capital once per investor.
func recordExcessClaim(st *SaleStatus, pos *InvestorPosition, amount Amount) {
	if pos.HasClaimedExcess {
		sdk.Abort("excess already claimed")
	}
	if amount <= 0 || amount > pos.CapitalInvested {
		sdk.Abort("excess exceeds invested capital")
	}
	pos.CapitalInvested -= amount
	pos.AmountRefunded += amount
	pos.HasClaimedExcess = true
	st.TotalCapitalInvested -= amount
}

// recordTokenClaim settles the investor's proven allocation exactly once.
func recordTokenClaim(st *SaleStatus, pos *InvestorPosition, amount Amount) {
	if pos.HasSettled {
		sdk.Abort("allocation already claimed")
	}
	if amount <= 0 {
		sdk.Abort("invalid amount")
	}
	if st.TokensClaimed+amount > st.TotalTokensAllocated {
		sdk.Abort("claim exceeds remaining allocation")
	}
	pos.AmountClaimed = amount
	pos.HasSettled = true
	st.TokensClaimed += amount
}

// feeOf computes a basis-point fee without overflowing int64 on large
// amounts: floor(amount*bps/10000) == quot*bps + rem*bps/10000.
func feeOf(amount Amount, bps uint64) Amount {
	quot := int64(amount) / BpsDenominator
	rem := int64(amount) % BpsDenominator
	return Amount(quot*int64(bps) + rem*int64(bps)/BpsDenominator)
}
