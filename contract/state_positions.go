package contract

import (
	"encoding/json"

	"legion_sales/sdk"
)

// savePosition writes the encoded position blob.
func savePosition(pos *InvestorPosition) {
	sdk.StateSetObject(positionKey(pos.Investor), ToJSON(pos, "investor position"))
}

// loadPosition returns the position and an explicit exists flag; a zero
// value is never treated as an existing record.
func loadPosition(addr sdk.Address) (*InvestorPosition, bool) {
	ptr := sdk.StateGetObject(positionKey(addr))
	if ptr == nil || *ptr == "" {
		return nil, false
	}
	return FromJSON[InvestorPosition](*ptr, "investor position"), true
}

// mustLoadPosition aborts when the caller never invested.
func mustLoadPosition(addr sdk.Address) *InvestorPosition {
	pos, ok := loadPosition(addr)
	if !ok {
		sdk.Abort("unknown investor position")
	}
	return pos
}

// deletePosition zeroes an investor's record and drops it from the index.
func deletePosition(addr sdk.Address) {
	sdk.StateDeleteObject(positionKey(addr))
	removeInvestorFromIndex(addr)
}

// -----------------------------------------------------------------------------
// Investor enumeration index
// -----------------------------------------------------------------------------

// addInvestorToIndex keeps the enumeration list duplicate-free.
func addInvestorToIndex(addr sdk.Address) {
	investors := listInvestors()
	for _, v := range investors {
		if v == addr.String() {
			return
		}
	}
	investors = append(investors, addr.String())
	b, _ := json.Marshal(investors)
	sdk.StateSetObject(investorIndexKey(), string(b))
}

func removeInvestorFromIndex(addr sdk.Address) {
	investors := listInvestors()
	out := make([]string, 0, len(investors))
	for _, v := range investors {
		if v != addr.String() {
			out = append(out, v)
		}
	}
	b, _ := json.Marshal(out)
	sdk.StateSetObject(investorIndexKey(), string(b))
}

func listInvestors() []string {
	ptr := sdk.StateGetObject(investorIndexKey())
	if ptr == nil {
		return []string{}
	}
	var investors []string
	if err := json.Unmarshal([]byte(*ptr), &investors); err != nil {
		return []string{}
	}
	return investors
}

// -----------------------------------------------------------------------------
// Consumed signer authorizations
// -----------------------------------------------------------------------------

func isAuthorizationUsed(addr sdk.Address, nonce uint64) bool {
	ptr := sdk.StateGetObject(usedAuthKey(addr, nonce))
	return ptr != nil && *ptr != ""
}

func markAuthorizationUsed(addr sdk.Address, nonce uint64) {
	sdk.StateSetObject(usedAuthKey(addr, nonce), "1")
}
