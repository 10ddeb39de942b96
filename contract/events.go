package contract

import (
	"fmt"

	"legion_sales/sdk"
)

// emitInitEvent marks the one-time initialize so explorers see the sale kind without state scans.
func emitInitEvent(kind InstanceKind, name string, by string) {
	sdk.Log(fmt.Sprintf(
		"in|k:%s|n:%s|by:%s",
		kind,
		name,
		by,
	))
}

// emitInvestEvent leaves one terse line per investment so totals can be replayed from logs only.
func emitInvestEvent(investor string, amount Amount, total Amount) {
	sdk.Log(fmt.Sprintf(
		"iv|by:%s|am:%d|t:%d",
		investor,
		amount,
		total,
	))
}

// emitSaleEndedEvent signals the refund window opened.
func emitSaleEndedEvent(endedAt int64, by string) {
	sdk.Log(fmt.Sprintf(
		"se|at:%d|by:%s",
		endedAt,
		by,
	))
}

// emitSaleCanceledEvent is the abort-path ping; only refunds remain after it.
func emitSaleCanceledEvent(by string) {
	sdk.Log(fmt.Sprintf(
		"sx|by:%s",
		by,
	))
}

// emitRefundEvent traces capital leaving escrow back to an investor.
func emitRefundEvent(to string, amount Amount) {
	sdk.Log(fmt.Sprintf(
		"rf|to:%s|am:%d",
		to,
		amount,
	))
}

// emitCapitalPublishedEvent records the accepted raise figure fees derive from.
func emitCapitalPublishedEvent(capital Amount) {
	sdk.Log(fmt.Sprintf(
		"pc|am:%d",
		capital,
	))
}

// emitResultsPublishedEvent includes the clearing price so auction audits need no extra reads.
func emitResultsPublishedEvent(allocated Amount, clearingPrice Amount) {
	sdk.Log(fmt.Sprintf(
		"pr|al:%d|cp:%d",
		allocated,
		clearingPrice,
	))
}

// emitTokensSuppliedEvent logs escrow funding plus both fee cuts in one line.
func emitTokensSuppliedEvent(amount Amount, legionFee Amount, referrerFee Amount) {
	sdk.Log(fmt.Sprintf(
		"ts|am:%d|lf:%d|rf:%d",
		amount,
		legionFee,
		referrerFee,
	))
}

// emitCapitalWithdrawnEvent mirrors the supply log for the capital leg.
func emitCapitalWithdrawnEvent(to string, amount Amount, legionFee Amount, referrerFee Amount) {
	sdk.Log(fmt.Sprintf(
		"wc|to:%s|am:%d|lf:%d|rf:%d",
		to,
		amount,
		legionFee,
		referrerFee,
	))
}

// emitTokenClaimEvent traces a settled allocation.
func emitTokenClaimEvent(investor string, amount Amount) {
	sdk.Log(fmt.Sprintf(
		"ct|by:%s|am:%d",
		investor,
		amount,
	))
}

// emitExcessClaimEvent traces over-subscribed capital flowing back.
func emitExcessClaimEvent(investor string, amount Amount) {
	sdk.Log(fmt.Sprintf(
		"ce|by:%s|am:%d",
		investor,
		amount,
	))
}

// emitPauseEvent covers both pause and unpause via the bool flag.
func emitPauseEvent(paused bool, by string) {
	sdk.Log(fmt.Sprintf(
		"sp|p:%t|by:%s",
		paused,
		by,
	))
}

// emitEmergencyWithdrawEvent spells out the escape-hatch transfer for auditors.
func emitEmergencyWithdrawEvent(to string, token string, amount Amount) {
	sdk.Log(fmt.Sprintf(
		"ew|to:%s|tk:%s|am:%d",
		to,
		token,
		amount,
	))
}

// emitConfigUpdatedEvent spells out field diffs so auditors can track sensitive flips.
func emitConfigUpdatedEvent(field string, old string, new string) {
	sdk.Log(fmt.Sprintf(
		"cu|f:%s|old:%s|new:%s",
		field,
		old,
		new,
	))
}
