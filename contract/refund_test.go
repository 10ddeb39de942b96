package contract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"legion_sales/contract"
	"legion_sales/sdk"
)

func TestRefundWhileActive(t *testing.T) {
	host := newSale(t, nil)
	host.Deposit(raiseToken, alice, 1_000)
	mustSucceed(t, investAs(t, alice, 600))

	host.SetSender(alice)
	res := call(t, contract.Refund, nil)
	mustSucceed(t, res)
	assert.Equal(t, "refunded 600", res.Ret)

	assert.EqualValues(t, 1_000, host.BalanceOf(raiseToken, alice))
	assert.EqualValues(t, 0, host.ContractBalance(raiseToken))

	st := statusView(t)
	assert.EqualValues(t, 0, st["totalInvested"])
	assert.EqualValues(t, 0, st["investors"])

	// position is gone, not zeroed
	mustAbort(t, call(t, contract.Refund, nil), "unknown investor position")

	// cold feet, then back in
	mustSucceed(t, investAs(t, alice, 300))
	st = statusView(t)
	assert.EqualValues(t, 300, st["totalInvested"])
	assert.EqualValues(t, 1, st["investors"])
}

func TestRefundBlockedDuringSettlement(t *testing.T) {
	host := newSale(t, nil)
	host.Deposit(raiseToken, alice, 1_000)
	mustSucceed(t, investAs(t, alice, 600))

	host.SetSender(legionAdmin)
	mustSucceed(t, call(t, contract.EndSale, nil))

	host.SetSender(alice)
	mustAbort(t, call(t, contract.Refund, nil), "refund unavailable")
}

func TestCancelReopensRefunds(t *testing.T) {
	host := newSale(t, nil)
	amounts := map[string]int64{alice: 500, bob: 250, carol: 125}
	for investor, amount := range amounts {
		host.Deposit(raiseToken, sdk.Address(investor), amount)
		mustSucceed(t, investAs(t, investor, amount))
	}

	host.SetSender(legionAdmin)
	mustSucceed(t, call(t, contract.EndSale, nil))

	host.SetSender(projectAdmin)
	mustSucceed(t, call(t, contract.CancelSale, nil))

	for investor, amount := range amounts {
		host.SetSender(sdk.Address(investor))
		mustSucceed(t, call(t, contract.Refund, nil))
		assert.EqualValues(t, amount, host.BalanceOf(raiseToken, sdk.Address(investor)))
	}

	assert.EqualValues(t, 0, host.ContractBalance(raiseToken))
	st := statusView(t)
	assert.EqualValues(t, 0, st["totalInvested"])
	assert.EqualValues(t, 0, st["investors"])
}

func TestRefundAfterSettlementClaimBlocked(t *testing.T) {
	host, claimLeaves := setupSuppliedSale(t)

	host.SetSender(alice)
	mustSucceed(t, call(t, contract.ClaimTokenAllocation, contract.ClaimArgs{
		Amount: 40,
		Proof:  merkleProof(claimLeaves, 0),
	}))

	// even if the sale were canceled now it could not be; and a settled
	// position never refunds
	host.SetSender(projectAdmin)
	mustAbort(t, call(t, contract.CancelSale, nil), "cannot cancel after tokens supplied")
}
