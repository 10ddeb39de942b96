package contract_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legion_sales/contract"
	"legion_sales/sdk"
)

func TestInitRunsOnce(t *testing.T) {
	newSale(t, nil)

	res := call(t, contract.ContractInit, defaultInitArgs())
	mustAbort(t, res, "contract already initialized")
}

func TestInitValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*contract.InitArgs)
		reason string
	}{
		{"unknown kind", func(a *contract.InitArgs) { a.Kind = "dutch_auction" }, "invalid sale kind"},
		{"bad admin", func(a *contract.InitArgs) { a.LegionAdmin = "not-an-address" }, "invalid admin address"},
		{"fee over 100pct", func(a *contract.InitArgs) { a.LegionFeeCapitalBps = 10001 }, "invalid fee bps"},
		{"referrer fee, no referrer", func(a *contract.InitArgs) { a.Referrer = "" }, "referrer fee without referrer"},
		{"refund too long", func(a *contract.InitArgs) { a.RefundPeriodSeconds = 15 * 24 * 60 * 60 }, "refund period too long"},
		{"min over max", func(a *contract.InitArgs) { a.MinRaise = 100; a.MaxRaise = 50 }, "invalid raise targets"},
		{"bad raise token", func(a *contract.InitArgs) { a.RaiseToken = "hive:whoops" }, "invalid raise token"},
		{"bad root", func(a *contract.InitArgs) { a.InvestRoot = "0x1234" }, "invalid merkle root"},
		{"bad signer", func(a *contract.InitArgs) { a.AuthSigner = "0xshort" }, "invalid auth signer"},
		{"name too long", func(a *contract.InitArgs) { a.Name = strings.Repeat("x", 201) }, "sale name too long"},
		{"fixed price needs price", func(a *contract.InitArgs) {
			a.Kind = "fixed_price"
			a.StartTime = 1000
			a.EndTime = 2000
		}, "invalid token price"},
		{"fixed price needs window", func(a *contract.InitArgs) {
			a.Kind = "fixed_price"
			a.TokenPrice = 10
		}, "invalid sale window"},
		{"sealed bid needs window", func(a *contract.InitArgs) { a.Kind = "sealed_bid_auction" }, "invalid sale window"},
		{"approved needs signer", func(a *contract.InitArgs) { a.Kind = "pre_liquid_approved" }, "auth signer required"},
		{"distributor needs ask token", func(a *contract.InitArgs) { a.Kind = "token_distributor" }, "invalid ask token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sdk.ResetMock().SetSender(legionAdmin)
			args := defaultInitArgs()
			tc.mutate(&args)
			mustAbort(t, call(t, contract.ContractInit, args), tc.reason)
		})
	}
}

func TestInvestMovesCapitalIntoEscrow(t *testing.T) {
	host := newSale(t, nil)
	host.Deposit(raiseToken, alice, 1_000)

	mustSucceed(t, investAs(t, alice, 400))

	assert.EqualValues(t, 600, host.BalanceOf(raiseToken, alice))
	assert.EqualValues(t, 400, host.ContractBalance(raiseToken))

	st := statusView(t)
	assert.EqualValues(t, 400, st["totalInvested"])
	assert.EqualValues(t, 1, st["investors"])
	assert.Equal(t, "active", st["phase"])

	pos := positionView(t, alice)
	assert.EqualValues(t, 400, pos["invested"])

	// top-up accumulates on the same position
	mustSucceed(t, investAs(t, alice, 100))
	pos = positionView(t, alice)
	assert.EqualValues(t, 500, pos["invested"])
	st = statusView(t)
	assert.EqualValues(t, 1, st["investors"])
}

func TestInvestGuards(t *testing.T) {
	host := newSale(t, func(a *contract.InitArgs) {
		a.StartTime = 2000
		a.EndTime = 5000
		a.MinInvest = 100
		a.MaxRaise = 1000
	})
	host.Deposit(raiseToken, alice, 10_000)

	setNow(1500)
	mustAbort(t, investAs(t, alice, 200), "sale not active")

	setNow(2500)
	mustAbort(t, investAs(t, alice, 0), "invalid amount")
	mustAbort(t, investAs(t, alice, 50), "amount below minimum")

	host.SetSender(alice)
	clearIntents()
	res := call(t, contract.Invest, contract.InvestArgs{Amount: 200})
	mustAbort(t, res, "missing transfer intent")

	allowTransfer(askToken, 200)
	res = call(t, contract.Invest, contract.InvestArgs{Amount: 200})
	mustAbort(t, res, "intent token mismatch")

	allowTransfer(raiseToken, 150)
	res = call(t, contract.Invest, contract.InvestArgs{Amount: 200})
	mustAbort(t, res, "intent limit below amount")

	mustAbort(t, investAs(t, alice, 1200), "raise cap exceeded")

	setNow(6000)
	mustAbort(t, investAs(t, alice, 200), "sale not active")
}

func TestInvestBlockedWhilePaused(t *testing.T) {
	host := newSale(t, nil)
	host.Deposit(raiseToken, alice, 1_000)

	host.SetSender(legionAdmin)
	mustSucceed(t, call(t, contract.PauseSale, nil))
	mustAbort(t, investAs(t, alice, 200), "sale paused")

	host.SetSender(legionAdmin)
	mustSucceed(t, call(t, contract.UnpauseSale, nil))
	mustSucceed(t, investAs(t, alice, 200))
}

func TestPauseIsLegionOnly(t *testing.T) {
	host := newSale(t, nil)

	host.SetSender(projectAdmin)
	mustAbort(t, call(t, contract.PauseSale, nil), "only legion")

	host.SetSender(legionAdmin)
	mustSucceed(t, call(t, contract.PauseSale, nil))
	mustAbort(t, call(t, contract.PauseSale, nil), "sale already paused")

	mustSucceed(t, call(t, contract.UnpauseSale, nil))
	mustAbort(t, call(t, contract.UnpauseSale, nil), "sale not paused")
}

func TestEndSale(t *testing.T) {
	host := newSale(t, nil)
	host.Deposit(raiseToken, alice, 1_000)
	mustSucceed(t, investAs(t, alice, 200))

	host.SetSender(alice)
	mustAbort(t, call(t, contract.EndSale, nil), "only legion or project admin")

	setNow(5000)
	host.SetSender(projectAdmin)
	mustSucceed(t, call(t, contract.EndSale, nil))

	st := statusView(t)
	assert.EqualValues(t, 5000, st["endedAt"])
	assert.Equal(t, "refund_period", st["phase"])

	host.SetSender(legionAdmin)
	mustAbort(t, call(t, contract.EndSale, nil), "sale already ended")

	// further investing is over
	mustAbort(t, investAs(t, alice, 100), "sale not active")
}

func TestCancelSale(t *testing.T) {
	host := newSale(t, nil)

	host.SetSender(legionAdmin)
	mustAbort(t, call(t, contract.CancelSale, nil), "only project admin")

	host.SetSender(projectAdmin)
	mustSucceed(t, call(t, contract.CancelSale, nil))
	assert.Equal(t, "canceled", statusView(t)["phase"])

	mustAbort(t, call(t, contract.CancelSale, nil), "sale already canceled")

	host.Deposit(raiseToken, alice, 1_000)
	mustAbort(t, investAs(t, alice, 200), "sale canceled")
}

func TestUpdateConfig(t *testing.T) {
	host := newSale(t, func(a *contract.InitArgs) {
		a.StartTime = 1000
		a.EndTime = 5000
	})

	host.SetSender(projectAdmin)
	end := int64(9000)
	mustAbort(t, call(t, contract.UpdateSaleConfig, contract.UpdateConfigArgs{EndTime: &end}), "only legion")

	host.SetSender(legionAdmin)
	stale := int64(500)
	mustAbort(t, call(t, contract.UpdateSaleConfig, contract.UpdateConfigArgs{EndTime: &stale}), "invalid sale window")

	mustSucceed(t, call(t, contract.UpdateSaleConfig, contract.UpdateConfigArgs{EndTime: &end}))

	res := call(t, contract.GetSaleConfig, nil)
	mustSucceed(t, res)
	require.Contains(t, res.Ret, `"end":9000`)

	// no updates once the sale is over
	host.SetSender(legionAdmin)
	mustSucceed(t, call(t, contract.EndSale, nil))
	mustAbort(t, call(t, contract.UpdateSaleConfig, contract.UpdateConfigArgs{EndTime: &end}), "sale already ended")
}

func TestEmergencyWithdrawRequiresPause(t *testing.T) {
	host := newSale(t, nil)
	host.Deposit(raiseToken, alice, 1_000)
	mustSucceed(t, investAs(t, alice, 500))

	host.SetSender(legionAdmin)
	args := contract.EmergencyWithdrawArgs{To: legionAdmin, Token: raiseToken, Amount: 500}
	mustAbort(t, call(t, contract.EmergencyWithdraw, args), "sale not paused")

	mustSucceed(t, call(t, contract.PauseSale, nil))
	mustSucceed(t, call(t, contract.EmergencyWithdraw, args))
	assert.EqualValues(t, 500, host.BalanceOf(raiseToken, legionAdmin))
	assert.EqualValues(t, 0, host.ContractBalance(raiseToken))
}

func TestCallsBeforeInitRevert(t *testing.T) {
	sdk.ResetMock().SetSender(alice)
	mustAbort(t, call(t, contract.Invest, contract.InvestArgs{Amount: 100}), "sale not initialized")
	mustAbort(t, call(t, contract.GetSaleStatus, nil), "sale not initialized")
}
