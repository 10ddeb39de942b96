package contract_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legion_sales/contract"
)

func TestConfigView(t *testing.T) {
	newSale(t, func(a *contract.InitArgs) {
		a.Name = "series a raise"
		a.MinInvest = 50
	})

	res := call(t, contract.GetSaleConfig, nil)
	mustSucceed(t, res)

	var view map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.Ret), &view))
	assert.Equal(t, "pre_liquid_open", view["kind"])
	assert.Equal(t, "series a raise", view["name"])
	assert.Equal(t, raiseToken, view["raiseToken"])
	assert.EqualValues(t, 50, view["minInvest"])
	assert.EqualValues(t, 250, view["legionFeeCapBps"])
}

// The refund window boundary is derived from the clock on every read,
// never stored.
func TestPhaseProgression(t *testing.T) {
	host := newSale(t, nil)
	host.Deposit(raiseToken, alice, 100)
	mustSucceed(t, investAs(t, alice, 100))
	clearIntents()
	assert.Equal(t, "active", statusView(t)["phase"])

	setNow(5000)
	host.SetSender(legionAdmin)
	mustSucceed(t, call(t, contract.EndSale, nil))
	assert.Equal(t, "refund_period", statusView(t)["phase"])
	assert.Equal(t, false, statusView(t)["refundPeriodOver"])

	setNow(8600)
	assert.Equal(t, "settlement", statusView(t)["phase"])
	assert.Equal(t, true, statusView(t)["refundPeriodOver"])
}

func TestInvestorsView(t *testing.T) {
	host := newSale(t, nil)
	host.Deposit(raiseToken, alice, 100)
	host.Deposit(raiseToken, bob, 100)
	mustSucceed(t, investAs(t, alice, 100))
	mustSucceed(t, investAs(t, bob, 100))

	res := call(t, contract.GetInvestors, nil)
	mustSucceed(t, res)

	var investors []string
	require.NoError(t, json.Unmarshal([]byte(res.Ret), &investors))
	assert.ElementsMatch(t, []string{alice, bob}, investors)

	// refund drops the entry
	host.SetSender(bob)
	clearIntents()
	mustSucceed(t, call(t, contract.Refund, nil))

	res = call(t, contract.GetInvestors, nil)
	mustSucceed(t, res)
	require.NoError(t, json.Unmarshal([]byte(res.Ret), &investors))
	assert.ElementsMatch(t, []string{alice}, investors)

	res = call(t, contract.GetInvestorPosition, contract.PositionQueryArgs{Investor: bob})
	mustAbort(t, res, "unknown investor position")
}
