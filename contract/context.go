package contract

import (
	"strconv"
	"time"

	"legion_sales/sdk"
)

// cachedEnv/cachedTransfer are scoped to the currently executing transaction.
// Whenever the tx.id changes we refresh sdk.GetEnv() and drop memoized data
// to keep reads consistent.
var (
	cachedEnv       sdk.Env
	cachedEnvLoaded bool
	cachedTransfer  *TransferAllow
)

// currentEnv caches the env per tx.id so we dont poke the host api every few
// lines and ensures subsequent helper calls (intents, sender, timestamps)
// always see the same snapshot.
func currentEnv() *sdk.Env {
	var currentTx string
	if txPtr := sdk.GetEnvKey("tx.id"); txPtr != nil {
		currentTx = *txPtr
	}
	if !cachedEnvLoaded || cachedEnv.TxId != currentTx {
		cachedEnv = sdk.GetEnv()
		cachedEnvLoaded = true
		cachedTransfer = nil
	}
	return &cachedEnv
}

// currentIntents is just a tiny helper to access intents already pulled above.
func currentIntents() []sdk.Intent {
	return currentEnv().Intents
}

// getSenderAddress returns the address of the current transaction sender.
func getSenderAddress() sdk.Address {
	return currentEnv().Sender.Address
}

// getContractId returns this deployed instance's id for digest binding.
func getContractId() string {
	return currentEnv().ContractId
}

// TransferAllow represents arguments extracted from a transfer.allow intent.
// It specifies the allowed draw amount (`Limit`) and the token contract.
type TransferAllow struct {
	Limit Amount
	Token sdk.Token
}

// getFirstTransferAllow scans the provided intents and returns the first
// transfer.allow intent. The cached result is cleared automatically whenever
// currentEnv() detects a new transaction so calls do not leak state.
func getFirstTransferAllow() *TransferAllow {
	if cachedTransfer != nil {
		return cachedTransfer
	}
	for _, intent := range currentIntents() {
		if intent.Type == "transfer.allow" {
			token := sdk.Token(intent.Args["token"])
			if !token.IsSet() {
				sdk.Abort("invalid intent asset")
			}
			limit, err := strconv.ParseInt(intent.Args["limit"], 10, 64)
			if err != nil || limit < 0 {
				sdk.Abort("invalid intent limit")
			}
			ta := &TransferAllow{
				Limit: Amount(limit),
				Token: token,
			}
			cachedTransfer = ta
			return ta
		}
	}
	return nil
}

// requireTransferIntent checks the caller attached a transfer.allow intent
// covering the draw we are about to make.
func requireTransferIntent(token sdk.Token, amount Amount) {
	ta := getFirstTransferAllow()
	if ta == nil {
		sdk.Abort("missing transfer intent")
	}
	if ta.Token != token {
		sdk.Abort("intent token mismatch")
	}
	if ta.Limit < amount {
		sdk.Abort("intent limit below amount")
	}
}

// -----------------------------------------------------------------------------
// Caller Roles
// -----------------------------------------------------------------------------

// requireLegion gates privileged publishing and override actions.
func requireLegion(cfg *SaleConfig) {
	if getSenderAddress() != cfg.LegionAdmin {
		sdk.Abort("only legion")
	}
}

// requireProject gates project lifecycle control.
func requireProject(cfg *SaleConfig) {
	if getSenderAddress() != cfg.ProjectAdmin {
		sdk.Abort("only project admin")
	}
}

// requireLegionOrProject covers actions both admins may trigger, like end().
func requireLegionOrProject(cfg *SaleConfig) {
	sender := getSenderAddress()
	if sender != cfg.LegionAdmin && sender != cfg.ProjectAdmin {
		sdk.Abort("only legion or project admin")
	}
}

// -----------------------------------------------------------------------------
// Timestamp Helpers
// -----------------------------------------------------------------------------

// nowUnix returns the current Unix timestamp. It prefers the chain's block
// timestamp from the environment; timeouts are always evaluated lazily
// against this clock, never by an active timer.
func nowUnix() int64 {
	if ts := currentEnv().Timestamp; ts != "" {
		if v, ok := parseTimestamp(ts); ok {
			return v
		}
	}
	if tsPtr := sdk.GetEnvKey("block.timestamp"); tsPtr != nil && *tsPtr != "" {
		if v, ok := parseTimestamp(*tsPtr); ok {
			return v
		}
	}
	return time.Now().Unix()
}

// parseTimestamp accepts unix seconds or iso-ish strings since the env flips formats sometimes.
func parseTimestamp(val string) (int64, bool) {
	if v, err := strconv.ParseInt(val, 10, 64); err == nil {
		return v, true
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t.Unix(), true
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", val, time.UTC); err == nil {
		return t.Unix(), true
	}
	return 0, false
}
