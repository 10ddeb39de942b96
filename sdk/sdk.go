//go:build wasm

package sdk

import (
	"encoding/json"
	"fmt"
)

//go:wasmimport sdk console.log
func log(s *string) *string

//go:wasmimport sdk db.set_object
func stateSetObject(key *string, value *string) *string

//go:wasmimport sdk db.get_object
func stateGetObject(key *string) *string

//go:wasmimport sdk db.rm_object
func stateDeleteObject(key *string) *string

//go:wasmimport sdk system.get_env
func getEnv(arg *string) *string

//go:wasmimport sdk system.get_env_key
func getEnvKey(arg *string) *string

//go:wasmimport sdk contracts.read
func contractRead(contractId *string, key *string) *string

//go:wasmimport sdk contracts.call
func contractCall(contractId *string, method *string, payload *string, options *string) *string

//go:wasmimport env abort
func abort(msg, file *string, line, column *int32)

//go:wasmimport env revert
func revert(msg, symbol *string)

// Log writes a message to the wasm console so we can trace contract steps.
// Example payload: sdk.Log("sale ended")
func Log(s string) {
	log(&s)
}

// Abort stops execution immediately and surfaces the message to the chain, so use sparingly.
// Example payload: sdk.Abort("sale not active")
func Abort(msg string) {
	ln := int32(0)
	abort(&msg, nil, &ln, &ln)
	panic(msg)
}

// Revert throws a named error back to the caller (like revert in solidity) with a short symbol.
// Example payload: sdk.Revert("bad input", "input_error")
func Revert(msg string, symbol string) {
	revert(&msg, &symbol)
}

// StateSetObject stores a key/value string pair into contract kv storage.
// Example payload: sdk.StateSetObject("count", "5")
func StateSetObject(key string, value string) {
	stateSetObject(&key, &value)
}

// StateGetObject fetches a key and returns nil when missing.
// Example payload: sdk.StateGetObject("count")
func StateGetObject(key string) *string {
	return stateGetObject(&key)
}

// StateDeleteObject removes the key entirely, handy for cleanup.
// Example payload: sdk.StateDeleteObject("count")
func StateDeleteObject(key string) {
	stateDeleteObject(&key)
}

// GetEnv pulls the JSON env blob from the chain and maps it to the Env struct.
// Example payload: sdk.GetEnv()
func GetEnv() Env {
	envStr := *getEnv(nil)
	env := Env{}
	json.Unmarshal([]byte(envStr), &env)

	envMap := map[string]interface{}{}
	json.Unmarshal([]byte(envStr), &envMap)

	requiredAuths := make([]Address, 0)
	if raw, ok := envMap["msg.required_auths"].([]interface{}); ok {
		for _, auth := range raw {
			if addr, ok := auth.(string); ok {
				requiredAuths = append(requiredAuths, Address(addr))
			}
		}
	}
	requiredPostingAuths := make([]Address, 0)
	if raw, ok := envMap["msg.required_posting_auths"].([]interface{}); ok {
		for _, auth := range raw {
			if addr, ok := auth.(string); ok {
				requiredPostingAuths = append(requiredPostingAuths, Address(addr))
			}
		}
	}

	if sender, ok := envMap["msg.sender"].(string); ok {
		env.Sender = Sender{
			Address:              Address(sender),
			RequiredAuths:        requiredAuths,
			RequiredPostingAuths: requiredPostingAuths,
		}
	}

	return env
}

// GetEnvStr returns the raw JSON environment string without parsing.
// Example payload: sdk.GetEnvStr()
func GetEnvStr() string {
	return *getEnv(nil)
}

// GetEnvKey pulls a single env key (like tx.id) to avoid parsing the whole struct.
// Example payload: sdk.GetEnvKey("tx.id")
func GetEnvKey(key string) *string {
	return getEnvKey(&key)
}

// ContractRead fetches a single state key from another contract.
// Example payload: sdk.ContractRead("contract:usdx", "balance:hive:alice")
func ContractRead(contractId string, key string) *string {
	return contractRead(&contractId, &key)
}

// ContractCall invokes a method on another contract and returns its raw result.
// Example payload: sdk.ContractCall("contract:usdx", "transfer", `{"to":"hive:bob","amount":5}`, "")
func ContractCall(contractId string, method string, payload string, options string) *string {
	return contractCall(&contractId, &method, &payload, &options)
}

// tokenCall wraps ContractCall against a token contract and turns non-ok
// results into errors. Token contracts answer "ok" on success; anything
// else (including a missing answer) is treated as a failed transfer so
// non-standard tokens cannot silently eat funds.
func tokenCall(token Token, method string, payload string) error {
	res := ContractCall(token.String(), method, payload, "")
	if res == nil {
		return fmt.Errorf("token %s: no response from %s", token, method)
	}
	if *res != "ok" {
		return fmt.Errorf("token %s: %s rejected: %s", token, method, *res)
	}
	return nil
}

// TokenDraw pulls tokens from the current tx sender into this contract,
// subject to the sender's transfer.allow intent on the token side.
// Example payload: sdk.TokenDraw(sdk.Token("contract:usdx"), 1000)
func TokenDraw(token Token, amount int64) error {
	return tokenCall(token, "draw", fmt.Sprintf(`{"amount":%d}`, amount))
}

// TokenTransfer sends tokens held by this contract to the given address.
// Example payload: sdk.TokenTransfer(sdk.Token("contract:usdx"), sdk.Address("hive:bob"), 1000)
func TokenTransfer(token Token, to Address, amount int64) error {
	return tokenCall(token, "transfer", fmt.Sprintf(`{"to":%q,"amount":%d}`, to.String(), amount))
}

// GetTokenBalance reads an address balance straight from the token contract state.
// Example payload: sdk.GetTokenBalance(sdk.Token("contract:usdx"), sdk.Address("hive:bob"))
func GetTokenBalance(token Token, addr Address) int64 {
	ptr := ContractRead(token.String(), "balance:"+addr.String())
	if ptr == nil || *ptr == "" {
		return 0
	}
	var bal int64
	if err := json.Unmarshal([]byte(*ptr), &bal); err != nil {
		return 0
	}
	return bal
}
