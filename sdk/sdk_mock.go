//go:build !wasm

package sdk

import (
	"fmt"
	"sort"
)

// MockHost is the in-memory stand-in for the chain host. It backs the same
// package API the wasm build exposes, so the contract code is identical in
// tests and on chain. Aborts panic with AbortError and the Call wrapper
// rolls state back, mirroring the host's all-or-nothing tx semantics.
type MockHost struct {
	kv       map[string]string
	balances map[Token]map[Address]int64
	env      Env
	logs     []string
	txSeq    uint64
}

// AbortError carries the revert reason out of an aborted mock call.
type AbortError struct {
	Msg string
}

func (e AbortError) Error() string { return e.Msg }

// CallResult reports the outcome of one simulated contract call.
type CallResult struct {
	Success bool
	Ret     string
	Logs    []string
}

var mockHost = NewMockHost()

// Mock returns the active in-memory host so tests can seed and inspect it.
func Mock() *MockHost {
	return mockHost
}

// ResetMock swaps in a fresh host, wiping all state between tests.
func ResetMock() *MockHost {
	mockHost = NewMockHost()
	return mockHost
}

func NewMockHost() *MockHost {
	return &MockHost{
		kv:       map[string]string{},
		balances: map[Token]map[Address]int64{},
		env: Env{
			ContractId: "contract:legionsale",
			Timestamp:  "2025-01-01T00:00:00",
		},
	}
}

// --- test controls ---

// SetSender sets both sender and caller for the next calls.
func (m *MockHost) SetSender(addr Address) {
	m.env.Sender = Sender{Address: addr, RequiredAuths: []Address{addr}}
	m.env.Caller = Caller{Address: addr}
	m.env.Payer = addr.String()
}

// SetTimestamp overrides block.timestamp (unix seconds or RFC3339 text).
func (m *MockHost) SetTimestamp(ts string) {
	m.env.Timestamp = ts
}

// SetIntents attaches caller intents (like transfer.allow) to the next call.
func (m *MockHost) SetIntents(intents []Intent) {
	m.env.Intents = intents
}

// SetContractId changes the simulated deployment address.
func (m *MockHost) SetContractId(id string) {
	m.env.ContractId = id
}

// Deposit credits an address balance on a token so draws can succeed.
func (m *MockHost) Deposit(token Token, addr Address, amount int64) {
	m.creditBalance(token, addr, amount)
}

// BalanceOf reads a token balance without going through the contract.
func (m *MockHost) BalanceOf(token Token, addr Address) int64 {
	return m.balances[token][addr]
}

// ContractBalance reads the contract's own escrow balance on a token.
func (m *MockHost) ContractBalance(token Token) int64 {
	return m.balances[token][Address(m.env.ContractId)]
}

// StateDump returns the kv keys in stable order, for debugging tests.
func (m *MockHost) StateDump() []string {
	keys := make([]string, 0, len(m.kv))
	for k := range m.kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Call runs one entrypoint with fresh tx identity and snapshot/rollback
// semantics: on abort the kv store and balances are restored untouched.
func (m *MockHost) Call(fn func(payload *string) *string, payload string) (res CallResult) {
	m.txSeq++
	m.env.TxId = fmt.Sprintf("tx-%d", m.txSeq)
	m.env.BlockId = fmt.Sprintf("block-%d", m.txSeq)
	m.env.BlockHeight = m.txSeq

	kvSnap := make(map[string]string, len(m.kv))
	for k, v := range m.kv {
		kvSnap[k] = v
	}
	balSnap := make(map[Token]map[Address]int64, len(m.balances))
	for t, accounts := range m.balances {
		cp := make(map[Address]int64, len(accounts))
		for a, b := range accounts {
			cp[a] = b
		}
		balSnap[t] = cp
	}
	logMark := len(m.logs)

	defer func() {
		res.Logs = append([]string{}, m.logs[logMark:]...)
		if r := recover(); r != nil {
			m.kv = kvSnap
			m.balances = balSnap
			if abortErr, ok := r.(AbortError); ok {
				res = CallResult{Success: false, Ret: abortErr.Msg, Logs: res.Logs}
				return
			}
			panic(r)
		}
	}()

	out := fn(&payload)
	res.Success = true
	if out != nil {
		res.Ret = *out
	}
	return res
}

func (m *MockHost) creditBalance(token Token, addr Address, amount int64) {
	if m.balances[token] == nil {
		m.balances[token] = map[Address]int64{}
	}
	m.balances[token][addr] += amount
}

// --- package API (same surface as the wasm build) ---

// Log records a message in the host log buffer.
// Example payload: sdk.Log("sale ended")
func Log(s string) {
	mockHost.logs = append(mockHost.logs, s)
}

// Abort stops execution and rolls the current call back.
// Example payload: sdk.Abort("sale not active")
func Abort(msg string) {
	panic(AbortError{Msg: msg})
}

// Revert mirrors Abort but keeps a short symbol alongside the message.
// Example payload: sdk.Revert("bad input", "input_error")
func Revert(msg string, symbol string) {
	panic(AbortError{Msg: symbol + ": " + msg})
}

func StateSetObject(key string, value string) {
	mockHost.kv[key] = value
}

func StateGetObject(key string) *string {
	val, ok := mockHost.kv[key]
	if !ok {
		return nil
	}
	return &val
}

func StateDeleteObject(key string) {
	delete(mockHost.kv, key)
}

func GetEnv() Env {
	return mockHost.env
}

func GetEnvStr() string {
	return fmt.Sprintf("%+v", mockHost.env)
}

func GetEnvKey(key string) *string {
	var val string
	switch key {
	case "contract.id":
		val = mockHost.env.ContractId
	case "tx.id":
		val = mockHost.env.TxId
	case "block.id":
		val = mockHost.env.BlockId
	case "block.timestamp":
		val = mockHost.env.Timestamp
	default:
		return nil
	}
	return &val
}

func ContractRead(contractId string, key string) *string {
	return nil
}

func ContractCall(contractId string, method string, payload string, options string) *string {
	ret := "ok"
	return &ret
}

// TokenDraw pulls tokens from the current tx sender into this contract.
// The mock checks balances only; intent checks live in the contract layer.
func TokenDraw(token Token, amount int64) error {
	m := mockHost
	sender := m.env.Sender.Address
	if m.balances[token][sender] < amount {
		return fmt.Errorf("token %s: draw rejected: insufficient balance of %s", token, sender)
	}
	m.balances[token][sender] -= amount
	m.creditBalance(token, Address(m.env.ContractId), amount)
	return nil
}

// TokenTransfer sends tokens held by this contract to the given address.
func TokenTransfer(token Token, to Address, amount int64) error {
	m := mockHost
	self := Address(m.env.ContractId)
	if m.balances[token][self] < amount {
		return fmt.Errorf("token %s: transfer rejected: insufficient contract balance", token)
	}
	m.balances[token][self] -= amount
	m.creditBalance(token, to, amount)
	return nil
}

// GetTokenBalance reads an address balance from the mock token ledger.
func GetTokenBalance(token Token, addr Address) int64 {
	return mockHost.balances[token][addr]
}
