package sdk

// Intent is a caller-side authorization attached to a contract call, e.g.
// transfer.allow with {limit, token} lets the contract draw funds.
type Intent struct {
	Type string            `json:"type"`
	Args map[string]string `json:"args"`
}

type Sender struct {
	Address              Address   `json:"id"`
	RequiredAuths        []Address `json:"required_auths"`
	RequiredPostingAuths []Address `json:"required_posting_auths"`
}

type Caller struct {
	Address Address `json:"id"`
}

// Env is the execution environment snapshot for the current transaction.
type Env struct {
	ContractId  string   `json:"contract.id"`
	TxId        string   `json:"tx.id"`
	Index       int64    `json:"tx.index"`
	OpIndex     int64    `json:"tx.op_index"`
	BlockId     string   `json:"block.id"`
	BlockHeight uint64   `json:"block.height"`
	Timestamp   string   `json:"block.timestamp"`
	Sender      Sender   `json:"sender"`
	Caller      Caller   `json:"caller"`
	Payer       string   `json:"payer"`
	Intents     []Intent `json:"intents"`
}

type ContractCallOptions struct {
	Intents []Intent `json:"intents,omitempty"`
}
