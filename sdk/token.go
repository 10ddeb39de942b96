package sdk

// Token identifies a fungible token contract the sale interacts with
// (raise currency or ask token). The zero value means "not set yet",
// which is a legal state for pre-TGE sales.
type Token string

// String returns the raw token contract id for logging or host calls.
// Example payload: sdk.Token("contract:usdx").String()
func (t Token) String() string {
	return string(t)
}

// IsSet reports whether a token contract has been configured.
// Example payload: sdk.Token("").IsSet()
func (t Token) IsSet() bool {
	return t != ""
}

// IsValid checks that a configured token lives in the contract domain.
// Example payload: sdk.Token("contract:usdx").IsValid()
func (t Token) IsValid() bool {
	return t.IsSet() && Address(t).Domain() == AddressDomainContract
}
