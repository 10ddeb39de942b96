package contract

import (
	"legion_sales/sdk"
)

// Amount is a token quantity in raw base units of the token contract.
type Amount int64

// AmountToInt64 exposes the raw int64 for token transfer calls.
// Example payload: AmountToInt64(Amount(1000))
func AmountToInt64(v Amount) int64 {
	return int64(v)
}

// InstanceKind selects the sale variant at initialization. The pricing and
// allocation policy of a deployed instance is fixed for its whole life.
type InstanceKind uint8

const (
	KindUnspecified       InstanceKind = 0
	KindFixedPrice        InstanceKind = 1
	KindSealedBidAuction  InstanceKind = 2
	KindPreLiquidApproved InstanceKind = 3
	KindPreLiquidOpen     InstanceKind = 4
	KindCapitalRaise      InstanceKind = 5
	KindTokenDistributor  InstanceKind = 6
)

// String prints the instance kind as the payload keyword it is created with.
// Example payload: KindFixedPrice.String()
func (k InstanceKind) String() string {
	switch k {
	case KindFixedPrice:
		return "fixed_price"
	case KindSealedBidAuction:
		return "sealed_bid_auction"
	case KindPreLiquidApproved:
		return "pre_liquid_approved"
	case KindPreLiquidOpen:
		return "pre_liquid_open"
	case KindCapitalRaise:
		return "capital_raise"
	case KindTokenDistributor:
		return "token_distributor"
	default:
		return "unspecified"
	}
}

// parseInstanceKind maps the init payload keyword onto the enum.
func parseInstanceKind(s string) InstanceKind {
	switch s {
	case "fixed_price":
		return KindFixedPrice
	case "sealed_bid_auction":
		return KindSealedBidAuction
	case "pre_liquid_approved":
		return KindPreLiquidApproved
	case "pre_liquid_open":
		return KindPreLiquidOpen
	case "capital_raise":
		return KindCapitalRaise
	case "token_distributor":
		return KindTokenDistributor
	default:
		return KindUnspecified
	}
}

// SalePhase is derived from the status flags plus the block clock; it is
// never stored. Transitions are monotonic because the underlying flags only
// ever flip one way.
type SalePhase uint8

const (
	PhaseActive           SalePhase = 1
	PhaseRefundPeriod     SalePhase = 2
	PhaseSettlement       SalePhase = 3
	PhaseResultsPublished SalePhase = 4
	PhaseTokensSupplied   SalePhase = 5
	PhaseCanceled         SalePhase = 6
)

// String prints the phase as lower-case text for events and views.
// Example payload: PhaseRefundPeriod.String()
func (p SalePhase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseRefundPeriod:
		return "refund_period"
	case PhaseSettlement:
		return "settlement"
	case PhaseResultsPublished:
		return "results_published"
	case PhaseTokensSupplied:
		return "tokens_supplied"
	case PhaseCanceled:
		return "canceled"
	default:
		return "unspecified"
	}
}

// SaleConfig is set once by contract_init. The only later writers are
// PublishSaleResults (ask token for pre-TGE sales) and UpdateSaleConfig
// (legion, while the sale is still active).
type SaleConfig struct {
	Kind                  InstanceKind `json:"kind"`
	Name                  string       `json:"name"`
	RaiseToken            sdk.Token    `json:"raiseToken"`
	AskToken              sdk.Token    `json:"askToken,omitempty"`
	StartTime             int64        `json:"start"`
	EndTime               int64        `json:"end"`
	RefundPeriodSeconds   int64        `json:"refundSecs"`
	MinRaise              Amount       `json:"minRaise,omitempty"`
	MaxRaise              Amount       `json:"maxRaise,omitempty"`
	MinInvest             Amount       `json:"minInvest,omitempty"`
	TokenPrice            Amount       `json:"price,omitempty"`
	LegionAdmin           sdk.Address  `json:"legion"`
	ProjectAdmin          sdk.Address  `json:"project"`
	FeeReceiver           sdk.Address  `json:"feeReceiver"`
	Referrer              sdk.Address  `json:"referrer,omitempty"`
	LegionFeeCapitalBps   uint64       `json:"legionFeeCapBps"`
	LegionFeeTokensBps    uint64       `json:"legionFeeTokBps"`
	ReferrerFeeCapitalBps uint64       `json:"referrerFeeCapBps"`
	ReferrerFeeTokensBps  uint64       `json:"referrerFeeTokBps"`
	InvestRoot            string       `json:"investRoot,omitempty"`
	AuthSigner            string       `json:"authSigner,omitempty"`
}

// SaleStatus holds every mutable field of the instance. Flags only flip
// false -> true, EndedAt only moves 0 -> timestamp.
type SaleStatus struct {
	EndedAt                int64  `json:"endedAt"`
	Canceled               bool   `json:"canceled"`
	CapitalPublished       bool   `json:"capitalPublished"`
	ResultsPublished       bool   `json:"resultsPublished"`
	TokensSupplied         bool   `json:"tokensSupplied"`
	CapitalWithdrawn       bool   `json:"capitalWithdrawn"`
	Paused                 bool   `json:"paused"`
	TotalCapitalInvested   Amount `json:"totalInvested"`
	PublishedCapitalRaised Amount `json:"publishedCapital"`
	TotalTokensAllocated   Amount `json:"allocated"`
	TokensClaimed          Amount `json:"tokensClaimed"`
	ClearingPrice          Amount `json:"clearingPrice,omitempty"`
	ClaimRoot              string `json:"claimRoot,omitempty"`
	ExcessRoot             string `json:"excessRoot,omitempty"`
	InvestorCount          uint64 `json:"investors"`
}

// InvestorPosition tracks one investor's capital and claim state. Created on
// first invest, deleted by refund; a missing record is never implied by a
// zero value.
type InvestorPosition struct {
	Investor         sdk.Address `json:"investor"`
	CapitalInvested  Amount      `json:"invested"`
	AmountClaimed    Amount      `json:"claimed"`
	AmountRefunded   Amount      `json:"refunded"`
	HasClaimedExcess bool        `json:"excessClaimed"`
	HasSettled       bool        `json:"settled"`
	SealedBid        string      `json:"sealedBid,omitempty"`
	FirstInvestedAt  int64       `json:"firstAt"`
	LastInvestedAt   int64       `json:"lastAt"`
}

// -----------------------------------------------------------------------------
// Entrypoint argument structs
// -----------------------------------------------------------------------------

type InitArgs struct {
	Kind                  string `json:"kind"`
	Name                  string `json:"name"`
	RaiseToken            string `json:"raiseToken"`
	AskToken              string `json:"askToken"`
	StartTime             int64  `json:"start"`
	EndTime               int64  `json:"end"`
	RefundPeriodSeconds   int64  `json:"refundSecs"`
	MinRaise              Amount `json:"minRaise"`
	MaxRaise              Amount `json:"maxRaise"`
	MinInvest             Amount `json:"minInvest"`
	TokenPrice            Amount `json:"price"`
	LegionAdmin           string `json:"legion"`
	ProjectAdmin          string `json:"project"`
	FeeReceiver           string `json:"feeReceiver"`
	Referrer              string `json:"referrer"`
	LegionFeeCapitalBps   uint64 `json:"legionFeeCapBps"`
	LegionFeeTokensBps    uint64 `json:"legionFeeTokBps"`
	ReferrerFeeCapitalBps uint64 `json:"referrerFeeCapBps"`
	ReferrerFeeTokensBps  uint64 `json:"referrerFeeTokBps"`
	InvestRoot            string `json:"investRoot"`
	AuthSigner            string `json:"authSigner"`
}

type InvestArgs struct {
	Amount        Amount   `json:"amount"`
	MaxAllocation Amount   `json:"maxAlloc,omitempty"`
	Proof         []string `json:"proof,omitempty"`
	AuthSig       string   `json:"sig,omitempty"`
	Nonce         uint64   `json:"nonce,omitempty"`
	Expiry        int64    `json:"expiry,omitempty"`
	SealedBid     string   `json:"sealedBid,omitempty"`
}

type PublishCapitalArgs struct {
	CapitalRaised Amount `json:"capital"`
	ExcessRoot    string `json:"excessRoot"`
}

type PublishResultsArgs struct {
	ClaimRoot       string `json:"claimRoot"`
	TokensAllocated Amount `json:"allocated"`
	AskToken        string `json:"askToken"`
	ClearingPrice   Amount `json:"clearingPrice"`
}

type SupplyTokensArgs struct {
	Amount      Amount `json:"amount"`
	LegionFee   Amount `json:"legionFee"`
	ReferrerFee Amount `json:"referrerFee"`
}

type ClaimArgs struct {
	Amount Amount   `json:"amount"`
	Proof  []string `json:"proof"`
}

type UpdateConfigArgs struct {
	EndTime    *int64  `json:"end,omitempty"`
	InvestRoot *string `json:"investRoot,omitempty"`
	AuthSigner *string `json:"authSigner,omitempty"`
}

type EmergencyWithdrawArgs struct {
	To     string `json:"to"`
	Token  string `json:"token"`
	Amount Amount `json:"amount"`
}

type PositionQueryArgs struct {
	Investor string `json:"investor"`
}
