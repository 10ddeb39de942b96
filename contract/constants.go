package contract

// -----------------------------------------------------------------------------
// Fee Math
// -----------------------------------------------------------------------------

// BpsDenominator is the basis-point scale for all fee percentages.
const BpsDenominator = 10000

// -----------------------------------------------------------------------------
// Validation Limits
// -----------------------------------------------------------------------------

const (
	// MaxRefundPeriodSeconds caps the refund window at two weeks.
	MaxRefundPeriodSeconds = 14 * 24 * 60 * 60
	// MaxSealedBidLength limits the size of an opaque sealed-bid blob.
	MaxSealedBidLength = 2048
	// MaxNameLength limits the sale display name.
	MaxNameLength = 200
	// MaxProofDepth bounds Merkle proofs; 32 levels covers 4 billion leaves.
	MaxProofDepth = 32
)

// -----------------------------------------------------------------------------
// Default/Fallback Values
// -----------------------------------------------------------------------------

const (
	// FallbackRefundPeriodSeconds is used when init passes 0 (two days).
	FallbackRefundPeriodSeconds = 2 * 24 * 60 * 60
)

// -----------------------------------------------------------------------------
// Storage Key Prefixes
// -----------------------------------------------------------------------------

const (
	// kInitFlag marks the one-time initialization.
	kInitFlag byte = 0x00
	// kSaleConfig stores the serialized SaleConfig singleton.
	kSaleConfig byte = 0x01
	// kSaleStatus stores the serialized SaleStatus singleton.
	kSaleStatus byte = 0x02
	// kPosition houses encoded InvestorPosition structs keyed by address.
	kPosition byte = 0x03
	// kInvestorIndex stores the JSON list of investor addresses.
	kInvestorIndex byte = 0x04
	// kUsedAuth flags consumed signer authorizations (investor+nonce).
	kUsedAuth byte = 0x05
)

// -----------------------------------------------------------------------------
// Merkle Leaf Purposes
// -----------------------------------------------------------------------------

// Each published root commits to leaves of a single purpose, so a proof for
// one claim surface can never be replayed against another.
const (
	purposeInvest byte = 0x01
	purposeClaim  byte = 0x02
	purposeExcess byte = 0x03
)

// -----------------------------------------------------------------------------
// Signature Authorization Domain
// -----------------------------------------------------------------------------

const (
	AuthDomainName    = "LegionSales"
	AuthDomainVersion = "1"
	// AuthActionInvest is the action bound into invest authorizations.
	AuthActionInvest = "invest"
)
