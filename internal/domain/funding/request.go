package funding

import "github.com/shopspring/decimal"

// RequestKind discriminates the two funding-request aggregates
type RequestKind string

const (
	KindSOA            RequestKind = "soa"
	KindReserveRelease RequestKind = "reserve_release"
)

// Request is the common surface the disbursement accountant and the fee
// resolver need from either funding-request aggregate
type Request interface {
	RequestID() int64
	Kind() RequestKind
	RequestClientID() int64
	CurrentStatus() RequestStatus
	IsHighPriority() bool

	// AdvanceSubtotal is the amount available for disbursement before fees.
	// The two kinds derive it differently: a reserve release subtracts its
	// discount-fee and miscellaneous adjustments, a statement of account
	// uses the advance amount as-is (its adjustments are accounted earlier
	// in the invoice-purchase math).
	AdvanceSubtotal() decimal.Decimal
}
