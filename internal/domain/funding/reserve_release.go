package funding

import (
	"time"

	"github.com/aravind238/funding-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ReserveRelease is a funding request releasing previously withheld
// reserve funds to a client. It is not tied to new invoices.
type ReserveRelease struct {
	shared.BaseAggregateRoot
	ClientID     int64         `gorm:"not null;index"`
	Status       RequestStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	HighPriority bool          `gorm:"not null;default:false"`

	AdvanceAmount           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountFeeAdjustment   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MiscellaneousAdjustment decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	// Denormalized accounting results, written on approval or when the
	// disbursement set changes.
	TotalFeesToClient  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	DisbursementAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	OutstandingAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`

	ApprovedAt *time.Time
}

// TableName returns the table name for GORM
func (ReserveRelease) TableName() string {
	return "reserve_releases"
}

// NewReserveRelease creates a draft reserve release for a client
func NewReserveRelease(clientID int64, advance decimal.Decimal, highPriority bool) (*ReserveRelease, error) {
	if clientID <= 0 {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client id must be positive")
	}
	if advance.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Advance amount cannot be negative")
	}
	return &ReserveRelease{
		BaseAggregateRoot:       shared.NewBaseAggregateRoot(),
		ClientID:                clientID,
		Status:                  StatusDraft,
		HighPriority:            highPriority,
		AdvanceAmount:           advance,
		DiscountFeeAdjustment:   decimal.Zero,
		MiscellaneousAdjustment: decimal.Zero,
	}, nil
}

// RequestID implements Request
func (r *ReserveRelease) RequestID() int64 {
	return r.ID
}

// Kind implements Request
func (r *ReserveRelease) Kind() RequestKind {
	return KindReserveRelease
}

// RequestClientID implements Request
func (r *ReserveRelease) RequestClientID() int64 {
	return r.ClientID
}

// CurrentStatus implements Request
func (r *ReserveRelease) CurrentStatus() RequestStatus {
	return r.Status
}

// IsHighPriority implements Request
func (r *ReserveRelease) IsHighPriority() bool {
	return r.HighPriority
}

// AdvanceSubtotal implements Request: the advance less the discount-fee
// and miscellaneous adjustments
func (r *ReserveRelease) AdvanceSubtotal() decimal.Decimal {
	return r.AdvanceAmount.Sub(r.DiscountFeeAdjustment).Sub(r.MiscellaneousAdjustment)
}

// Submit moves a draft into the approval workflow
func (r *ReserveRelease) Submit() error {
	if r.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft reserve releases can be submitted")
	}
	r.Status = StatusPending
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// Approve transitions the request to approved and records when
func (r *ReserveRelease) Approve() error {
	if !r.Status.CanApprove() {
		return shared.NewDomainError("INVALID_STATE", "Reserve release cannot be approved from status "+string(r.Status))
	}
	now := time.Now()
	previous := r.Status
	r.Status = StatusApproved
	r.ApprovedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()
	r.AddDomainEvent(NewRequestApprovedEvent(KindReserveRelease, r.ID, r.ClientID, previous))
	return nil
}

// ApplyAccounting writes the boundary-rounded accounting results onto the
// denormalized columns
func (r *ReserveRelease) ApplyAccounting(result AccountingResult) {
	rounded := result.Rounded()
	r.TotalFeesToClient = rounded.TotalFeeToClient
	r.DisbursementAmount = rounded.DisbursementAmount
	r.OutstandingAmount = rounded.OutstandingAmount
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}
