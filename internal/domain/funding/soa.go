package funding

import (
	"time"

	"github.com/aravind238/funding-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StatementOfAccount is a batched funding request covering a set of
// invoices for one client
type StatementOfAccount struct {
	shared.BaseAggregateRoot
	ClientID      int64           `gorm:"not null;index"`
	Status        RequestStatus   `gorm:"type:varchar(20);not null;default:'draft';index"`
	HighPriority  bool            `gorm:"not null;default:false"`
	InvoiceTotal  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AdvanceAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	// Denormalized accounting results, written when the request is approved
	// or its disbursements change.
	TotalFeesToClient  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	DisbursementAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	OutstandingAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`

	ApprovedAt *time.Time
}

// TableName returns the table name for GORM
func (StatementOfAccount) TableName() string {
	return "statements_of_account"
}

// NewStatementOfAccount creates a draft SOA for a client
func NewStatementOfAccount(clientID int64, highPriority bool) (*StatementOfAccount, error) {
	if clientID <= 0 {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client id must be positive")
	}
	return &StatementOfAccount{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientID:          clientID,
		Status:            StatusDraft,
		HighPriority:      highPriority,
		InvoiceTotal:      decimal.Zero,
		AdvanceAmount:     decimal.Zero,
	}, nil
}

// RequestID implements Request
func (s *StatementOfAccount) RequestID() int64 {
	return s.ID
}

// Kind implements Request
func (s *StatementOfAccount) Kind() RequestKind {
	return KindSOA
}

// RequestClientID implements Request
func (s *StatementOfAccount) RequestClientID() int64 {
	return s.ClientID
}

// CurrentStatus implements Request
func (s *StatementOfAccount) CurrentStatus() RequestStatus {
	return s.Status
}

// IsHighPriority implements Request
func (s *StatementOfAccount) IsHighPriority() bool {
	return s.HighPriority
}

// AdvanceSubtotal implements Request. SOA adjustments (discount fee,
// miscellaneous) are already folded into AdvanceAmount during invoice
// purchase, so no further subtraction happens here.
func (s *StatementOfAccount) AdvanceSubtotal() decimal.Decimal {
	return s.AdvanceAmount
}

// Submit moves a draft into the approval workflow
func (s *StatementOfAccount) Submit() error {
	if s.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft statements can be submitted")
	}
	s.Status = StatusPending
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Approve transitions the request to approved and records when
func (s *StatementOfAccount) Approve() error {
	if !s.Status.CanApprove() {
		return shared.NewDomainError("INVALID_STATE", "Statement cannot be approved from status "+string(s.Status))
	}
	now := time.Now()
	previous := s.Status
	s.Status = StatusApproved
	s.ApprovedAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()
	s.AddDomainEvent(NewRequestApprovedEvent(KindSOA, s.ID, s.ClientID, previous))
	return nil
}

// ApplyAccounting writes the boundary-rounded accounting results onto the
// denormalized columns
func (s *StatementOfAccount) ApplyAccounting(result AccountingResult) {
	rounded := result.Rounded()
	s.TotalFeesToClient = rounded.TotalFeeToClient
	s.DisbursementAmount = rounded.DisbursementAmount
	s.OutstandingAmount = rounded.OutstandingAmount
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
