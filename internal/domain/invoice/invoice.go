package invoice

import (
	"time"

	"github.com/aravind238/funding-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle status of a persisted invoice
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusFunded   Status = "funded"
	StatusPaid     Status = "paid"
	StatusDeclined Status = "declined"
	StatusVoid     Status = "void"
)

// IsValid returns true if the status is a known value
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusFunded, StatusPaid, StatusDeclined, StatusVoid:
		return true
	}
	return false
}

// ExcludedFromFunding returns true for statuses that do not count as live
// funding invoices when building the duplicate-detection sets
func (s Status) ExcludedFromFunding() bool {
	return s == StatusDeclined || s == StatusVoid
}

// Invoice is a persisted invoice purchased (or pending purchase) through a
// client's statement of account
type Invoice struct {
	shared.BaseAggregateRoot
	ClientID    int64           `gorm:"not null;index:idx_invoices_client"`
	DebtorID    int64           `gorm:"not null;index"`
	RefKey      int64           `gorm:"not null;index:idx_invoices_ref_number"`
	Number      string          `gorm:"type:varchar(100);not null;index:idx_invoices_ref_number"`
	InvoiceDate time.Time       `gorm:"type:date;not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Status      Status          `gorm:"type:varchar(20);not null;default:'pending';index"`
	SOAID       *int64          `gorm:"index"` // statement of account the invoice was submitted under
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates a pending invoice from an insert-classified candidate
func NewInvoice(c Candidate, soaID *int64) (*Invoice, error) {
	if c.Number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot be empty")
	}
	if c.ClientID <= 0 {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client id must be positive")
	}
	if c.ResolvedDebtorID <= 0 {
		return nil, shared.NewDomainError("INVALID_DEBTOR", "Candidate has no resolved debtor id")
	}
	refKey := int64(0)
	if c.RefKey != nil {
		refKey = *c.RefKey
	}
	return &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientID:          c.ClientID,
		DebtorID:          c.ResolvedDebtorID,
		RefKey:            refKey,
		Number:            c.Number,
		InvoiceDate:       c.Date.Time(),
		Amount:            c.Amount,
		Status:            StatusPending,
		SOAID:             soaID,
	}, nil
}

// ApplyCandidate overwrites the mutable fields from an update-classified
// candidate. Identity fields (id, client) never change.
func (i *Invoice) ApplyCandidate(c Candidate) error {
	if c.Number == "" {
		return shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot be empty")
	}
	if i.Status.ExcludedFromFunding() {
		return shared.NewDomainError("INVALID_STATE", "Cannot update a declined or void invoice")
	}
	i.Number = c.Number
	i.InvoiceDate = c.Date.Time()
	i.Amount = c.Amount
	if c.RefKey != nil {
		i.RefKey = *c.RefKey
	}
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// MarkFunded transitions the invoice once its statement of account is paid out
func (i *Invoice) MarkFunded() error {
	if i.Status != StatusPending && i.Status != StatusApproved {
		return shared.NewDomainError("INVALID_STATE", "Only pending or approved invoices can be funded")
	}
	i.Status = StatusFunded
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}
