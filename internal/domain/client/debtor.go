package client

import (
	"github.com/aravind238/funding-sub001/internal/domain/shared"
)

// Debtor represents a party that owes on a client's invoices.
// Debtors are addressed two ways at different points of the platform's
// history: by internal id (legacy imports) and by Cadence ref key
// (reconciliation-era imports). Both identifiers are kept.
type Debtor struct {
	shared.BaseEntity
	ClientID int64  `gorm:"not null;index"`
	RefKey   int64  `gorm:"not null;index"`
	Name     string `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (Debtor) TableName() string {
	return "debtors"
}

// NewDebtor creates a new debtor attached to a client
func NewDebtor(clientID, refKey int64, name string) (*Debtor, error) {
	if clientID <= 0 {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client id must be positive")
	}
	if refKey <= 0 {
		return nil, shared.NewDomainError("INVALID_REF_KEY", "Debtor ref key must be positive")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Debtor name cannot be empty")
	}
	return &Debtor{
		ClientID: clientID,
		RefKey:   refKey,
		Name:     name,
	}, nil
}
