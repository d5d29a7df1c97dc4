package funding

import (
	"github.com/aravind238/funding-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how a disbursement is paid out
type PaymentMethod string

const (
	MethodWire              PaymentMethod = "wire"
	MethodSameDayACH        PaymentMethod = "same_day_ach"
	MethodDirectDeposit     PaymentMethod = "direct_deposit"
	MethodInternationalWire PaymentMethod = "international_wire"
	MethodCheque            PaymentMethod = "cheque"
)

// IsValid returns true if the payment method is a known value
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodWire, MethodSameDayACH, MethodDirectDeposit,
		MethodInternationalWire, MethodCheque:
		return true
	}
	return false
}

// PayeeRelation is the relationship a payee has to the client on a
// funding request: the client being paid directly, or a third party being
// paid on the client's behalf. The two relations carry different fee rules.
type PayeeRelation string

const (
	RelationClient PayeeRelation = "client"
	RelationPayee  PayeeRelation = "payee"
)

// IsValid returns true if the relation is a known value
func (r PayeeRelation) IsValid() bool {
	return r == RelationClient || r == RelationPayee
}

// ClientPayee links a payee to a client and records which relation the
// link represents
type ClientPayee struct {
	shared.BaseEntity
	ClientID int64         `gorm:"not null;index:idx_client_payees_client"`
	PayeeID  int64         `gorm:"not null;index"`
	Relation PayeeRelation `gorm:"type:varchar(10);not null"`
	Name     string        `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (ClientPayee) TableName() string {
	return "client_payees"
}

// Disbursement is one payment line item on a funding request. SOA
// disbursements reference their request directly; reserve-release
// disbursements attach through a join table.
type Disbursement struct {
	shared.BaseEntity
	SOAID         *int64          `gorm:"index"`
	PayeeID       int64           `gorm:"not null;index"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(30);not null"`
	ClientFee     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ThirdPartyFee decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`

	// Relation is denormalized from the client_payees join when line items
	// are loaded for accounting; it is not a column on this table.
	Relation PayeeRelation `gorm:"-"`
}

// TableName returns the table name for GORM
func (Disbursement) TableName() string {
	return "disbursements"
}

// NewDisbursement creates a disbursement line item
func NewDisbursement(payeeID int64, method PaymentMethod, amount, clientFee, thirdPartyFee decimal.Decimal) (*Disbursement, error) {
	if payeeID <= 0 {
		return nil, shared.NewDomainError("INVALID_PAYEE", "Payee id must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Disbursement amount cannot be negative")
	}
	if clientFee.IsNegative() || thirdPartyFee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_FEE", "Fees cannot be negative")
	}
	return &Disbursement{
		PayeeID:       payeeID,
		PaymentMethod: method,
		ClientFee:     clientFee,
		ThirdPartyFee: thirdPartyFee,
		Amount:        amount,
	}, nil
}

// IsClientPayee returns true when the client itself is being paid
func (d *Disbursement) IsClientPayee() bool {
	return d.Relation == RelationClient
}

// ReserveReleaseDisbursement attaches a disbursement line item to a
// reserve release
type ReserveReleaseDisbursement struct {
	ReserveReleaseID int64 `gorm:"primaryKey"`
	DisbursementID   int64 `gorm:"primaryKey"`
}

// TableName returns the table name for GORM
func (ReserveReleaseDisbursement) TableName() string {
	return "reserve_release_disbursements"
}
