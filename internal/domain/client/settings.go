package client

import (
	"github.com/aravind238/funding-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Settings holds the per-client fee configuration used when pricing
// disbursements. Every client has exactly one row; the row is created
// lazily with zero fees the first time a funding request needs it.
//
// Completed funding requests never read this row directly: the fee values
// in effect at approval time are frozen into the request's approval
// history, so later edits here do not rewrite history.
type Settings struct {
	shared.BaseEntity
	ClientID        int64           `gorm:"not null;uniqueIndex"`
	HighPriorityFee decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SameDayACHFee   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	WireFee         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ThirdPartyFee   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Settings) TableName() string {
	return "client_settings"
}

// NewDefaultSettings creates a settings row with all fees at zero
func NewDefaultSettings(clientID int64) (*Settings, error) {
	if clientID <= 0 {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client id must be positive")
	}
	return &Settings{
		ClientID:        clientID,
		HighPriorityFee: decimal.Zero,
		SameDayACHFee:   decimal.Zero,
		WireFee:         decimal.Zero,
		ThirdPartyFee:   decimal.Zero,
	}, nil
}

// UpdateFees replaces the fee amounts. Negative fees are rejected.
func (s *Settings) UpdateFees(highPriority, sameDayACH, wire, thirdParty decimal.Decimal) error {
	for _, fee := range []decimal.Decimal{highPriority, sameDayACH, wire, thirdParty} {
		if fee.IsNegative() {
			return shared.NewDomainError("INVALID_FEE", "Fee amounts cannot be negative")
		}
	}
	s.HighPriorityFee = highPriority
	s.SameDayACHFee = sameDayACH
	s.WireFee = wire
	s.ThirdPartyFee = thirdParty
	return nil
}
