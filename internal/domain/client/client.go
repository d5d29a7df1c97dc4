package client

import (
	"github.com/aravind238/funding-sub001/internal/domain/shared"
)

// ClientStatus represents the lifecycle status of a factoring client
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
)

// IsValid returns true if the status is a known value
func (s ClientStatus) IsValid() bool {
	switch s {
	case ClientStatusActive, ClientStatusInactive:
		return true
	}
	return false
}

// Client represents a factoring client (the party whose invoices are purchased).
// RefKey is the Cadence system-of-record identifier, distinct from the
// internal database id.
type Client struct {
	shared.BaseAggregateRoot
	RefKey   int64        `gorm:"not null;uniqueIndex"`
	Name     string       `gorm:"type:varchar(200);not null"`
	Status   ClientStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Timezone string       `gorm:"type:varchar(64)"` // IANA zone for business-day checks
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a new client
func NewClient(refKey int64, name string) (*Client, error) {
	if refKey <= 0 {
		return nil, shared.NewDomainError("INVALID_REF_KEY", "Client ref key must be positive")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	return &Client{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RefKey:            refKey,
		Name:              name,
		Status:            ClientStatusActive,
	}, nil
}

// IsActive returns true if the client can submit funding requests
func (c *Client) IsActive() bool {
	return c.Status == ClientStatusActive
}
