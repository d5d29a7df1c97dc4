package funding

import (
	"time"

	"github.com/aravind238/funding-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// ApprovalHistory records one workflow transition of a funding request.
// When the transition lands on an approved state, the client's fee
// schedule at that moment is frozen into Snapshot so that the completed
// request is forever priced with the fees that were in effect, immune to
// later fee edits.
type ApprovalHistory struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey"`
	RequestKind RequestKind   `gorm:"type:varchar(20);not null;index:idx_approval_request"`
	RequestID   int64         `gorm:"not null;index:idx_approval_request"`
	FromStatus  RequestStatus `gorm:"type:varchar(20);not null"`
	ToStatus    RequestStatus `gorm:"type:varchar(20);not null"`
	Snapshot    FeeSnapshot   `gorm:"type:jsonb"`
	RecordedAt  time.Time     `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ApprovalHistory) TableName() string {
	return "approval_histories"
}

// NewApprovalHistory records a transition without a fee snapshot
func NewApprovalHistory(kind RequestKind, requestID int64, from, to RequestStatus) (*ApprovalHistory, error) {
	if requestID <= 0 {
		return nil, shared.NewDomainError("INVALID_REQUEST", "Request id must be positive")
	}
	if !from.IsValid() || !to.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Transition statuses must be valid")
	}
	return &ApprovalHistory{
		ID:          uuid.New(),
		RequestKind: kind,
		RequestID:   requestID,
		FromStatus:  from,
		ToStatus:    to,
		RecordedAt:  time.Now(),
	}, nil
}

// NewApprovalHistoryWithSnapshot records a transition and freezes the fee
// schedule in effect
func NewApprovalHistoryWithSnapshot(kind RequestKind, requestID int64, from, to RequestStatus, fees FeeSchedule) (*ApprovalHistory, error) {
	h, err := NewApprovalHistory(kind, requestID, from, to)
	if err != nil {
		return nil, err
	}
	h.Snapshot = FeeSnapshot{Schedule: &fees}
	return h, nil
}

// HasSnapshot returns true if this entry carries a frozen fee schedule
func (h *ApprovalHistory) HasSnapshot() bool {
	return h.Snapshot.Schedule != nil
}
