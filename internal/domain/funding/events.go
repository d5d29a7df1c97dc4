package funding

import (
	"github.com/aravind238/funding-sub001/internal/domain/shared"
)

// Event type names
const (
	EventRequestApproved = "funding.request.approved"
)

// RequestApprovedEvent is raised when a funding request transitions to
// approved
type RequestApprovedEvent struct {
	shared.BaseDomainEvent
	RequestKind RequestKind
	RequestID   int64
	ClientID    int64
	FromStatus  RequestStatus
}

// NewRequestApprovedEvent creates a RequestApprovedEvent
func NewRequestApprovedEvent(kind RequestKind, requestID, clientID int64, from RequestStatus) *RequestApprovedEvent {
	return &RequestApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventRequestApproved),
		RequestKind:     kind,
		RequestID:       requestID,
		ClientID:        clientID,
		FromStatus:      from,
	}
}
