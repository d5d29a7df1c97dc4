package funding

// RequestStatus represents the approval-workflow status of a funding
// request. Requests travel Client -> Principal -> Account Executive ->
// Back Office; approved and completed requests calculate with the fee
// schedule frozen at approval time.
type RequestStatus string

const (
	StatusDraft     RequestStatus = "draft"
	StatusPending   RequestStatus = "pending"
	StatusReviewed  RequestStatus = "reviewed"
	StatusApproved  RequestStatus = "approved"
	StatusCompleted RequestStatus = "completed"
	StatusRejected  RequestStatus = "rejected"
	StatusVoid      RequestStatus = "void"
)

// IsValid returns true if the status is a known value
func (s RequestStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusReviewed, StatusApproved,
		StatusCompleted, StatusRejected, StatusVoid:
		return true
	}
	return false
}

// IsTerminal returns true for statuses that permit no further transitions
func (s RequestStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRejected || s == StatusVoid
}

// CanApprove returns true if a request in this status may transition to
// approved
func (s RequestStatus) CanApprove() bool {
	return s == StatusPending || s == StatusReviewed
}

// UsesFrozenFees returns true for statuses whose fee schedule must come
// from the approval-history snapshot rather than live client settings
func (s RequestStatus) UsesFrozenFees() bool {
	return s == StatusApproved || s == StatusCompleted
}
