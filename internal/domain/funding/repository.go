package funding

import "context"

// SOARepository defines the interface for statement-of-account persistence
type SOARepository interface {
	// FindByID finds a statement of account by id
	FindByID(ctx context.Context, id int64) (*StatementOfAccount, error)

	// Save creates or updates a statement of account
	Save(ctx context.Context, soa *StatementOfAccount) error
}

// ReserveReleaseRepository defines the interface for reserve-release
// persistence
type ReserveReleaseRepository interface {
	// FindByID finds a reserve release by id
	FindByID(ctx context.Context, id int64) (*ReserveRelease, error)

	// Save creates or updates a reserve release
	Save(ctx context.Context, rr *ReserveRelease) error
}

// DisbursementRepository defines the interface for disbursement line items.
// Both listing methods hydrate each item's payee relation from the
// client_payees join.
type DisbursementRepository interface {
	// ListForSOA lists the line items attached to a statement of account
	ListForSOA(ctx context.Context, soaID int64) ([]Disbursement, error)

	// ListForReserveRelease lists the line items attached to a reserve
	// release through the join table
	ListForReserveRelease(ctx context.Context, reserveReleaseID int64) ([]Disbursement, error)

	// Save creates or updates a disbursement
	Save(ctx context.Context, d *Disbursement) error
}

// ApprovalHistoryRepository defines the interface for approval-history
// persistence
type ApprovalHistoryRepository interface {
	// LatestSnapshot returns the most recent history entry carrying a fee
	// snapshot for a request, shared.ErrNotFound when none exists
	LatestSnapshot(ctx context.Context, kind RequestKind, requestID int64) (*ApprovalHistory, error)

	// Save appends a history entry
	Save(ctx context.Context, h *ApprovalHistory) error
}
