package invoice

import "context"

// Repository defines the interface for invoice persistence
type Repository interface {
	// FindByID finds an invoice by internal id
	FindByID(ctx context.Context, id int64) (*Invoice, error)

	// LoadReferenceSets builds the three duplicate-detection sets for a
	// client's invoices, excluding rows whose status is declined or void.
	LoadReferenceSets(ctx context.Context, clientID int64) (*ReferenceSets, error)

	// Save creates or updates a single invoice
	Save(ctx context.Context, inv *Invoice) error

	// SaveBatch persists a classified batch inside one transaction: every
	// insert and update succeeds or the whole batch rolls back.
	SaveBatch(ctx context.Context, inserts []*Invoice, updates []*Invoice) error
}
