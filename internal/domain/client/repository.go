package client

import "context"

// Repository defines the interface for client persistence
type Repository interface {
	// FindByID finds a client by internal id
	FindByID(ctx context.Context, id int64) (*Client, error)

	// FindByRefKey finds a client by its Cadence ref key
	FindByRefKey(ctx context.Context, refKey int64) (*Client, error)

	// Save creates or updates a client
	Save(ctx context.Context, c *Client) error
}

// DebtorRepository defines the interface for debtor persistence and for
// assembling the two debtor addressing maps consumed by invoice validation
type DebtorRepository interface {
	// FindByID finds a debtor by internal id
	FindByID(ctx context.Context, id int64) (*Debtor, error)

	// RefKeyMap returns ref key -> internal debtor id for a client's debtors
	RefKeyMap(ctx context.Context, clientID int64) (map[int64]int64, error)

	// SwapMap returns internal debtor id -> ref key for a client's debtors.
	// Used only by the legacy addressing mode where candidates carry the
	// internal id instead of the ref key.
	SwapMap(ctx context.Context, clientID int64) (map[int64]int64, error)

	// Save creates or updates a debtor
	Save(ctx context.Context, d *Debtor) error
}

// SettingsRepository defines the interface for client settings persistence
type SettingsRepository interface {
	// FindByClient finds the settings row for a client, shared.ErrNotFound
	// when none exists
	FindByClient(ctx context.Context, clientID int64) (*Settings, error)

	// GetOrCreate returns the settings row for a client, creating a
	// zero-fee row when none exists. Must be idempotent under concurrent
	// first access.
	GetOrCreate(ctx context.Context, clientID int64) (*Settings, error)

	// Save creates or updates a settings row
	Save(ctx context.Context, s *Settings) error
}
