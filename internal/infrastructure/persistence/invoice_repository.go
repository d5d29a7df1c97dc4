package persistence

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/aravind238/funding-sub001/internal/domain/invoice"
	"github.com/aravind238/funding-sub001/internal/domain/shared"
)

// GormInvoiceRepository implements invoice.Repository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by its internal id
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id int64) (*invoice.Invoice, error) {
	var inv invoice.Invoice
	if err := r.db.WithContext(ctx).First(&inv, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// referenceRow is the projection used to build the duplicate-detection sets
type referenceRow struct {
	ID       int64
	ClientID int64
	DebtorID int64
	RefKey   int64
	Number   string
	Status   invoice.Status
}

// LoadReferenceSets builds the three membership sets from one pass over
// the client's invoices. The funding set omits declined and void rows;
// the row-identity sets keep every row so a re-save of an excluded row
// still resolves.
func (r *GormInvoiceRepository) LoadReferenceSets(ctx context.Context, clientID int64) (*invoice.ReferenceSets, error) {
	var rows []referenceRow
	if err := r.db.WithContext(ctx).
		Model(&invoice.Invoice{}).
		Select("id", "client_id", "debtor_id", "ref_key", "number", "status").
		Where("client_id = ?", clientID).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	sets := invoice.NewReferenceSets()
	for _, row := range rows {
		numberLower := strings.ToLower(row.Number)
		if !row.Status.ExcludedFromFunding() {
			sets.FundingInvoices[invoice.FundingKey{
				RefKey:      row.RefKey,
				NumberLower: numberLower,
			}] = struct{}{}
		}
		sets.UniqueInvoices[invoice.UniqueKey{
			ID:          row.ID,
			ClientID:    row.ClientID,
			DebtorID:    row.DebtorID,
			NumberLower: numberLower,
		}] = struct{}{}
		sets.UniqueInvoicesUpdate[invoice.UpdateKey{
			ID:          row.ID,
			ClientID:    row.ClientID,
			NumberLower: numberLower,
		}] = struct{}{}
	}
	return sets, nil
}

// Save creates or updates a single invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, inv *invoice.Invoice) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

// SaveBatch persists a classified batch atomically: every insert and
// update succeeds or the whole batch rolls back
func (r *GormInvoiceRepository) SaveBatch(ctx context.Context, inserts, updates []*invoice.Invoice) error {
	if len(inserts) == 0 && len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(inserts) > 0 {
			if err := tx.Create(inserts).Error; err != nil {
				return err
			}
		}
		for _, inv := range updates {
			if err := tx.Save(inv).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

var _ invoice.Repository = (*GormInvoiceRepository)(nil)
